package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User representa un cajero o administrador de la tienda.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // admin, cajero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Cashier es la identidad mínima que el motor de ventas exige para cerrar
// una transacción. La provee el módulo de autenticación.
type Cashier struct {
	ID   string
	Name string
}
