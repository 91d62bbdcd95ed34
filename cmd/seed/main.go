// seed puebla la base de datos con usuarios y productos de demostración.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno que el API (DATABASE_URL o DB_*).
// Es idempotente: los registros existentes se dejan intactos.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/caja-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/caja-pos-api/pkg/config"
)

type seedUser struct {
	email, password, name, role string
}

type seedProduct struct {
	sku, name, category string
	price               string
	stock               int
}

var users = []seedUser{
	{"admin@caja.local", "admin12345", "Administrador", "admin"},
	{"cajera@caja.local", "cajera12345", "Cajera Demo", "cajero"},
}

var products = []seedProduct{
	{"CAFE-250", "Café molido 250g", "Abarrotes", "12500.00", 40},
	{"PAN-BAG", "Pan baguette", "Panadería", "4200.00", 25},
	{"LECHE-1L", "Leche entera 1L", "Lácteos", "4800.00", 60},
	{"QUESO-CAMP", "Queso campesino 500g", "Lácteos", "14900.00", 18},
	{"AGUA-600", "Agua sin gas 600ml", "Bebidas", "2500.00", 120},
	{"GASEOSA-15", "Gaseosa 1.5L", "Bebidas", "6900.00", 48},
	{"ARROZ-1K", "Arroz blanco 1kg", "Abarrotes", "5400.00", 80},
	{"CHOC-TAB", "Chocolate de mesa 500g", "Abarrotes", "9800.00", 30},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now()

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hashear password de %s: %v\n", u.email, err)
			os.Exit(1)
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'active', $6, $6)
			ON CONFLICT (email) DO NOTHING`,
			uuid.New().String(), u.email, string(hash), u.name, u.role, now,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar usuario %s: %v\n", u.email, err)
			os.Exit(1)
		}
		if tag.RowsAffected() > 0 {
			fmt.Printf("usuario creado: %s (%s)\n", u.email, u.role)
		} else {
			fmt.Printf("usuario ya existe: %s\n", u.email)
		}
	}

	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "precio inválido para %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO products (id, sku, name, description, category, price, stock, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, '', $4, $5, $6, true, $7, $7)
			ON CONFLICT (sku) DO NOTHING`,
			uuid.New().String(), p.sku, p.name, p.category, price, p.stock, now,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar producto %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		if tag.RowsAffected() > 0 {
			fmt.Printf("producto creado: %s %s\n", p.sku, p.name)
		} else {
			fmt.Printf("producto ya existe: %s\n", p.sku)
		}
	}

	fmt.Println("seed completado")
}
