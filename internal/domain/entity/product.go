package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Para el motor de ventas es
// solo lectura: el POS nunca modifica precio, stock ni estado; eso es
// responsabilidad del módulo de catálogo/inventario.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sellable indica si el producto puede agregarse al carrito
// (activo y con existencias).
func (p *Product) Sellable() bool {
	return p != nil && p.IsActive && p.Stock > 0
}
