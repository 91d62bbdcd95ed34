// Package cart implementa el motor del carrito: una colección ordenada de
// líneas con altas, bajas, cambio de cantidad y totales derivados.
//
// Invariantes que toda operación preserva en cada salida:
//   - a lo más una línea por ProductID
//   - toda línea tiene Quantity >= 1 (bajar a 0 elimina la línea)
//   - el orden de inserción es el orden de presentación
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
)

// Engine mantiene el estado del carrito en memoria. No es seguro para uso
// concurrente por sí mismo: la sesión que lo posee serializa el acceso.
type Engine struct {
	lines []entity.CartLine
}

// New construye un carrito vacío.
func New() *Engine {
	return &Engine{}
}

// Restore reconstruye un carrito desde líneas rehidratadas, validando los
// invariantes. Si las líneas persistidas los violan retorna ErrIntegrity:
// auto-corregir en silencio ocultaría errores de precios.
func Restore(lines []entity.CartLine) (*Engine, error) {
	e := &Engine{lines: entity.CloneLines(lines)}
	if err := e.checkIntegrity(); err != nil {
		return nil, err
	}
	return e, nil
}

// AddItem agrega el producto al carrito. Si ya existe una línea para ese
// producto incrementa su cantidad en 1 sin tocar el precio capturado; si no,
// crea una línea nueva con Quantity=1 y UnitPrice = precio actual del
// producto. No valida stock: el catálogo decide qué productos son vendibles
// antes de llegar aquí.
func (e *Engine) AddItem(p *entity.Product) {
	for i := range e.lines {
		if e.lines[i].ProductID == p.ID {
			e.lines[i].Quantity++
			return
		}
	}
	e.lines = append(e.lines, entity.CartLine{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
}

// RemoveItem elimina la línea del producto. Si no existe es un no-op.
func (e *Engine) RemoveItem(productID string) {
	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity fija la cantidad exacta de la línea (no incremental).
// Con quantity <= 0 equivale a RemoveItem. Si no hay línea para el producto
// es un no-op: no crea líneas.
func (e *Engine) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(productID)
		return
	}
	for i := range e.lines {
		if e.lines[i].ProductID == productID {
			e.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear vacía el carrito.
func (e *Engine) Clear() {
	e.lines = nil
}

// IsEmpty indica si el carrito no tiene líneas.
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (e *Engine) Lines() []entity.CartLine {
	return entity.CloneLines(e.lines)
}

// Subtotal suma UnitPrice * Quantity sobre las líneas. Carrito vacío = 0.
func (e *Engine) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range e.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// Tax devuelve el impuesto del carrito para la tasa dada (regla de money).
func (e *Engine) Tax(taxRate decimal.Decimal) decimal.Decimal {
	return money.CalculateTax(e.Subtotal(), taxRate)
}

// Total devuelve subtotal + impuesto, redondeado con la misma regla.
func (e *Engine) Total(taxRate decimal.Decimal) decimal.Decimal {
	sub := e.Subtotal()
	return money.CalculateTotal(sub, money.CalculateTax(sub, taxRate))
}

// checkIntegrity verifica los invariantes del carrito y falla ruidosamente
// si se violan (líneas duplicadas por producto o cantidades < 1).
func (e *Engine) checkIntegrity() error {
	seen := make(map[string]struct{}, len(e.lines))
	for _, l := range e.lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: cantidad %d en producto %s", domain.ErrIntegrity, l.Quantity, l.ProductID)
		}
		if _, dup := seen[l.ProductID]; dup {
			return fmt.Errorf("%w: línea duplicada para producto %s", domain.ErrIntegrity, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}
