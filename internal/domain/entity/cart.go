package entity

import "github.com/shopspring/decimal"

// CartLine es una línea del carrito. UnitPrice se captura al momento de
// agregar el producto: un cambio de precio posterior en el catálogo no
// afecta líneas ya agregadas.
type CartLine struct {
	ID        string          // identificador propio de la línea, distinto del ProductID
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int // siempre >= 1; una línea en 0 se elimina, nunca se guarda
}

// LineTotal devuelve UnitPrice * Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CloneLines devuelve una copia profunda de las líneas, preservando el orden.
// Se usa para snapshots inmutables (transacciones) y para vistas defensivas.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
