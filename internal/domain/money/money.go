// Package money centraliza el redondeo monetario y el cálculo de impuestos.
// Toda derivación de impuesto/total del sistema pasa por aquí: usar la misma
// regla de redondeo en todos lados es lo que hace que los montos cuadren.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Round2 redondea a 2 decimales con half-away-from-zero
// (la regla documentada de decimal.Round).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateTax devuelve round2(subtotal * taxRate). TaxRate es una fracción
// en [0,1]; una tasa fuera de rango es responsabilidad del llamador.
func CalculateTax(subtotal, taxRate decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(taxRate))
}

// CalculateTotal devuelve round2(subtotal + tax).
func CalculateTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Add(tax))
}

// Format presenta un monto con el símbolo de su moneda ISO 4217.
// Es solo presentación: nunca altera el valor numérico subyacente.
// Si el código no es válido, devuelve el monto con 2 decimales.
func Format(amount decimal.Decimal, isoCode string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(isoCode)))
	if err != nil {
		return amount.StringFixed(2)
	}
	return fmt.Sprintf("%v %s", currency.Symbol(unit), amount.StringFixed(2))
}
