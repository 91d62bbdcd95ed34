package entity

import "github.com/shopspring/decimal"

// StoreSettings configuración de la tienda que consume el motor de ventas.
// Para el POS es de lectura: se inyecta en cada cálculo de precios.
type StoreSettings struct {
	TaxRate  decimal.Decimal // fracción en [0,1], ej. 0.19 para IVA 19%
	Currency string          // código ISO 4217, ej. COP, USD
}

// Valid verifica TaxRate en [0,1] y código de moneda de 3 letras.
func (s StoreSettings) Valid() bool {
	if s.TaxRate.LessThan(decimal.Zero) || s.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return false
	}
	return len(s.Currency) == 3
}
