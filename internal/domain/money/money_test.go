package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-pos-api/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// La regla de redondeo es half-away-from-zero, la misma en todo el sistema.
func TestRound2_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"7.555", "7.56"},
		{"7.554", "7.55"},
		{"7.565", "7.57"},
		{"-7.555", "-7.56"},
		{"0", "0"},
	}
	for _, c := range cases {
		assert.True(t, money.Round2(dec(c.in)).Equal(dec(c.want)),
			"round2(%s) debe ser %s, fue %s", c.in, c.want, money.Round2(dec(c.in)))
	}
}

// Fixture del cierre de venta: subtotal 7.00 con tasa 0.08 → tax 0.56, total 7.56.
func TestCalculateTaxYTotal_FixtureCierre(t *testing.T) {
	subtotal := dec("7.00")
	tax := money.CalculateTax(subtotal, dec("0.08"))
	require.True(t, tax.Equal(dec("0.56")), "tax fue %s", tax)

	total := money.CalculateTotal(subtotal, tax)
	assert.True(t, total.Equal(dec("7.56")), "total fue %s", total)
}

// Tax y Total son funciones puras de (subtotal, tasa): total - tax == subtotal.
func TestCalculateTotal_ReconciliaConSubtotal(t *testing.T) {
	for _, sub := range []string{"0", "0.01", "7.00", "19.99", "1234.56"} {
		subtotal := dec(sub)
		tax := money.CalculateTax(subtotal, dec("0.19"))
		total := money.CalculateTotal(subtotal, tax)
		assert.True(t, total.Sub(tax).Equal(subtotal),
			"total-tax debe reconciliar con subtotal %s", sub)
	}
}

// Format es solo presentación: con código inválido cae al monto plano
// y nunca altera el valor numérico.
func TestFormat_CodigoInvalidoDevuelveMontoPlano(t *testing.T) {
	assert.Equal(t, "7.56", money.Format(dec("7.56"), "???"))
	assert.Equal(t, "7.56", money.Format(dec("7.56"), ""))
}

func TestFormat_CodigoValidoIncluyeElMonto(t *testing.T) {
	out := money.Format(dec("7.56"), "usd")
	assert.Contains(t, out, "7.56", "el monto no debe alterarse al formatear")
	assert.NotEqual(t, "7.56", out, "debe anteponerse el símbolo de la moneda")
}
