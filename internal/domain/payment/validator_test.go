package payment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/payment"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Efectivo suficiente: autoriza y calcula el cambio con la regla round2.
func TestValidate_EfectivoSuficiente(t *testing.T) {
	res, err := payment.Validate(entity.PaymentCash, dec("10.00"), dec("7.56"))
	require.NoError(t, err)

	assert.True(t, res.Authorized)
	assert.True(t, res.Change.Equal(dec("2.44")), "cambio fue %s", res.Change)
	assert.True(t, res.AmountPaid.Equal(dec("10.00")))
	assert.True(t, res.Shortfall.IsZero())
}

// Efectivo insuficiente: no autoriza, el cambio visible queda en 0 pero el
// valor crudo conserva el faltante para el mensaje "faltan X".
func TestValidate_EfectivoInsuficiente(t *testing.T) {
	res, err := payment.Validate(entity.PaymentCash, dec("5.00"), dec("7.56"))
	require.NoError(t, err)

	assert.False(t, res.Authorized)
	assert.True(t, res.Change.IsZero(), "el cambio presentado se recorta a 0")
	assert.True(t, res.RawChange.Equal(dec("-2.56")), "raw fue %s", res.RawChange)
	assert.True(t, res.Shortfall.Equal(dec("2.56")), "faltante fue %s", res.Shortfall)
}

func TestValidate_MontoExacto(t *testing.T) {
	res, err := payment.Validate(entity.PaymentCash, dec("7.56"), dec("7.56"))
	require.NoError(t, err)
	assert.True(t, res.Authorized)
	assert.True(t, res.Change.IsZero())
}

// Tarjeta y billetera: el datáfono externo es la autoridad; este núcleo
// siempre autoriza, con AmountPaid = total y cambio 0.
func TestValidate_MetodosNoEfectivo(t *testing.T) {
	for _, m := range []string{entity.PaymentCard, entity.PaymentDigitalWallet} {
		res, err := payment.Validate(m, decimal.Zero, dec("7.56"))
		require.NoError(t, err, m)
		assert.True(t, res.Authorized, m)
		assert.True(t, res.AmountPaid.Equal(dec("7.56")), m)
		assert.True(t, res.Change.IsZero(), m)
	}
}

// La enumeración de métodos es cerrada: strings arbitrarios se rechazan.
func TestValidate_MetodoDesconocido(t *testing.T) {
	_, err := payment.Validate("cheque", dec("10"), dec("7.56"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
