// Package payment decide si un pago autoriza el cierre de la venta y
// calcula el cambio. No toca el carrito ni el registro de transacciones.
package payment

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
)

// Result es el veredicto del validador para un intento de pago.
// RawChange conserva el valor crudo (puede ser negativo) para que el
// mensaje de "faltan X" sea distinguible de "cambio X"; Change ya viene
// recortado a >= 0 para presentación.
type Result struct {
	Authorized bool
	AmountPaid decimal.Decimal
	Change     decimal.Decimal
	RawChange  decimal.Decimal
	Shortfall  decimal.Decimal // > 0 solo cuando el efectivo no alcanza
}

// Validate evalúa el intento de pago contra el total ya redondeado.
//
// Efectivo: autorizado si tendered >= total; cambio = round2(tendered-total).
// Tarjeta y billetera digital: siempre autorizados por este núcleo (la
// autoridad real es el datáfono/pasarela externa; aquí solo se registra el
// método) con AmountPaid = total y cambio 0.
func Validate(method string, tendered, total decimal.Decimal) (Result, error) {
	if !entity.ValidPaymentMethod(method) {
		return Result{}, domain.ErrInvalidInput
	}
	switch method {
	case entity.PaymentCash:
		raw := money.Round2(tendered.Sub(total))
		res := Result{
			Authorized: tendered.GreaterThanOrEqual(total),
			AmountPaid: tendered,
			RawChange:  raw,
		}
		if raw.IsNegative() {
			res.Change = decimal.Zero
			res.Shortfall = raw.Neg()
		} else {
			res.Change = raw
		}
		return res, nil
	default: // card, digital_wallet
		return Result{
			Authorized: true,
			AmountPaid: total,
			Change:     decimal.Zero,
			RawChange:  decimal.Zero,
		}, nil
	}
}
