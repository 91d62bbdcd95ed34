// Package gateway contiene los adaptadores de confirmación de pago.
package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caja-pos-api/internal/application/checkout"
	"github.com/jhoicas/caja-pos-api/pkg/logger"
)

var _ checkout.PaymentConfirmer = (*SimulatedConfirmer)(nil)

// SimulatedConfirmer confirma pagos tras una pausa breve que emula la
// latencia de un datáfono o pasarela real. No rechaza nunca: la
// autorización (efectivo suficiente, método válido) ya ocurrió antes.
type SimulatedConfirmer struct {
	delay time.Duration
	log   *logger.Logger
}

// NewSimulatedConfirmer construye el confirmador. delayMS acota la pausa
// simulada; con 0 o negativo confirma de inmediato.
func NewSimulatedConfirmer(delayMS int, log *logger.Logger) *SimulatedConfirmer {
	d := time.Duration(delayMS) * time.Millisecond
	if d < 0 {
		d = 0
	}
	return &SimulatedConfirmer{delay: d, log: log}
}

// Confirm espera la pausa configurada respetando la cancelación del
// contexto y devuelve éxito.
func (c *SimulatedConfirmer) Confirm(ctx context.Context, method string, amount decimal.Decimal) error {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	c.log.Debug().
		Str("method", method).
		Str("amount", amount.StringFixed(2)).
		Msg("pago confirmado por la pasarela simulada")
	return nil
}
