package checkout

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentConfirmer es el paso de confirmación externa del cobro (datáfono,
// pasarela, gaveta de efectivo). Para este núcleo es una operación opaca
// con demora acotada: un error significa Processing -> Failed y el carrito
// queda intacto. Una integración real se sustituye aquí sin tocar la
// máquina de estados.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, method string, amount decimal.Decimal) error
}
