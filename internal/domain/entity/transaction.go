package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago soportados (enumeración cerrada).
const (
	PaymentCash          = "cash"
	PaymentCard          = "card"
	PaymentDigitalWallet = "digital_wallet"
)

// ValidPaymentMethod verifica que el método pertenezca a la enumeración.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentDigitalWallet:
		return true
	}
	return false
}

// Transaction es el registro inmutable de una venta cerrada. Una vez creada
// nunca se modifica ni se elimina: es un hecho de auditoría append-only.
// Invariantes: Total = Subtotal + Tax; para efectivo Change = AmountPaid - Total
// con AmountPaid >= Total; para los demás métodos AmountPaid = Total y Change = 0.
type Transaction struct {
	ID            string
	ReceiptNumber string     // único, legible; componente de tiempo + componente aleatorio
	Items         []CartLine // copia profunda de las líneas al momento del cierre
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal
	CashierID     string
	CashierName   string
	Timestamp     time.Time
}
