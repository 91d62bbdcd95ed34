package dto

import "github.com/shopspring/decimal"

// CheckoutRequest body para POST /api/checkout.
// AmountTendered solo es significativo para método cash. TenderedKeys es la
// alternativa cruda del teclado numérico (dígitos y punto, tal como se
// tecleó); si viene, se normaliza con el editor de entrega y tiene
// prioridad sobre AmountTendered.
type CheckoutRequest struct {
	PaymentMethod  string          `json:"payment_method"` // cash | card | digital_wallet
	AmountTendered decimal.Decimal `json:"amount_tendered,omitempty"`
	TenderedKeys   string          `json:"tendered_keys,omitempty"`
}

// TransactionResponse transacción cerrada en respuestas.
type TransactionResponse struct {
	ID            string             `json:"id"`
	ReceiptNumber string             `json:"receipt_number"`
	Items         []CartLineResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	Change        decimal.Decimal    `json:"change"`
	CashierID     string             `json:"cashier_id"`
	CashierName   string             `json:"cashier_name"`
	Timestamp     string             `json:"timestamp"` // ISO-8601
}

// TransactionListResponse página del registro, más reciente primero.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         PageResponse          `json:"page"`
}

// DailySummaryResponse resumen de ventas de un día.
type DailySummaryResponse struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
