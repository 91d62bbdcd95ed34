package session

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

// Esquemas tipados del estado persistido (un documento JSON por clave).
// Los instantes viajan como string ISO-8601 y se reparsean al cargar:
// dejar timestamps como texto crudo tras rehidratar es un defecto que esta
// capa existe para impedir.

type persistedLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type persistedCart struct {
	Items []persistedLine `json:"items"`
}

type persistedTransaction struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receiptNumber"`
	Items         []persistedLine `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Change        decimal.Decimal `json:"change"`
	CashierID     string          `json:"cashierId"`
	CashierName   string          `json:"cashierName"`
	Timestamp     string          `json:"timestamp"`
}

type persistedTransactions struct {
	Transactions []persistedTransaction `json:"transactions"`
}

type persistedStoreSettings struct {
	TaxRate  decimal.Decimal `json:"taxRate"`
	Currency string          `json:"currency"`
}

type persistedSettings struct {
	Settings *persistedStoreSettings `json:"settings"`
}

type persistedAuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type persistedAuth struct {
	User            *persistedAuthUser `json:"user"`
	IsAuthenticated bool               `json:"isAuthenticated"`
}

// formatInstant serializa un instante como ISO-8601 en UTC.
func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseInstant reparsea un instante serializado. Un valor no parseable es un
// error de carga (ErrCorruptState), nunca un instante inválido silencioso.
func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", domain.ErrCorruptState, s, err)
	}
	return t, nil
}

func toPersistedLines(lines []entity.CartLine) []persistedLine {
	out := make([]persistedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, persistedLine{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func fromPersistedLines(lines []persistedLine) []entity.CartLine {
	out := make([]entity.CartLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.CartLine{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return out
}

func toPersistedTransaction(tx entity.Transaction) persistedTransaction {
	return persistedTransaction{
		ID:            tx.ID,
		ReceiptNumber: tx.ReceiptNumber,
		Items:         toPersistedLines(tx.Items),
		Subtotal:      tx.Subtotal,
		Tax:           tx.Tax,
		Total:         tx.Total,
		PaymentMethod: tx.PaymentMethod,
		AmountPaid:    tx.AmountPaid,
		Change:        tx.Change,
		CashierID:     tx.CashierID,
		CashierName:   tx.CashierName,
		Timestamp:     formatInstant(tx.Timestamp),
	}
}

func fromPersistedTransaction(p persistedTransaction) (entity.Transaction, error) {
	ts, err := parseInstant(p.Timestamp)
	if err != nil {
		return entity.Transaction{}, err
	}
	return entity.Transaction{
		ID:            p.ID,
		ReceiptNumber: p.ReceiptNumber,
		Items:         fromPersistedLines(p.Items),
		Subtotal:      p.Subtotal,
		Tax:           p.Tax,
		Total:         p.Total,
		PaymentMethod: p.PaymentMethod,
		AmountPaid:    p.AmountPaid,
		Change:        p.Change,
		CashierID:     p.CashierID,
		CashierName:   p.CashierName,
		Timestamp:     ts,
	}, nil
}
