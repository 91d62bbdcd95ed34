package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/application/dto"
	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

// TransactionUseCase consultas de solo lectura sobre el registro de
// transacciones (historial y reportes). El registro es append-only: aquí
// no hay updates ni deletes.
type TransactionUseCase struct {
	session   *session.Session
	pdf       ReceiptPDFGenerator
	storeName string
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(s *session.Session, pdf ReceiptPDFGenerator, storeName string) *TransactionUseCase {
	return &TransactionUseCase{session: s, pdf: pdf, storeName: storeName}
}

// List página del registro, más reciente primero. Con from/to (ambos) se
// consulta por rango de fechas.
func (uc *TransactionUseCase) List(page dto.PageRequest, from, to *time.Time) *dto.TransactionListResponse {
	page.DefaultPage()
	var txs []entity.Transaction
	if from != nil && to != nil {
		txs = uc.session.TransactionsByDateRange(*from, *to)
	} else {
		txs = uc.session.Transactions(page.Limit, page.Offset)
	}
	out := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txs)),
		Page: dto.PageResponse{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  uc.session.TransactionCount(),
		},
	}
	for i := range txs {
		out.Transactions = append(out.Transactions, ToTransactionResponse(&txs[i]))
	}
	return out
}

// GetByID obtiene una transacción. (nil, nil) si no existe.
func (uc *TransactionUseCase) GetByID(id string) (*dto.TransactionResponse, error) {
	tx := uc.session.TransactionByID(id)
	if tx == nil {
		return nil, nil
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// DailySummary resumen de ventas del día indicado (hora local del proceso).
func (uc *TransactionUseCase) DailySummary(day time.Time) *dto.DailySummaryResponse {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	txs := uc.session.TransactionsByDateRange(start, end)

	out := &dto.DailySummaryResponse{
		Date:     start.Format("2006-01-02"),
		Count:    len(txs),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, tx := range txs {
		out.Subtotal = out.Subtotal.Add(tx.Subtotal)
		out.Tax = out.Tax.Add(tx.Tax)
		out.Total = out.Total.Add(tx.Total)
	}
	return out
}

// ReceiptPDF genera el PDF del recibo de la transacción.
func (uc *TransactionUseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	tx := uc.session.TransactionByID(id)
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateReceiptPDF(ctx, tx, uc.session.Settings(), uc.storeName)
}

// ToTransactionResponse arma el DTO de una transacción; el timestamp sale
// como ISO-8601.
func ToTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	items := make([]dto.CartLineResponse, 0, len(tx.Items))
	for _, l := range tx.Items {
		items = append(items, toCartLineResponse(l))
	}
	return dto.TransactionResponse{
		ID:            tx.ID,
		ReceiptNumber: tx.ReceiptNumber,
		Items:         items,
		Subtotal:      tx.Subtotal,
		Tax:           tx.Tax,
		Total:         tx.Total,
		PaymentMethod: tx.PaymentMethod,
		AmountPaid:    tx.AmountPaid,
		Change:        tx.Change,
		CashierID:     tx.CashierID,
		CashierName:   tx.CashierName,
		Timestamp:     tx.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
