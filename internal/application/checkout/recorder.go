// Package checkout implementa el cierre de la venta: la máquina de estados
// Idle -> Processing -> {Committed, Failed} que convierte un carrito
// autorizado más un pago en una transacción inmutable.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
	"github.com/jhoicas/caja-pos-api/internal/domain/payment"
)

// Recorder orquesta el cierre de la venta sobre la sesión de la caja.
type Recorder struct {
	session   *session.Session
	confirmer PaymentConfirmer
}

// NewRecorder construye el caso de uso.
func NewRecorder(s *session.Session, confirmer PaymentConfirmer) *Recorder {
	return &Recorder{session: s, confirmer: confirmer}
}

// CommitInput es la solicitud de cierre: método, efectivo entregado
// (solo significativo para cash) y la identidad del cajero.
type CommitInput struct {
	Method   string
	Tendered decimal.Decimal
	Cashier  entity.Cashier
}

// Commit ejecuta el cierre completo. El commit es todo-o-nada: cualquier
// falla antes de la confirmación deja el carrito exactamente como estaba y
// no crea ninguna transacción parcial.
//
// Guardas de entrada (permanecen en Idle): carrito vacío, pago no
// autorizado, sin identidad de cajero, método desconocido.
func (r *Recorder) Commit(ctx context.Context, in CommitInput) (*entity.Transaction, error) {
	if in.Cashier.ID == "" {
		return nil, domain.ErrNoCashier
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if in.Method == entity.PaymentCash && in.Tendered.IsNegative() {
		return nil, domain.ErrInvalidTender
	}

	// Idle -> Processing: congela el carrito y toma el snapshot autorizado.
	lines, err := r.session.BeginPayment()
	if err != nil {
		return nil, err
	}

	st := r.session.Settings()
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := money.CalculateTax(subtotal, st.TaxRate)
	total := money.CalculateTotal(subtotal, tax)

	res, err := payment.Validate(in.Method, in.Tendered, total)
	if err != nil {
		_ = r.session.AbortPayment()
		return nil, err
	}
	if !res.Authorized {
		_ = r.session.AbortPayment()
		return nil, fmt.Errorf("%w: faltan %s", domain.ErrInsufficientTender, res.Shortfall.StringFixed(2))
	}

	// Confirmación externa (demora acotada). Falla => Processing -> Failed.
	if err := r.confirmer.Confirm(ctx, in.Method, total); err != nil {
		_ = r.session.AbortPayment()
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	now := time.Now()
	tx := entity.Transaction{
		ID:            uuid.New().String(),
		ReceiptNumber: NewReceiptNumber(now),
		Items:         lines, // ya es una copia profunda del carrito
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMethod: in.Method,
		AmountPaid:    res.AmountPaid,
		Change:        res.Change,
		CashierID:     in.Cashier.ID,
		CashierName:   in.Cashier.Name,
		Timestamp:     now,
	}
	if err := r.session.CommitPayment(tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Abort abandona el cobro en vuelo y regresa a Idle sin efectos.
func (r *Recorder) Abort() error {
	return r.session.AbortPayment()
}

// NewReceiptNumber genera el número de recibo legible: componente de tiempo
// en alta resolución más sufijo aleatorio, para que dos cierres dentro del
// mismo milisegundo no colisionen.
func NewReceiptNumber(at time.Time) string {
	rnd := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("POS-%s-%s", at.Format("20060102-150405.000"), rnd)
}
