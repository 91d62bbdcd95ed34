// Package pdf implementa la generación del tirilla de venta (recibo POS)
// en formato térmico de 80mm usando Maroto v2.
//
// Layout del recibo:
//
//	┌──────────────────────────────┐
//	│  NOMBRE DE LA TIENDA          │
//	│  Recibo N° + Fecha + Cajero   │
//	│  ────────────────────────────│
//	│  Cant | Producto | Importe    │
//	│  ────────────────────────────│
//	│  Subtotal / Impuesto / TOTAL  │
//	│  Pago / Recibido / Cambio     │
//	│  ────────────────────────────│
//	│  Leyenda de agradecimiento    │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorInk  = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa usecase.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceiptPDF genera la tirilla de la transacción y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	tx *entity.Transaction,
	settings entity.StoreSettings,
	storeName string,
) ([]byte, error) {
	// 80mm de ancho, alto proporcional al número de líneas.
	height := 110.0 + float64(len(tx.Items))*6.0
	cfg := config.NewBuilder().
		WithDimensions(80, height).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle("Recibo "+tx.ReceiptNumber, true).
		WithAuthor(storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(tx, storeName)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(tx.Items, settings.Currency) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorInk, Thickness: 0.3}))
	m.AddRows(totalsRows(tx, settings.Currency)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: nombre de la tienda, número de recibo, fecha y cajero.
func headerRows(tx *entity.Transaction, storeName string) []core.Row {
	fecha := tx.Timestamp.Format("02/01/2006 15:04:05")
	return []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorInk, Top: 1,
			}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New("Recibo: "+tx.ReceiptNumber, props.Text{
				Size: 7, Align: align.Center, Top: 1, Color: colorGray,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 7, Align: align.Center, Top: 5, Color: colorGray,
			}),
			text.New("Cajero: "+tx.CashierName, props.Text{
				Size: 7, Align: align.Center, Top: 9, Color: colorGray,
			}),
		)),
	}
}

// itemsHeaderRow: cabecera de la tabla de líneas.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorInk, Top: 1,
		}))
	}
	return row.New(5).Add(
		h("Cant", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Importe", 4, align.Right),
	)
}

// itemRows: una fila por línea vendida, con el precio capturado.
func itemRows(items []entity.CartLine, currency string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%dx", it.Quantity),
				props.Text{Size: 7, Align: align.Left, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 7, Align: align.Left, Top: 1},
			)),
			col.New(4).Add(text.New(
				money.Format(it.LineTotal(), currency),
				props.Text{Size: 7, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// totalsRows: subtotal, impuesto, total y desglose del pago.
func totalsRows(tx *entity.Transaction, currency string) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 7.0
		if bold {
			style = fontstyle.Bold
			size = 9
		}
		return row.New(5).Add(
			col.New(6).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Left, Top: 1,
			})),
			col.New(6).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Top: 1,
			})),
		)
	}

	rows := []core.Row{
		pair("Subtotal", money.Format(tx.Subtotal, currency), false),
		pair("Impuesto", money.Format(tx.Tax, currency), false),
		pair("TOTAL", money.Format(tx.Total, currency), true),
		pair("Pago ("+paymentLabel(tx.PaymentMethod)+")", money.Format(tx.AmountPaid, currency), false),
	}
	if tx.PaymentMethod == entity.PaymentCash && tx.Change.GreaterThan(decimal.Zero) {
		rows = append(rows, pair("Cambio", money.Format(tx.Change, currency), false))
	}
	return rows
}

// footerRow: leyenda de cierre.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("¡Gracias por su compra!", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorInk, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentCard:
		return "Tarjeta"
	case entity.PaymentDigitalWallet:
		return "Billetera digital"
	default:
		return method
	}
}
