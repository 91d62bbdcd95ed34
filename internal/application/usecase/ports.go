package usecase

import (
	"context"

	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera la representación imprimible del recibo de
// una transacción cerrada. La implementación vive en infraestructura.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, tx *entity.Transaction, settings entity.StoreSettings, storeName string) ([]byte, error)
}
