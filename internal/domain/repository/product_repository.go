package repository

import "github.com/jhoicas/caja-pos-api/internal/domain/entity"

// ProductRepository es el puerto de lectura del catálogo para el POS.
// El motor de ventas nunca escribe productos; el CRUD del catálogo vive
// fuera de este núcleo.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// ListActive lista productos activos y con stock, con filtro opcional
	// por nombre o SKU y paginación.
	ListActive(filter string, limit, offset int) ([]*entity.Product, error)
}
