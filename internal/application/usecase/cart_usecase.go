package usecase

import (
	"github.com/jhoicas/caja-pos-api/internal/application/dto"
	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
	"github.com/jhoicas/caja-pos-api/internal/domain/money"
	"github.com/jhoicas/caja-pos-api/internal/domain/repository"
)

// CartUseCase operaciones del carrito de la caja. Resuelve el producto en
// el catálogo y delega la mutación a la sesión, que persiste cada cambio.
type CartUseCase struct {
	session *session.Session
	repo    repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(s *session.Session, repo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{session: s, repo: repo}
}

// AddItem agrega una unidad del producto al carrito. El precio se captura
// del catálogo en este momento; cambios posteriores no afectan la línea.
func (uc *CartUseCase) AddItem(productID string) (*dto.CartResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !p.Sellable() {
		return nil, domain.ErrProductInactive
	}
	if err := uc.session.AddItem(p); err != nil {
		return nil, err
	}
	return uc.View(), nil
}

// UpdateQuantity fija la cantidad exacta de la línea (0 la elimina).
func (uc *CartUseCase) UpdateQuantity(productID string, quantity int) (*dto.CartResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.session.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}
	return uc.View(), nil
}

// RemoveItem elimina la línea del producto (no-op si no existe).
func (uc *CartUseCase) RemoveItem(productID string) (*dto.CartResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.session.RemoveItem(productID); err != nil {
		return nil, err
	}
	return uc.View(), nil
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear() (*dto.CartResponse, error) {
	if err := uc.session.ClearCart(); err != nil {
		return nil, err
	}
	return uc.View(), nil
}

// View arma la vista del carrito con totales según la configuración vigente.
func (uc *CartUseCase) View() *dto.CartResponse {
	lines := uc.session.CartLines()
	sub, tax, total := uc.session.CartTotals()
	st := uc.session.Settings()
	resp := &dto.CartResponse{
		Items:    make([]dto.CartLineResponse, 0, len(lines)),
		Subtotal: sub,
		Tax:      tax,
		Total:    total,
		Currency: st.Currency,
		Display:  money.Format(total, st.Currency),
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, toCartLineResponse(l))
	}
	return resp
}

func toCartLineResponse(l entity.CartLine) dto.CartLineResponse {
	return dto.CartLineResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Name:      l.Name,
		UnitPrice: l.UnitPrice,
		Quantity:  l.Quantity,
		LineTotal: l.LineTotal(),
	}
}
