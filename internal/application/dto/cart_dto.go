package dto

import "github.com/shopspring/decimal"

// AddItemRequest body para POST /api/cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// UpdateQuantityRequest body para PUT /api/cart/items/:productId.
// La cantidad se fija al valor exacto; 0 o negativa elimina la línea.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito en respuestas.
type CartLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse carrito con totales derivados con la configuración vigente.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Tax      decimal.Decimal    `json:"tax"`
	Total    decimal.Decimal    `json:"total"`
	Currency string             `json:"currency"`
	Display  string             `json:"display_total"` // total formateado, solo presentación
}
