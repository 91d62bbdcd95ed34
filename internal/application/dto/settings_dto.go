package dto

import "github.com/shopspring/decimal"

// SettingsResponse configuración vigente de la tienda.
type SettingsResponse struct {
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Currency string          `json:"currency"`
}

// UpdateSettingsRequest body para PUT /api/settings (solo admin).
type UpdateSettingsRequest struct {
	TaxRate  decimal.Decimal `json:"tax_rate"`
	Currency string          `json:"currency"`
}
