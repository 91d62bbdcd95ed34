package usecase

import (
	"strings"

	"github.com/jhoicas/caja-pos-api/internal/application/dto"
	"github.com/jhoicas/caja-pos-api/internal/application/session"
	"github.com/jhoicas/caja-pos-api/internal/domain/entity"
)

// SettingsUseCase lectura y actualización de la configuración de la tienda.
// El motor de ventas la consume como dependencia de solo lectura.
type SettingsUseCase struct {
	session *session.Session
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(s *session.Session) *SettingsUseCase {
	return &SettingsUseCase{session: s}
}

// Current devuelve la configuración vigente.
func (uc *SettingsUseCase) Current() *dto.SettingsResponse {
	st := uc.session.Settings()
	return &dto.SettingsResponse{TaxRate: st.TaxRate, Currency: st.Currency}
}

// Update valida (tasa en [0,1], código ISO de 3 letras) y persiste.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	st := entity.StoreSettings{
		TaxRate:  in.TaxRate,
		Currency: strings.ToUpper(strings.TrimSpace(in.Currency)),
	}
	if err := uc.session.UpdateSettings(st); err != nil {
		return nil, err
	}
	return uc.Current(), nil
}
