package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/caja-pos-api/internal/application/auth"
	"github.com/jhoicas/caja-pos-api/internal/application/checkout"
	"github.com/jhoicas/caja-pos-api/internal/application/dto"
	"github.com/jhoicas/caja-pos-api/internal/application/usecase"
	"github.com/jhoicas/caja-pos-api/internal/domain"
	"github.com/jhoicas/caja-pos-api/internal/domain/payment"
)

// CheckoutHandler maneja el cierre de la venta.
type CheckoutHandler struct {
	recorder *checkout.Recorder
	authUC   *auth.AuthUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(recorder *checkout.Recorder, authUC *auth.AuthUseCase) *CheckoutHandler {
	return &CheckoutHandler{recorder: recorder, authUC: authUC}
}

// Commit godoc
// @Summary      Cobrar el carrito y registrar la transacción
// @Description  El cierre es todo-o-nada: si el pago no se autoriza o la
// @Description  confirmación falla, el carrito queda intacto.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "payment_method, amount_tendered | tendered_keys"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Commit(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	cashier := h.authUC.CurrentCashier()
	if cashier == nil {
		// El token puede seguir vigente con la sesión de caja ya cerrada.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_CASHIER", Message: "no hay cajero autenticado en la caja"})
	}

	tendered := in.AmountTendered
	if in.TenderedKeys != "" {
		tendered = payment.AmountFromKeys(in.TenderedKeys)
	}

	tx, err := h.recorder.Commit(c.UserContext(), checkout.CommitInput{
		Method:   in.PaymentMethod,
		Tendered: tendered,
		Cashier:  *cashier,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"})
		case errors.Is(err, domain.ErrInsufficientTender):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_TENDER", Message: err.Error()})
		case errors.Is(err, domain.ErrPaymentInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PAYMENT_IN_FLIGHT", Message: "ya hay un cobro en curso"})
		case errors.Is(err, domain.ErrNoCashier):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_CASHIER", Message: "no hay cajero autenticado en la caja"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "método de pago desconocido"})
		case errors.Is(err, domain.ErrInvalidTender):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TENDER", Message: "el monto entregado no puede ser negativo"})
		case errors.Is(err, domain.ErrPaymentFailed):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PAYMENT_FAILED", Message: "la confirmación del pago falló; el carrito quedó intacto"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	resp := usecase.ToTransactionResponse(tx)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Abort godoc
// @Summary      Cancelar el cobro en curso
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/abort [post]
func (h *CheckoutHandler) Abort(c *fiber.Ctx) error {
	if err := h.recorder.Abort(); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_IN_FLIGHT", Message: "no hay cobro en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
