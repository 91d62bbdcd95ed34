package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrEmailExists     = errors.New("el email ya está registrado")
	ErrProductInactive = errors.New("producto inactivo o sin stock")

	// Errores de validación del cobro (recuperables por el cajero).
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInsufficientTender = errors.New("efectivo insuficiente")
	ErrInvalidTender      = errors.New("monto entregado inválido")
	ErrNoCashier          = errors.New("no hay cajero autenticado")

	// ErrPaymentInFlight se retorna al intentar mutar el carrito
	// mientras un cobro está en estado Processing.
	ErrPaymentInFlight = errors.New("hay un cobro en proceso")

	// ErrPaymentFailed indica que la confirmación externa del cobro falló;
	// no se creó ninguna transacción y el carrito queda intacto.
	ErrPaymentFailed = errors.New("la confirmación del cobro falló")

	// ErrIntegrity indica que un invariante interno del carrito se violó
	// (líneas duplicadas, cantidad < 1). Es un defecto, no un error de usuario.
	ErrIntegrity = errors.New("violación de integridad del carrito")

	// ErrCorruptState indica que el estado persistido no pudo rehidratarse
	// (ej. timestamp no parseable). Se recupera con estado por defecto.
	ErrCorruptState = errors.New("estado persistido corrupto")
)
