package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrLimitReached       = errors.New("límite del plan alcanzado")
	ErrFeatureDisabled    = errors.New("la funcionalidad no está incluida en el plan")
	ErrPaymentsDisabled   = errors.New("pasarela de pagos no configurada")
	ErrMailDisabled       = errors.New("envío de correo no configurado")
	ErrSessionExpired     = errors.New("sesión expirada por inactividad")
)
