package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; los casos de uso nunca los reintentan.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUsuarioNotFound   = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado = errors.New("el email ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")

	// Reglas de negocio del núcleo de inventario.
	ErrCantidadInvalida    = errors.New("la cantidad debe ser mayor a cero")
	ErrStockInsuficiente   = errors.New("stock insuficiente para este movimiento")
	ErrTransicionInvalida  = errors.New("transición de estado no permitida")
	ErrEstadoTerminal      = errors.New("no se puede eliminar un producto en estado final")
	ErrEstadoNoPermite     = errors.New("el estado actual no permite modificar el stock")
	ErrEstadoInvalido      = errors.New("estado inválido")
	ErrTipoInvalido        = errors.New("tipo de movimiento inválido")
	ErrMovimientoRevertido = errors.New("el movimiento ya fue revertido")
)
