package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente     = errors.New("stock insuficiente")
	ErrCantidadInvalida      = errors.New("cantidad inválida")
	ErrUnidadDesconocida     = errors.New("unidad de medida desconocida")
	ErrEstadoActivoDuplicado = errors.New("ya existe un registro activo")
	ErrCapacidadExcedida     = errors.New("capacidad del silo excedida")
	ErrUltimoAdmin           = errors.New("no se puede eliminar el último administrador")
	ErrVencimientoPasado     = errors.New("la fecha de vencimiento debe ser futura")
)

// StockInsuficienteError detalla un rechazo por stock: qué producto, cuánto
// se pidió y cuánto había. Envuelve ErrStockInsuficiente para errors.Is.
type StockInsuficienteError struct {
	ProductoID    string
	Producto      string
	UbicacionTipo string
	UbicacionID   string
	Solicitado    string // cantidad en unidad base, formateada
	Disponible    string
}

func (e *StockInsuficienteError) Error() string {
	return "stock insuficiente de " + e.Producto + ": solicitado " + e.Solicitado + ", disponible " + e.Disponible
}

// Unwrap permite errors.Is(err, ErrStockInsuficiente).
func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }
