package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrValidation   = errors.New("error de validación")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrStorage      = errors.New("error de almacenamiento")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// Errores específicos del motor de stock. Cada uno se clasifica con errors.Is
// contra su categoría (ErrNotFound, ErrValidation, ErrInvalidInput) y conserva su propio mensaje.
var (
	ErrProductNotFound      = newKindError(ErrNotFound, "producto no encontrado")
	ErrWarehouseNotFound    = newKindError(ErrNotFound, "bodega no encontrada")
	ErrNoWarehouseAvailable = newKindError(ErrValidation, "no hay bodega disponible para el movimiento de stock")
	ErrInvalidDirection     = newKindError(ErrInvalidInput, "direction debe ser in, out o set")
	ErrNegativeTarget       = newKindError(ErrInvalidInput, "la cantidad objetivo no puede ser negativa")
	ErrQuantityRequired     = newKindError(ErrInvalidInput, "quantity es obligatorio y debe ser numérico")
	ErrInvalidStatus        = newKindError(ErrInvalidInput, "status debe ser active o inactive")
	ErrWarehouseDuplicate   = newKindError(ErrDuplicate, "ya existe una bodega con ese nombre en la sucursal")
)

type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// StorageError envuelve un fallo del almacén persistente (conectividad, constraint, etc.).
// errors.Is(err, ErrStorage) es verdadero para cualquier StorageError.
// Constraint no está vacío cuando el almacén rechazó el dato (FK, CHECK, formato).
type StorageError struct {
	Op         string
	Err        error
	Constraint string
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite clasificar el error como ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NewStorageError construye un StorageError; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
