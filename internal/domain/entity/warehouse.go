package entity

import "time"

// Estados de una bodega. Solo las activas son elegibles para la resolución de bodega.
const (
	WarehouseStatusActive   = "active"
	WarehouseStatusInactive = "inactive"
)

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	BranchID  string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la bodega puede recibir movimientos resueltos automáticamente.
func (w *Warehouse) IsActive() bool {
	return w != nil && w.Status == WarehouseStatusActive
}
