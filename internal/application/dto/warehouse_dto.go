package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	BranchID string `json:"branch_id"`
	Status   string `json:"status"` // por defecto active
}

// UpdateWarehouseStatusRequest entrada para activar/desactivar una bodega.
type UpdateWarehouseStatusRequest struct {
	Status string `json:"status"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id,omitempty"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// DefaultWarehouseRequest body de PUT /api/v1/settings/default-warehouse. null borra el valor.
type DefaultWarehouseRequest struct {
	WarehouseID *string `json:"warehouse_id"`
}

// DefaultWarehouseResponse valor actual de la bodega por defecto.
type DefaultWarehouseResponse struct {
	WarehouseID *string `json:"warehouse_id"`
}
