package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// WarehouseResolver elige la bodega de una operación que no trae una utilizable.
// Orden estricto, gana el primero que produce valor:
//
//  1. preferredID explícito (sin verificar existencia; la FK del ledger lo valida)
//  2. bodega por defecto configurada en settings
//  3. primera bodega activa de la sucursal branchID
//  4. primera bodega activa del sistema
type WarehouseResolver struct {
	settings   SettingsProvider
	warehouses repository.WarehouseRepository
}

// NewWarehouseResolver construye el resolvedor.
func NewWarehouseResolver(settings SettingsProvider, warehouses repository.WarehouseRepository) *WarehouseResolver {
	return &WarehouseResolver{settings: settings, warehouses: warehouses}
}

// Resolve devuelve el ID de bodega y ok=false si ningún paso produjo valor
// (no existe ninguna bodega activa). ok=false debe tratarse como error antes de escribir.
func (r *WarehouseResolver) Resolve(ctx context.Context, preferredID, branchID string) (string, bool, error) {
	if preferredID != "" {
		return preferredID, true, nil
	}

	def, found, err := r.settings.Get(ctx, SettingDefaultWarehouseID)
	if err != nil {
		return "", false, err
	}
	if def = strings.TrimSpace(def); found && def != "" {
		return def, true, nil
	}

	if branchID != "" {
		wh, err := r.warehouses.FirstActive(ctx, branchID)
		if err != nil {
			return "", false, err
		}
		if wh != nil {
			return wh.ID, true, nil
		}
	}

	wh, err := r.warehouses.FirstActive(ctx, "")
	if err != nil {
		return "", false, err
	}
	if wh == nil {
		return "", false, nil
	}
	return wh.ID, true, nil
}
