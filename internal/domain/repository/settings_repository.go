package repository

import "context"

// SettingsRepository almacén clave/valor de configuración del sistema.
type SettingsRepository interface {
	// Get devuelve el valor y si la clave existe.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
