package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ProductRepository es el puerto de lectura del catálogo de productos.
// Ambos métodos devuelven (nil, nil) si no hay coincidencia.
type ProductRepository interface {
	// GetByID busca por ID interno; si branchID no es vacío, el producto debe pertenecer a esa sucursal.
	GetByID(ctx context.Context, id, branchID string) (*entity.Product, error)
	// GetByExternalID traduce el identificador de una integración al producto interno.
	GetByExternalID(ctx context.Context, storeID, externalID string) (*entity.Product, error)
}
