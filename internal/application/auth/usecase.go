package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// StoreAuthUseCase autentica integraciones (tiendas, POS) por API key.
// Formato de la key: <store_id>.<secreto>; se compara el secreto contra el hash bcrypt guardado.
type StoreAuthUseCase struct {
	storeRepo repository.StoreRepository
}

// NewStoreAuthUseCase construye el caso de uso de auth de integraciones.
func NewStoreAuthUseCase(storeRepo repository.StoreRepository) *StoreAuthUseCase {
	return &StoreAuthUseCase{storeRepo: storeRepo}
}

// Authenticate devuelve la integración dueña de apiKey. ErrUnauthorized si la key es inválida,
// ErrForbidden si la integración está inactiva; los fallos del almacén se devuelven tal cual.
func (uc *StoreAuthUseCase) Authenticate(ctx context.Context, apiKey string) (*entity.Store, error) {
	storeID, secret, ok := strings.Cut(strings.TrimSpace(apiKey), ".")
	if !ok || secret == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(storeID); err != nil {
		return nil, domain.ErrUnauthorized
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.APIKeyHash), []byte(secret)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !store.Active {
		return nil, domain.ErrForbidden
	}
	return store, nil
}
