// Package memory implementa los puertos del motor de stock en memoria.
// Se usa en tests y en entornos sin PostgreSQL; respeta las mismas reglas que los adaptadores
// postgres (ledger solo-agregar, orden estable de bodegas, (nil, nil) cuando no hay fila).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// AppendHook se invoca antes de cada inserción en el ledger; un error aborta la inserción.
type AppendHook func(m *entity.StockMovement) error

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	products   map[string]*entity.Product
	warehouses []*entity.Warehouse
	movements  []*entity.StockMovement
	settings   map[string]string
	stores     map[string]*entity.Store
	mappings   map[string]string // storeID + "\x00" + externalID -> productID
	appendHook AppendHook
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		settings: make(map[string]string),
		stores:   make(map[string]*entity.Store),
		mappings: make(map[string]string),
	}
}

// ── Carga de datos ────────────────────────────────────────────────────────────

// AddProduct registra un producto del catálogo.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// AddWarehouse registra una bodega sin validar unicidad.
func (s *Store) AddWarehouse(w *entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *w
	s.warehouses = append(s.warehouses, &cp)
}

// AddStore registra una integración.
func (s *Store) AddStore(st *entity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.stores[st.ID] = &cp
}

// MapExternalID asocia el external_id de una integración a un producto.
func (s *Store) MapExternalID(m entity.ProductStoreMapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[mappingKey(m.StoreID, m.ExternalID)] = m.ProductID
}

// OnAppend instala un hook para simular fallos del almacén.
func (s *Store) OnAppend(h AppendHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendHook = h
}

// Movements devuelve una copia del ledger en orden de inserción.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

func mappingKey(storeID, externalID string) string {
	return storeID + "\x00" + externalID
}

// ── Repositorios ──────────────────────────────────────────────────────────────

// Ledger devuelve el repositorio de movimientos.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{s: s} }

// Levels devuelve el repositorio de saldos agrupados.
func (s *Store) Levels() *LevelRepo { return &LevelRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Warehouses devuelve el repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Settings devuelve el repositorio clave/valor.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s: s} }

// Stores devuelve el repositorio de integraciones.
func (s *Store) Stores() *StoreRepo { return &StoreRepo{s: s} }

// TxRunner devuelve un runner que aplica los movimientos solo si fn termina sin error.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

var (
	_ repository.StockMovementRepository = (*LedgerRepo)(nil)
	_ repository.StockLevelRepository    = (*LevelRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.WarehouseRepository     = (*WarehouseRepo)(nil)
	_ repository.SettingsRepository      = (*SettingsRepo)(nil)
	_ repository.StoreRepository         = (*StoreRepo)(nil)
)

// LedgerRepo ledger en memoria.
type LedgerRepo struct{ s *Store }

// Append agrega un movimiento. Rechaza cantidades no positivas o direcciones inválidas como lo haría el CHECK de la tabla.
func (r *LedgerRepo) Append(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.appendLocked(m)
}

func (s *Store) appendLocked(m *entity.StockMovement) error {
	if err := s.checkLocked(m); err != nil {
		return err
	}
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

// checkLocked aplica el hook de fallos y las restricciones de la tabla.
func (s *Store) checkLocked(m *entity.StockMovement) error {
	if s.appendHook != nil {
		if err := s.appendHook(m); err != nil {
			return domain.NewStorageError("insert stock movement", err)
		}
	}
	if !m.Quantity.IsPositive() || (m.Direction != entity.DirectionIn && m.Direction != entity.DirectionOut) {
		return &domain.StorageError{Op: "insert stock movement", Err: errCheck, Constraint: "stock_movements_check"}
	}
	return nil
}

// SumBalance agrega Σin − Σout sobre las filas que cumplen el filtro.
func (r *LedgerRepo) SumBalance(_ context.Context, f repository.BalanceFilter) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != f.ProductID {
			continue
		}
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		if f.BranchID != "" && m.BranchID != f.BranchID {
			continue
		}
		rows = append(rows, m)
	}
	return inventory.Balance(rows), nil
}

// List filtra, ordena del más reciente al más antiguo y pagina.
func (r *LedgerRepo) List(_ context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var from, to string
	if f.From != nil {
		from = f.From.Format(dateLayout)
	}
	if f.To != nil {
		to = f.To.Format(dateLayout)
	}
	matched := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		day := m.CreatedAt.Format(dateLayout)
		switch {
		case f.BranchID != "" && m.BranchID != f.BranchID,
			f.ProductID != "" && m.ProductID != f.ProductID,
			f.WarehouseID != "" && m.WarehouseID != f.WarehouseID,
			f.Direction != "" && m.Direction != f.Direction,
			from != "" && day < from,
			to != "" && day > to:
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return paginate(matched, limit, offset), len(matched), nil
}

// LevelRepo saldos por producto en memoria.
type LevelRepo struct{ s *Store }

// List replica el LEFT JOIN agrupado: todo producto del alcance aparece, con 0 si no tiene movimientos.
func (r *LevelRepo) List(_ context.Context, f repository.StockLevelFilter, limit, offset int) ([]entity.StockLevel, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	levels := make([]entity.StockLevel, 0, len(r.s.products))
	for _, p := range r.s.products {
		if f.BranchID != "" && p.BranchID != f.BranchID {
			continue
		}
		if f.SKU != "" && p.SKU != f.SKU {
			continue
		}
		var rows []*entity.StockMovement
		for _, m := range r.s.movements {
			if m.ProductID == p.ID && (f.WarehouseID == "" || m.WarehouseID == f.WarehouseID) {
				rows = append(rows, m)
			}
		}
		l := entity.StockLevel{
			ProductID:       p.ID,
			Name:            p.Name,
			SKU:             p.SKU,
			MinStock:        p.MinStock,
			BranchID:        p.BranchID,
			CurrentQuantity: inventory.Balance(rows),
		}
		if f.LowStock && !l.IsLow() {
			continue
		}
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].SKU != levels[j].SKU {
			return levels[i].SKU < levels[j].SKU
		}
		return levels[i].ProductID < levels[j].ProductID
	})
	return paginate(levels, limit, offset), len(levels), nil
}

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(_ context.Context, id, branchID string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || (branchID != "" && p.BranchID != branchID) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByExternalID(_ context.Context, storeID, externalID string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.mappings[mappingKey(storeID, externalID)]
	if !ok {
		return nil, nil
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// WarehouseRepo bodegas en memoria, en orden de inserción.
type WarehouseRepo struct{ s *Store }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.warehouses {
		if existing.BranchID == w.BranchID && strings.EqualFold(existing.Name, w.Name) {
			return domain.ErrWarehouseDuplicate
		}
	}
	cp := *w
	r.s.warehouses = append(r.s.warehouses, &cp)
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.warehouses {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *WarehouseRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.warehouses {
		if w.ID == id {
			w.Status = status
			return nil
		}
	}
	return domain.ErrWarehouseNotFound
}

func (r *WarehouseRepo) List(_ context.Context, branchID string, limit, offset int) ([]*entity.Warehouse, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Warehouse, 0)
	for _, w := range r.s.sortedWarehouses() {
		if branchID == "" || w.BranchID == branchID {
			cp := *w
			list = append(list, &cp)
		}
	}
	return paginate(list, limit, offset), len(list), nil
}

// FirstActive orden (created_at, id); branchID vacío = todo el sistema.
func (r *WarehouseRepo) FirstActive(_ context.Context, branchID string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.sortedWarehouses() {
		if w.IsActive() && (branchID == "" || w.BranchID == branchID) {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) sortedWarehouses() []*entity.Warehouse {
	out := append([]*entity.Warehouse(nil), s.warehouses...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SettingsRepo clave/valor en memoria.
type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.settings[key]
	return v, ok, nil
}

func (r *SettingsRepo) Set(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}

func (r *SettingsRepo) Delete(_ context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.settings, key)
	return nil
}

// StoreRepo integraciones en memoria.
type StoreRepo struct{ s *Store }

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
