// Package memory implementa los puertos de repositorio en memoria.
// Se usa en pruebas y con STORAGE_DRIVER=memory; no persiste entre reinicios.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-recetas/internal/application/inventory"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// state es el contenido completo del almacén. Se clona para cada transacción.
type state struct {
	users        map[string]entity.User
	stockItems   map[string]entity.StockItem
	products     map[string]entity.Product // sin Recipe; las líneas viven en recipeLines
	recipeLines  map[string][]entity.RecipeLine
	transactions map[string]entity.SaleTransaction
}

func newState() *state {
	return &state{
		users:        make(map[string]entity.User),
		stockItems:   make(map[string]entity.StockItem),
		products:     make(map[string]entity.Product),
		recipeLines:  make(map[string][]entity.RecipeLine),
		transactions: make(map[string]entity.SaleTransaction),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:        make(map[string]entity.User, len(s.users)),
		stockItems:   make(map[string]entity.StockItem, len(s.stockItems)),
		products:     make(map[string]entity.Product, len(s.products)),
		recipeLines:  make(map[string][]entity.RecipeLine, len(s.recipeLines)),
		transactions: make(map[string]entity.SaleTransaction, len(s.transactions)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.stockItems {
		c.stockItems[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.recipeLines {
		c.recipeLines[k] = append([]entity.RecipeLine(nil), v...)
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// Store guarda el estado compartido. txMu serializa escrituras y transacciones
// (equivale al bloqueo de filas de PostgreSQL); mu protege el puntero al estado.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// handle da acceso a un estado: el compartido (fuera de transacción) o la copia de trabajo de una tx.
type handle struct {
	store *Store
	tx    *state // no nil dentro de TxRunner.Run
}

func (h handle) read(fn func(s *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.st)
}

// write aplica fn sobre una copia y la publica solo si fn no falla.
func (h handle) write(fn func(s *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.txMu.Lock()
	defer h.store.txMu.Unlock()
	h.store.mu.RLock()
	work := h.store.st.clone()
	h.store.mu.RUnlock()
	if err := fn(work); err != nil {
		return err
	}
	h.store.mu.Lock()
	h.store.st = work
	h.store.mu.Unlock()
	return nil
}

// TxRunner ejecuta fn sobre una copia del estado y la publica al terminar sin error.
// Las transacciones se ejecutan de a una: equivale a bloquear todas las filas.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una "transacción", ejecuta fn con repos atados a la copia y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	work := r.store.st.clone()
	r.store.mu.RUnlock()

	h := handle{store: r.store, tx: work}
	if err := fn(&StockItemRepo{h: h}, &ProductRepo{h: h}, &TransactionRepo{h: h}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	r.store.st = work
	r.store.mu.Unlock()
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
