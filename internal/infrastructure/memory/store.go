// Package memory implementa los repositorios sobre un almacén en memoria.
// Se usa con APP_STORAGE=memory y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Operaciones de escritura en las que se puede inyectar un fallo (ver FailOn).
const (
	OpUserCreate       = "users.create"
	OpProductCreate    = "products.create"
	OpProductUpdate    = "products.update"
	OpProductDecrement = "products.decrement"
	OpProductDelete    = "products.delete"
	OpSaleCreate       = "sales.create"
	OpHistoryAppend    = "history.append"
)

type state struct {
	users    []entity.User
	products []entity.Product
	sales    []entity.Sale
	history  []entity.StockHistory
}

func (s *state) clone() *state {
	return &state{
		users:    append([]entity.User(nil), s.users...),
		products: append([]entity.Product(nil), s.products...),
		sales:    append([]entity.Sale(nil), s.sales...),
		history:  append([]entity.StockHistory(nil), s.history...),
	}
}

func (s *state) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *state) userByID(id string) *entity.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

// Store almacén en memoria. Un único mutex serializa transacciones y accesos sueltos;
// las transacciones trabajan sobre una copia que solo se publica si fn no devuelve error.
type Store struct {
	mu    sync.Mutex
	st    *state
	fails map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{}, fails: map[string]error{}}
}

// FailOn hace que la operación op devuelva err hasta que se llame a FailOn(op, nil).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, op)
		return
	}
	s.fails[op] = err
}

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepository { return &UserRepository{h: storeHandle{s}} }

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{h: storeHandle{s}} }

// Sales devuelve el repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepository { return &SaleRepository{h: storeHandle{s}} }

// StockHistory devuelve el repositorio del historial fuera de transacción.
func (s *Store) StockHistory() *StockHistoryRepository {
	return &StockHistoryRepository{h: storeHandle{s}}
}

// Reports devuelve el repositorio de reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{h: storeHandle{s}} }

// handle abstrae si el repositorio opera sobre el estado publicado (con lock) o sobre la copia de una tx.
type handle interface {
	read(fn func(st *state) error) error
	write(op string, fn func(st *state) error) error
}

type storeHandle struct{ s *Store }

func (h storeHandle) read(fn func(st *state) error) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return fn(h.s.st)
}

func (h storeHandle) write(op string, fn func(st *state) error) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if err := h.s.fails[op]; err != nil {
		return err
	}
	return fn(h.s.st)
}

// txHandle se usa con el mutex ya tomado por TxRunner.Run.
type txHandle struct {
	s  *Store
	st *state
}

func (h txHandle) read(fn func(st *state) error) error { return fn(h.st) }

func (h txHandle) write(op string, fn func(st *state) error) error {
	if err := h.s.fails[op]; err != nil {
		return err
	}
	return fn(h.st)
}

// TxRunner ejecuta callbacks de forma atómica sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner para el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repositorios atados a una copia del estado; si fn falla no se publica nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h := txHandle{s: r.s, st: r.s.st.clone()}
	if err := fn(&ProductRepository{h: h}, &SaleRepository{h: h}, &StockHistoryRepository{h: h}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.st = h.st
	return nil
}
