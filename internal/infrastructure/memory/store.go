// Package memory implementa los repositorios en memoria (DB_DRIVER=memory).
// Sirve para desarrollo local sin PostgreSQL y para los tests de casos de uso y handlers.
// Replica las restricciones del esquema: nombre y email únicos, parent_id existente,
// y no borrar una categoría con hijos.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store datos en memoria protegidos por un RWMutex. Una transacción toma el lock de
// escritura durante todo el callback, así que las transacciones se serializan.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	users      map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		users:      make(map[string]*entity.User),
	}
}

// Categories devuelve el repositorio de categorías fuera de transacción.
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{s: s}
}

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

// Run ejecuta fn con repos atados a la "transacción". Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	catSnap := make(map[string]*entity.Category, len(s.categories))
	for k, v := range s.categories {
		catSnap[k] = v
	}
	userSnap := make(map[string]*entity.User, len(s.users))
	for k, v := range s.users {
		userSnap[k] = v
	}

	err := fn(ports.Repos{
		Categories: &CategoryRepo{s: s, inTx: true},
		Users:      &UserRepo{s: s, inTx: true},
	})
	if err != nil {
		s.categories = catSnap
		s.users = userSnap
		return err
	}
	return nil
}

// rlock/runlock no toman el lock si el repo ya corre dentro de Run.
func (s *Store) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
