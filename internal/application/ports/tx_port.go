package ports

import (
	"context"

	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Categories repository.CategoryRepository
	Users      repository.UserRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Cada operación que lee y luego escribe corre en una sola llamada a Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
