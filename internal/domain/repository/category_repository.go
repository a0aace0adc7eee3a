package repository

import (
	"context"

	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
)

// Campos por los que se permite ordenar listados de categorías.
const (
	SortByName      = "name"
	SortByID        = "id"
	SortByEnabled   = "enabled"
	SortByCreatedAt = "created_at"
)

// CategoryQuery filtros, orden y paginación para listar categorías.
// Limit <= 0 significa sin límite (listas completas para el comprador o exportación).
type CategoryQuery struct {
	OnlyRoots    bool
	OnlyEnabled  bool
	NameContains string // subcadena, sin distinguir mayúsculas
	SortBy       string
	Desc         bool
	Limit        int
	Offset       int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByParentID(ctx context.Context, parentID string) (bool, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// List devuelve la página pedida y el total de filas que cumplen el filtro.
	List(ctx context.Context, q CategoryQuery) ([]*entity.Category, int, error)
	ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error)
	// ListByParents devuelve los hijos directos de todos los padres dados, ordenados por nombre.
	ListByParents(ctx context.Context, parentIDs []string) ([]*entity.Category, error)
}
