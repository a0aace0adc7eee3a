package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const (
	categorySelect = `
		SELECT c.id::text, c.name, COALESCE(c.image, ''), c.enabled,
		       COALESCE(c.parent_id::text, ''), COALESCE(p.name, ''), c.created_at, c.updated_at
		FROM category c
		LEFT JOIN category p ON p.id = c.parent_id`
)

// Columnas permitidas en ORDER BY (nunca se interpola texto del request).
var categorySortColumns = map[string]string{
	repository.SortByName:      "c.name",
	repository.SortByID:        "c.id",
	repository.SortByEnabled:   "c.enabled",
	repository.SortByCreatedAt: "c.created_at",
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO category (id, name, image, enabled, parent_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, '')::uuid, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Image, c.Enabled, c.ParentID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert category")
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.scanOne(ctx, categorySelect+` WHERE c.id = $1`, id)
}

// GetByIDForUpdate obtiene la categoría y bloquea su fila (SELECT ... FOR UPDATE OF c).
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.scanOne(ctx, categorySelect+` WHERE c.id = $1 FOR UPDATE OF c`, id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.scanOne(ctx, categorySelect+` WHERE c.name = $1`, name)
}

// ExistsByID informa si existe la categoría.
func (r *CategoryRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM category WHERE id = $1)`, id)
}

// ExistsByName informa si el nombre exacto ya está en uso (distingue mayúsculas).
func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM category WHERE name = $1)`, name)
}

// ExistsByParentID informa si alguna categoría tiene a parentID como padre.
func (r *CategoryRepo) ExistsByParentID(ctx context.Context, parentID string) (bool, error) {
	if !validID(parentID) {
		return false, nil
	}
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM category WHERE parent_id = $1)`, parentID)
}

// Update actualiza nombre, estado y padre. La imagen no se toca.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE category SET name = $2, enabled = $3, parent_id = NULLIF($4, '')::uuid, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Enabled, c.ParentID, c.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "update category")
	}
	return nil
}

// Delete elimina una categoría por ID. La FK convierte un hijo concurrente en ErrHasChildren.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasChildren
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// DeleteAll elimina todas las categorías en una sola sentencia (la FK se valida al final).
func (r *CategoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM category`)
	if err != nil {
		return 0, fmt.Errorf("delete all categories: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List filtra, ordena y pagina. Devuelve también el total sin paginar.
func (r *CategoryRepo) List(ctx context.Context, q repository.CategoryQuery) ([]*entity.Category, int, error) {
	var (
		where []string
		args  []any
	)
	if q.OnlyRoots {
		where = append(where, "c.parent_id IS NULL")
	}
	if q.OnlyEnabled {
		where = append(where, "c.enabled")
	}
	if q.NameContains != "" {
		args = append(args, likePattern(q.NameContains))
		where = append(where, fmt.Sprintf(`c.name ILIKE $%d ESCAPE '\'`, len(args)))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM category c`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	col, ok := categorySortColumns[q.SortBy]
	if !ok {
		col = "c.name"
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	query := categorySelect + whereSQL + fmt.Sprintf(" ORDER BY %s %s, c.id ASC", col, dir)
	if q.Limit > 0 {
		args = append(args, q.Limit, max(q.Offset, 0))
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	list, err := r.scanMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByParent devuelve los hijos directos de parentID ordenados por nombre.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	if !validID(parentID) {
		return []*entity.Category{}, nil
	}
	return r.scanMany(ctx, categorySelect+` WHERE c.parent_id = $1 ORDER BY c.name ASC, c.id ASC`, parentID)
}

// ListByParents devuelve los hijos directos de todos los padres dados en una sola consulta.
func (r *CategoryRepo) ListByParents(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	ids := make([]string, 0, len(parentIDs))
	for _, id := range parentIDs {
		if validID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []*entity.Category{}, nil
	}
	return r.scanMany(ctx,
		categorySelect+` WHERE c.parent_id = ANY($1::text[]::uuid[]) ORDER BY c.name ASC, c.id ASC`, ids)
}

func (r *CategoryRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Image, &c.Enabled, &c.ParentID, &c.ParentName, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) scanMany(ctx context.Context, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.Enabled, &c.ParentID, &c.ParentName, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists category: %w", err)
	}
	return ok, nil
}

// translateWriteError traduce violaciones de constraint a errores de dominio:
// nombre único -> ErrDuplicateName, padre inexistente -> ErrNotFound.
func translateWriteError(err error, op string) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateName
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
