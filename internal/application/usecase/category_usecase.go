package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
)

// Tamaños de página por defecto.
const (
	DefaultPageSize     = 10
	DefaultTopLevelSize = 5
)

// CategoryUseCase reglas de negocio del catálogo de categorías: CRUD, jerarquía de un nivel,
// búsqueda, orden y vistas para el comprador.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   ports.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx ports.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// ── Consultas ────────────────────────────────────────────────────────────────

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// GetByIDWithChildren obtiene una categoría con sus hijos directos (un nivel).
func (uc *CategoryUseCase) GetByIDWithChildren(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	children, err := uc.repo.ListByParent(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	out.Children = toCategoryResponses(children)
	return &out, nil
}

// GetByName obtiene una categoría por nombre exacto.
func (uc *CategoryUseCase) GetByName(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: categoría con nombre %q", domain.ErrNotFound, name)
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// List lista todas las categorías con el orden pedido (por defecto nombre ascendente).
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage(DefaultPageSize)
	q, err := pageQuery(page)
	if err != nil {
		return nil, err
	}
	return uc.listPage(ctx, q, page, false)
}

// ListTopLevel lista las categorías raíz.
func (uc *CategoryUseCase) ListTopLevel(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage(DefaultTopLevelSize)
	q, err := pageQuery(page)
	if err != nil {
		return nil, err
	}
	q.OnlyRoots = true
	return uc.listPage(ctx, q, page, false)
}

// ListTopLevelWithChildren lista las categorías raíz, cada una con sus hijos directos.
func (uc *CategoryUseCase) ListTopLevelWithChildren(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage(DefaultTopLevelSize)
	q, err := pageQuery(page)
	if err != nil {
		return nil, err
	}
	q.OnlyRoots = true
	return uc.listPage(ctx, q, page, true)
}

// ListSubcategories devuelve los hijos directos de parentID. ErrNotFound si el padre no existe.
func (uc *CategoryUseCase) ListSubcategories(ctx context.Context, parentID string) ([]dto.CategoryResponse, error) {
	exists, err := uc.repo.ExistsByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		log.Warn().Str("parent_id", parentID).Msg("categoría padre no encontrada")
		return nil, fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, parentID)
	}
	children, err := uc.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(children), nil
}

// SearchByName busca por subcadena del nombre sin distinguir mayúsculas.
func (uc *CategoryUseCase) SearchByName(ctx context.Context, name string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage(DefaultPageSize)
	q, err := pageQuery(page)
	if err != nil {
		return nil, err
	}
	q.NameContains = name
	return uc.listPage(ctx, q, page, false)
}

// ListEnabled lista las categorías habilitadas, paginado.
func (uc *CategoryUseCase) ListEnabled(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage(DefaultPageSize)
	q, err := pageQuery(page)
	if err != nil {
		return nil, err
	}
	q.OnlyEnabled = true
	return uc.listPage(ctx, q, page, false)
}

// ListEnabledForShopper lista completa de categorías habilitadas ordenadas por nombre.
func (uc *CategoryUseCase) ListEnabledForShopper(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, _, err := uc.repo.List(ctx, repository.CategoryQuery{OnlyEnabled: true, SortBy: repository.SortByName})
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// ListEnabledWithChildren raíces habilitadas con sus hijos directos habilitados (vista del comprador).
func (uc *CategoryUseCase) ListEnabledWithChildren(ctx context.Context) ([]dto.CategoryResponse, error) {
	roots, _, err := uc.repo.List(ctx, repository.CategoryQuery{
		OnlyRoots:   true,
		OnlyEnabled: true,
		SortBy:      repository.SortByName,
	})
	if err != nil {
		return nil, err
	}
	return uc.withChildren(ctx, roots, true)
}

// ExportAll devuelve todas las categorías, planas y ordenadas por nombre, para exportar a archivo.
func (uc *CategoryUseCase) ExportAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, _, err := uc.repo.List(ctx, repository.CategoryQuery{SortBy: repository.SortByName})
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// ExistsByName informa si ya existe una categoría con ese nombre exacto.
func (uc *CategoryUseCase) ExistsByName(ctx context.Context, name string) (bool, error) {
	return uc.repo.ExistsByName(ctx, name)
}

// HasChildren informa si alguna categoría tiene a id como padre.
func (uc *CategoryUseCase) HasChildren(ctx context.Context, id string) (bool, error) {
	return uc.repo.ExistsByParentID(ctx, id)
}

// ── Mutaciones ───────────────────────────────────────────────────────────────

// Create crea una categoría. Enabled es true si se omite.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	log.Debug().Str("name", name).Msg("creando categoría")

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Image:     strings.TrimSpace(in.Image),
		Enabled:   enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		exists, err := repos.Categories.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			log.Warn().Str("name", name).Msg("nombre de categoría duplicado")
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
		}
		if parentID := optional(in.ParentID); parentID != "" {
			parent, err := repos.Categories.GetByIDForUpdate(ctx, parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, parentID)
			}
			category.ParentID = parent.ID
			category.ParentName = parent.Name
		}
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", category.ID).Str("name", category.Name).Msg("categoría creada")
	out := toCategoryResponse(category)
	return &out, nil
}

// Update edita nombre, estado y padre. Sin ParentID la categoría pasa a ser raíz.
// La imagen del request se ignora: la edición de imágenes no está soportada.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	parentID := optional(in.ParentID)
	if parentID == id {
		return nil, fmt.Errorf("%w: una categoría no puede ser su propio padre", domain.ErrInvalidInput)
	}
	log.Debug().Str("id", id).Msg("actualizando categoría")

	var category *entity.Category
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		var err error
		category, err = repos.Categories.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
		}
		if category.Name != name {
			exists, err := repos.Categories.ExistsByName(ctx, name)
			if err != nil {
				return err
			}
			if exists {
				log.Warn().Str("name", name).Msg("nombre de categoría duplicado")
				return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
			}
		}

		category.Name = name
		if in.Enabled != nil {
			category.Enabled = *in.Enabled
		}
		category.ParentID = ""
		category.ParentName = ""
		if parentID != "" {
			parent, err := repos.Categories.GetByIDForUpdate(ctx, parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: categoría padre %s", domain.ErrNotFound, parentID)
			}
			if err := checkNotAncestor(ctx, repos.Categories, id, parent); err != nil {
				return err
			}
			category.ParentID = parent.ID
			category.ParentName = parent.Name
		}
		category.UpdatedAt = time.Now().UTC()
		return repos.Categories.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", category.ID).Msg("categoría actualizada")
	out := toCategoryResponse(category)
	return &out, nil
}

// checkNotAncestor sube desde parent hasta la raíz; si encuentra id el cambio formaría un ciclo.
func checkNotAncestor(ctx context.Context, repo repository.CategoryRepository, id string, parent *entity.Category) error {
	seen := map[string]bool{parent.ID: true}
	for next := parent.ParentID; next != ""; {
		if next == id {
			return fmt.Errorf("%w: la categoría %s no puede colgar de su descendiente %s", domain.ErrInvalidInput, id, parent.ID)
		}
		if seen[next] {
			return nil
		}
		seen[next] = true
		ancestor, err := repo.GetByID(ctx, next)
		if err != nil {
			return err
		}
		if ancestor == nil {
			return nil
		}
		next = ancestor.ParentID
	}
	return nil
}

// Delete elimina una categoría sin hijos. ErrHasChildren si alguna la tiene como padre.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	log.Debug().Str("id", id).Msg("eliminando categoría")
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		category, err := repos.Categories.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
		}
		hasChildren, err := repos.Categories.ExistsByParentID(ctx, id)
		if err != nil {
			return err
		}
		if hasChildren {
			log.Warn().Str("id", id).Msg("no se puede eliminar: tiene subcategorías")
			return fmt.Errorf("%w: elimine o mueva las subcategorías primero", domain.ErrHasChildren)
		}
		return repos.Categories.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info().Str("id", id).Msg("categoría eliminada")
	return nil
}

// ResetToInitialState borra todas las categorías. Utilidad administrativa y de pruebas.
func (uc *CategoryUseCase) ResetToInitialState(ctx context.Context) (*dto.ResetResponse, error) {
	var deleted int64
	err := uc.tx.Run(ctx, func(repos ports.Repos) error {
		var err error
		deleted, err = repos.Categories.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Warn().Int64("deleted", deleted).Msg("categorías reiniciadas")
	return &dto.ResetResponse{Deleted: deleted}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (uc *CategoryUseCase) mustGet(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		log.Debug().Str("id", id).Msg("categoría no encontrada")
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, id)
	}
	return c, nil
}

func (uc *CategoryUseCase) listPage(ctx context.Context, q repository.CategoryQuery, page dto.PageRequest, children bool) (*dto.CategoryListResponse, error) {
	list, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	items := toCategoryResponses(list)
	if children {
		if items, err = uc.withChildren(ctx, list, false); err != nil {
			return nil, err
		}
	}
	return &dto.CategoryListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// withChildren adjunta a cada padre sus hijos directos con una sola consulta.
func (uc *CategoryUseCase) withChildren(ctx context.Context, parents []*entity.Category, onlyEnabled bool) ([]dto.CategoryResponse, error) {
	items := make([]dto.CategoryResponse, 0, len(parents))
	if len(parents) == 0 {
		return items, nil
	}
	ids := make([]string, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
	}
	children, err := uc.repo.ListByParents(ctx, ids)
	if err != nil {
		return nil, err
	}
	byParent := make(map[string][]*entity.Category, len(parents))
	for _, c := range children {
		if onlyEnabled && !c.Enabled {
			continue
		}
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	for _, p := range parents {
		out := toCategoryResponse(p)
		out.Children = toCategoryResponses(byParent[p.ID])
		items = append(items, out)
	}
	return items, nil
}

var sortFields = map[string]string{
	"name":       repository.SortByName,
	"id":         repository.SortByID,
	"enabled":    repository.SortByEnabled,
	"created_at": repository.SortByCreatedAt,
	"createdAt":  repository.SortByCreatedAt,
}

// pageQuery traduce la página del request a una consulta validando campo y dirección de orden.
func pageQuery(page dto.PageRequest) (repository.CategoryQuery, error) {
	field, ok := sortFields[page.SortBy]
	if !ok {
		return repository.CategoryQuery{}, fmt.Errorf("%w: no se puede ordenar por %q", domain.ErrInvalidInput, page.SortBy)
	}
	var desc bool
	switch strings.ToUpper(page.Direction) {
	case "ASC":
	case "DESC":
		desc = true
	default:
		return repository.CategoryQuery{}, fmt.Errorf("%w: dirección %q (ASC | DESC)", domain.ErrInvalidInput, page.Direction)
	}
	return repository.CategoryQuery{
		SortBy: field,
		Desc:   desc,
		Limit:  page.Size,
		Offset: page.Offset(),
	}, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		Image:      c.Image,
		Enabled:    c.Enabled,
		ParentID:   c.ParentID,
		ParentName: c.ParentName,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return items
}
