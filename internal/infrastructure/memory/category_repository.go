package memory

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	s    *Store
	inTx bool
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.categories[category.ID]; ok {
		return domain.ErrDuplicateName
	}
	if r.nameTaken(category.Name, "") {
		return domain.ErrDuplicateName
	}
	if category.ParentID != "" {
		if _, ok := r.s.categories[category.ParentID]; !ok {
			return domain.ErrNotFound
		}
	}
	r.s.categories[category.ID] = stored(category)
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.s.rlock(r.inTx)()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return r.view(c), nil
}

// GetByIDForUpdate igual que GetByID; el bloqueo lo da Run.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	defer r.s.rlock(r.inTx)()
	for _, c := range r.s.categories {
		if c.Name == name {
			return r.view(c), nil
		}
	}
	return nil, nil
}

// ExistsByID informa si existe la categoría.
func (r *CategoryRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	defer r.s.rlock(r.inTx)()
	_, ok := r.s.categories[id]
	return ok, nil
}

// ExistsByName informa si el nombre exacto ya está en uso.
func (r *CategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	defer r.s.rlock(r.inTx)()
	return r.nameTaken(name, ""), nil
}

// ExistsByParentID informa si alguna categoría tiene a parentID como padre.
func (r *CategoryRepo) ExistsByParentID(_ context.Context, parentID string) (bool, error) {
	defer r.s.rlock(r.inTx)()
	for _, c := range r.s.categories {
		if c.ParentID == parentID {
			return true, nil
		}
	}
	return false, nil
}

// Update actualiza nombre, estado y padre. La imagen no se modifica.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	defer r.s.lock(r.inTx)()
	current, ok := r.s.categories[category.ID]
	if !ok {
		return nil
	}
	if r.nameTaken(category.Name, category.ID) {
		return domain.ErrDuplicateName
	}
	if category.ParentID != "" {
		if _, ok := r.s.categories[category.ParentID]; !ok {
			return domain.ErrNotFound
		}
	}
	next := *current
	next.Name = category.Name
	next.Enabled = category.Enabled
	next.ParentID = category.ParentID
	next.UpdatedAt = category.UpdatedAt
	r.s.categories[category.ID] = &next
	return nil
}

// Delete elimina una categoría. ErrHasChildren si otra la referencia como padre.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock(r.inTx)()
	for _, c := range r.s.categories {
		if c.ParentID == id {
			return domain.ErrHasChildren
		}
	}
	delete(r.s.categories, id)
	return nil
}

// DeleteAll elimina todas las categorías.
func (r *CategoryRepo) DeleteAll(_ context.Context) (int64, error) {
	defer r.s.lock(r.inTx)()
	n := int64(len(r.s.categories))
	r.s.categories = make(map[string]*entity.Category)
	return n, nil
}

// List filtra, ordena y pagina.
func (r *CategoryRepo) List(_ context.Context, q repository.CategoryQuery) ([]*entity.Category, int, error) {
	defer r.s.rlock(r.inTx)()
	var needle string
	if q.NameContains != "" {
		needle = cases.Fold().String(q.NameContains)
	}
	var matched []*entity.Category
	for _, c := range r.s.categories {
		if q.OnlyRoots && !c.IsRoot() {
			continue
		}
		if q.OnlyEnabled && !c.Enabled {
			continue
		}
		if needle != "" && !strings.Contains(cases.Fold().String(c.Name), needle) {
			continue
		}
		matched = append(matched, c)
	}
	sortCategories(matched, q.SortBy, q.Desc)

	total := len(matched)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 && q.Limit < total-start {
		end = start + q.Limit
	}
	out := make([]*entity.Category, 0, end-start)
	for _, c := range matched[start:end] {
		out = append(out, r.view(c))
	}
	return out, total, nil
}

// ListByParent devuelve los hijos directos ordenados por nombre.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID string) ([]*entity.Category, error) {
	return r.ListByParents(ctx, []string{parentID})
}

// ListByParents devuelve los hijos directos de los padres dados ordenados por nombre.
func (r *CategoryRepo) ListByParents(_ context.Context, parentIDs []string) ([]*entity.Category, error) {
	defer r.s.rlock(r.inTx)()
	want := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		want[id] = struct{}{}
	}
	var children []*entity.Category
	for _, c := range r.s.categories {
		if _, ok := want[c.ParentID]; ok && c.ParentID != "" {
			children = append(children, c)
		}
	}
	sortCategories(children, repository.SortByName, false)
	out := make([]*entity.Category, 0, len(children))
	for _, c := range children {
		out = append(out, r.view(c))
	}
	return out, nil
}

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	for _, c := range r.s.categories {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

// view copia la categoría y resuelve ParentName como lo haría el join.
func (r *CategoryRepo) view(c *entity.Category) *entity.Category {
	out := *c
	if p, ok := r.s.categories[c.ParentID]; ok {
		out.ParentName = p.Name
	}
	return &out
}

func stored(c *entity.Category) *entity.Category {
	out := *c
	out.ParentName = ""
	return &out
}

func sortCategories(list []*entity.Category, field string, desc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		var cmp int
		switch field {
		case repository.SortByID:
			cmp = strings.Compare(a.ID, b.ID)
		case repository.SortByEnabled:
			cmp = compareBool(a.Enabled, b.Enabled)
		case repository.SortByCreatedAt:
			cmp = a.CreatedAt.Compare(b.CreatedAt)
		default:
			cmp = strings.Compare(a.Name, b.Name)
		}
		if cmp == 0 {
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
