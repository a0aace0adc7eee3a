package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/memory"
)

func newCategories(t *testing.T) *CategoryUseCase {
	t.Helper()
	store := memory.NewStore()
	return NewCategoryUseCase(store.Categories(), store)
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func mustCreate(t *testing.T, uc *CategoryUseCase, in dto.CreateCategoryRequest) *dto.CategoryResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	return out
}

func names(items []dto.CategoryResponse) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.Name)
	}
	return out
}

func TestCreate_RockYMetal(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()

	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	assert.True(t, rock.Enabled)
	assert.Empty(t, rock.ParentID)

	metal := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID)})
	assert.Equal(t, rock.ID, metal.ParentID)

	has, err := uc.HasChildren(ctx, rock.ID)
	require.NoError(t, err)
	assert.True(t, has)

	top, err := uc.ListTopLevel(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock"}, names(top.Items))

	err = uc.Delete(ctx, rock.ID)
	assert.ErrorIs(t, err, domain.ErrHasChildren)

	got, err := uc.GetByID(ctx, rock.ID)
	require.NoError(t, err, "la categoría sigue existiendo tras el fallo")
	assert.Equal(t, "Rock", got.Name)
}

func TestCreate_Errores(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})

	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Rock"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Jazz", ParentID: strPtr("no-existe")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := uc.ExistsByName(ctx, "Jazz")
	require.NoError(t, err)
	assert.False(t, ok, "un create fallido no deja rastro")

	ok, err = uc.ExistsByName(ctx, "rock")
	require.NoError(t, err)
	assert.False(t, ok, "el nombre distingue mayúsculas")
}

func TestCreate_ConcurrenteMismoNombre(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Rock"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrDuplicateName) {
				dups++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, dups)
}

func TestUpdate_SinPadreQuedaRaiz(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	metal := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID), Enabled: boolPtr(false)})

	out, err := uc.Update(ctx, metal.ID, dto.UpdateCategoryRequest{Name: "Metal"})
	require.NoError(t, err)
	assert.Empty(t, out.ParentID)
	assert.False(t, out.Enabled, "enabled omitido conserva el valor actual")

	has, err := uc.HasChildren(ctx, rock.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestUpdate_ImagenNoSeModifica(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	c := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock", Image: "rock.png"})
	assert.Equal(t, "rock.png", c.Image, "create sí guarda la imagen")

	_, err := uc.Update(ctx, c.ID, dto.UpdateCategoryRequest{Name: "Rock", Image: "nueva.png"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "rock.png", got.Image)
}

func TestUpdate_Errores(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Jazz"})

	_, err := uc.Update(ctx, rock.ID, dto.UpdateCategoryRequest{Name: "Jazz"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = uc.Update(ctx, rock.ID, dto.UpdateCategoryRequest{Name: "Rock"})
	assert.NoError(t, err, "conservar el propio nombre no es duplicado")

	_, err = uc.Update(ctx, rock.ID, dto.UpdateCategoryRequest{Name: "Rock", ParentID: strPtr(rock.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, rock.ID, dto.UpdateCategoryRequest{Name: "Rock", ParentID: strPtr("no-existe")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateCategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_RechazaCiclos(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	metal := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID)})
	thrash := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Thrash", ParentID: strPtr(metal.ID)})

	_, err := uc.Update(ctx, rock.ID, dto.UpdateCategoryRequest{Name: "Rock", ParentID: strPtr(thrash.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, rock.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ParentID, "el intento fallido no modifica la categoría")

	jazz := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Jazz"})
	moved, err := uc.Update(ctx, thrash.ID, dto.UpdateCategoryRequest{Name: "Thrash", ParentID: strPtr(jazz.ID)})
	require.NoError(t, err)
	assert.Equal(t, "Jazz", moved.ParentName)
}

func TestList_PaginaEnormeDevuelveVacio(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		mustCreate(t, uc, dto.CreateCategoryRequest{Name: fmt.Sprintf("Cat %d", i)})
	}

	for _, page := range []dto.PageRequest{
		{Page: math.MaxInt/100 + 1, Size: 100},
		{Page: math.MaxInt/50 + 1, Size: 50},
		{Page: math.MaxInt},
	} {
		out, err := uc.List(ctx, page)
		require.NoError(t, err)
		assert.Empty(t, out.Items, "page %d", page.Page)
		assert.Equal(t, 3, out.Page.TotalItems)
	}
}

func TestPageRequest_OffsetSatura(t *testing.T) {
	assert.Equal(t, 20, dto.PageRequest{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 0, dto.PageRequest{Page: -1, Size: 10}.Offset())
	assert.Equal(t, math.MaxInt, dto.PageRequest{Page: math.MaxInt/50 + 1, Size: 50}.Offset())
}

func TestDelete_NoEncontrada(t *testing.T) {
	uc := newCategories(t)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestList_PaginaYOrden(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	for i := 12; i >= 1; i-- {
		mustCreate(t, uc, dto.CreateCategoryRequest{Name: fmt.Sprintf("Cat %02d", i)})
	}

	first, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, first.Items, DefaultPageSize)
	assert.Equal(t, "Cat 01", first.Items[0].Name)
	assert.Equal(t, dto.PageResponse{Number: 0, Size: 10, TotalItems: 12, TotalPages: 2}, first.Page)

	second, err := uc.List(ctx, dto.PageRequest{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cat 11", "Cat 12"}, names(second.Items))

	desc, err := uc.List(ctx, dto.PageRequest{Size: 3, SortBy: "name", Direction: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cat 12", "Cat 11", "Cat 10"}, names(desc.Items))

	beyond, err := uc.List(ctx, dto.PageRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)

	_, err = uc.List(ctx, dto.PageRequest{SortBy: "password_hash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(ctx, dto.PageRequest{Direction: "UP"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchByName_SinDistinguirMayusculas(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Punk Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Jazz"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "100% Vinyl"})

	out, err := uc.SearchByName(ctx, "rOcK", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Punk Rock", "Rock"}, names(out.Items))

	out, err = uc.SearchByName(ctx, "%", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Vinyl"}, names(out.Items), "los comodines se buscan literalmente")
}

func TestVistasDelComprador(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID)})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Grunge", ParentID: strPtr(rock.ID), Enabled: boolPtr(false)})
	jazz := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Jazz", Enabled: boolPtr(false)})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Bebop", ParentID: strPtr(jazz.ID)})

	enabled, err := uc.ListEnabledForShopper(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bebop", "Metal", "Rock"}, names(enabled))

	tree, err := uc.ListEnabledWithChildren(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Rock"}, names(tree))
	assert.Equal(t, []string{"Metal"}, names(tree[0].Children), "solo hijos habilitados")

	paged, err := uc.ListEnabled(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, paged.Page.TotalItems)

	admin, err := uc.ListTopLevelWithChildren(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTopLevelSize, admin.Page.Size)
	require.Equal(t, []string{"Jazz", "Rock"}, names(admin.Items))
	assert.Equal(t, []string{"Grunge", "Metal"}, names(admin.Items[1].Children), "la vista de administración muestra todo")
}

func TestSubcategoriasYHijos(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID)})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Grunge", ParentID: strPtr(rock.ID)})

	subs, err := uc.ListSubcategories(ctx, rock.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grunge", "Metal"}, names(subs))
	assert.Equal(t, "Rock", subs[0].ParentName)

	_, err = uc.ListSubcategories(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	with, err := uc.GetByIDWithChildren(ctx, rock.ID)
	require.NoError(t, err)
	assert.Len(t, with.Children, 2)

	has, err := uc.HasChildren(ctx, "no-existe")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetByName(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})

	got, err := uc.GetByName(ctx, "Rock")
	require.NoError(t, err)
	assert.Equal(t, "Rock", got.Name)

	_, err = uc.GetByName(ctx, "Salsa")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetYExport(t *testing.T) {
	uc := newCategories(t)
	ctx := context.Background()
	rock := mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Rock"})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Metal", ParentID: strPtr(rock.ID)})
	mustCreate(t, uc, dto.CreateCategoryRequest{Name: "Blues"})

	all, err := uc.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Blues", "Metal", "Rock"}, names(all))
	for _, c := range all {
		assert.Empty(t, c.Children, "la exportación es plana")
	}

	out, err := uc.ResetToInitialState(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Deleted)

	all, err = uc.ExportAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
