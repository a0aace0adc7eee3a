package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
)

const (
	rockID  = "0b7e3a53-6f3c-4b52-9f0e-3a1f2d9c8e01"
	metalID = "0b7e3a53-6f3c-4b52-9f0e-3a1f2d9c8e02"
)

var categoryColumns = []string{"id", "name", "image", "enabled", "parent_id", "parent_name", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*CategoryRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewCategoryRepository(mock), mock
}

func quoted(s string) string { return regexp.QuoteMeta(s) }

func TestCategoryRepo_ListConFiltrosOrdenYPagina(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	pattern := likePattern("50%")

	mock.ExpectQuery(quoted(`SELECT count(*) FROM category c WHERE c.parent_id IS NULL AND c.enabled AND c.name ILIKE $1 ESCAPE '\'`)).
		WithArgs(pattern).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(quoted(`ORDER BY c.created_at DESC, c.id ASC LIMIT $2 OFFSET $3`)).
		WithArgs(pattern, 5, 10).
		WillReturnRows(pgxmock.NewRows(categoryColumns).
			AddRow(rockID, "Rock 50%", "", true, "", "", now, now))

	list, total, err := repo.List(context.Background(), repository.CategoryQuery{
		OnlyRoots:    true,
		OnlyEnabled:  true,
		NameContains: "50%",
		SortBy:       repository.SortByCreatedAt,
		Desc:         true,
		Limit:        5,
		Offset:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, list, 1)
	assert.Equal(t, "Rock 50%", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_ListSinLimiteNiFiltros(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(quoted(`SELECT count(*) FROM category c`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(quoted(`LEFT JOIN category p ON p.id = c.parent_id ORDER BY c.name ASC, c.id ASC`) + `$`).
		WillReturnRows(pgxmock.NewRows(categoryColumns))

	list, total, err := repo.List(context.Background(), repository.CategoryQuery{SortBy: "desconocido"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_ListOffsetNegativoSeRecorta(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(quoted(`SELECT count(*) FROM category c`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(quoted(`LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(categoryColumns))

	_, _, err := repo.List(context.Background(), repository.CategoryQuery{SortBy: repository.SortByName, Limit: 10, Offset: -3})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_ListByParentsUnaConsulta(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(quoted(`WHERE c.parent_id = ANY($1::text[]::uuid[]) ORDER BY c.name ASC, c.id ASC`)).
		WithArgs([]string{rockID}).
		WillReturnRows(pgxmock.NewRows(categoryColumns).
			AddRow(metalID, "Metal", "", true, rockID, "Rock", now, now))

	children, err := repo.ListByParents(context.Background(), []string{rockID, "no-es-uuid"})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, rockID, children[0].ParentID)
	assert.Equal(t, "Rock", children[0].ParentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_IDsInvalidosNoConsultan(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	children, err := repo.ListByParents(ctx, []string{"x", ""})
	require.NoError(t, err)
	assert.Empty(t, children)

	c, err := repo.GetByID(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, c)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_GetByIDSinFilas(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(quoted(`WHERE c.id = $1`)).
		WithArgs(rockID).
		WillReturnError(pgx.ErrNoRows)

	c, err := repo.GetByID(context.Background(), rockID)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_DeleteConHijos(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(quoted(`DELETE FROM category WHERE id = $1`)).
		WithArgs(rockID).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Delete(context.Background(), rockID)
	assert.ErrorIs(t, err, domain.ErrHasChildren)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepo_DeleteAllCuentaFilas(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(quoted(`DELETE FROM category`)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
