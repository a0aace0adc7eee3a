package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bluevelvet-api/internal/domain"
)

func TestConstraintCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isUniqueViolation(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(nil))
}

func TestTranslateWriteError(t *testing.T) {
	assert.ErrorIs(t, translateWriteError(&pgconn.PgError{Code: "23505"}, "insert"), domain.ErrDuplicateName)
	assert.ErrorIs(t, translateWriteError(&pgconn.PgError{Code: "23503"}, "insert"), domain.ErrNotFound)

	other := errors.New("conexión cerrada")
	err := translateWriteError(other, "update category")
	assert.ErrorIs(t, err, other)
	assert.Contains(t, err.Error(), "update category")
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%rock%", likePattern("rock"))
	assert.Equal(t, `%100\% \_vinyl\\%`, likePattern(`100% _vinyl\`))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("7f1c2a38-5b8e-4f5e-9d0c-3b2f1a6e9c11"))
	assert.False(t, validID("42"))
	assert.False(t, validID(""))
}
