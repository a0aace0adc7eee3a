package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/pkg/password"
)

func TestHash_NoGuardaTextoPlano(t *testing.T) {
	h, err := password.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, "password1", h)
	assert.True(t, password.Matches(h, "password1"))
	assert.False(t, password.Matches(h, "password2"))
}

func TestHash_ConSalDistinta(t *testing.T) {
	h1, err := password.Hash("password1")
	require.NoError(t, err)
	h2, err := password.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "dos hashes del mismo password deben diferir por la sal")
}

func TestHash_DemasiadoLargo(t *testing.T) {
	_, err := password.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, password.ErrTooLong)
}

func TestMatches_HashInvalido(t *testing.T) {
	assert.False(t, password.Matches("no-es-bcrypt", "password1"))
}
