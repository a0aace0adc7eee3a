package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/internal/application/auth"
	"github.com/jhoicas/bluevelvet-api/internal/application/usecase"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/export"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/memory"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bluevelvet-api/internal/interfaces/http"
)

// newTestServer arma la API completa sobre el almacén en memoria, con registro de admins habilitado.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	return newTestServerWith(t, auth.AuthOptions{AllowAdminSignup: true})
}

func newTestServerWith(t *testing.T, opts auth.AuthOptions) *fiber.App {
	t.Helper()
	store := memory.NewStore()

	categoryUC := usecase.NewCategoryUseCase(store.Categories(), store)
	exportUC := usecase.NewCategoryExportUseCase(categoryUC, append(export.Writers(), pdf.NewCategoryReport())...)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:   auth.NewAuthUseCase(store.Users(), store, opts),
		Users:    usecase.NewUserUseCase(store.Users()),
		Category: categoryUC,
		Export:   exportUC,
		JWT: apphttp.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		},
	})
	return app
}

// call lanza una petición con cuerpo JSON opcional y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}
