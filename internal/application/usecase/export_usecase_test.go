package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/domain"
)

// stubWriter registra lo que recibe y devuelve bytes fijos.
type stubWriter struct {
	format string
	got    []dto.CategoryResponse
	err    error
}

func (w *stubWriter) Format() string      { return w.format }
func (w *stubWriter) ContentType() string { return "text/x-" + w.format }
func (w *stubWriter) Write(_ context.Context, categories []dto.CategoryResponse) ([]byte, error) {
	w.got = categories
	return []byte(w.format), w.err
}

func TestExport_EligeWriterYNombraArchivo(t *testing.T) {
	categories := newCategories(t)
	mustCreate(t, categories, dto.CreateCategoryRequest{Name: "Rock"})

	csv := &stubWriter{format: "csv"}
	uc := NewCategoryExportUseCase(categories, csv, &stubWriter{format: "xml"})
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC) }

	file, err := uc.Export(context.Background(), " CSV ")
	require.NoError(t, err)
	assert.Equal(t, "categories_20240501_130405.csv", file.Filename)
	assert.Equal(t, "text/x-csv", file.ContentType)
	assert.Equal(t, []byte("csv"), file.Data)
	require.Len(t, csv.got, 1)
	assert.Equal(t, "Rock", csv.got[0].Name)
	assert.Equal(t, "csv", file.Format, "formato normalizado")
}

func TestExport_FormatoDesconocido(t *testing.T) {
	uc := NewCategoryExportUseCase(newCategories(t), &stubWriter{format: "csv"})
	_, err := uc.Export(context.Background(), "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_ErrorDelWriter(t *testing.T) {
	boom := errors.New("disco lleno")
	uc := NewCategoryExportUseCase(newCategories(t), &stubWriter{format: "csv", err: boom})
	_, err := uc.Export(context.Background(), "csv")
	assert.ErrorIs(t, err, boom)
}
