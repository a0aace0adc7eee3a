package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
	"github.com/jhoicas/bluevelvet-api/internal/domain"
)

// CategoryExportUseCase convierte la exportación de categorías a archivo (csv, xml, pdf).
// La conversión la hacen los writers de infraestructura; aquí solo se elige y se nombra el archivo.
type CategoryExportUseCase struct {
	categories *CategoryUseCase
	writers    map[string]ports.CategoryFileWriter
	now        func() time.Time
}

// NewCategoryExportUseCase construye el caso de uso con los formatos disponibles.
func NewCategoryExportUseCase(categories *CategoryUseCase, writers ...ports.CategoryFileWriter) *CategoryExportUseCase {
	m := make(map[string]ports.CategoryFileWriter, len(writers))
	for _, w := range writers {
		m[w.Format()] = w
	}
	return &CategoryExportUseCase{categories: categories, writers: m, now: time.Now}
}

// Export genera el archivo en el formato pedido.
func (uc *CategoryExportUseCase) Export(ctx context.Context, format string) (*dto.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	w, ok := uc.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación %q no soportado", domain.ErrInvalidInput, format)
	}
	categories, err := uc.categories.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	data, err := w.Write(ctx, categories)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	log.Info().Str("format", format).Int("categories", len(categories)).Msg("categorías exportadas")
	return &dto.ExportFile{
		Format:      format,
		Filename:    fmt.Sprintf("categories_%s.%s", uc.now().UTC().Format("20060102_150405"), format),
		ContentType: w.ContentType(),
		Data:        data,
	}, nil
}
