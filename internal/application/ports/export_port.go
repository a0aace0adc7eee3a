package ports

import (
	"context"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
)

// CategoryFileWriter convierte la exportación plana de categorías a un formato de archivo.
type CategoryFileWriter interface {
	Format() string      // csv, xml, pdf
	ContentType() string // MIME del archivo generado
	Write(ctx context.Context, categories []dto.CategoryResponse) ([]byte, error)
}
