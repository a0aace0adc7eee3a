// Package export convierte la exportación plana de categorías a archivos descargables.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
)

var (
	_ ports.CategoryFileWriter = JSONWriter{}
	_ ports.CategoryFileWriter = CSVWriter{}
	_ ports.CategoryFileWriter = XMLWriter{}
)

// Columnas comunes a CSV y XML.
var columns = []string{"id", "name", "image", "enabled", "parent_id", "parent_name", "created_at", "updated_at"}

func values(c dto.CategoryResponse) []string {
	return []string{
		c.ID,
		c.Name,
		c.Image,
		strconv.FormatBool(c.Enabled),
		c.ParentID,
		c.ParentName,
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// JSONWriter exporta el arreglo de categorías tal como lo devuelve la API.
type JSONWriter struct{}

func (JSONWriter) Format() string      { return "json" }
func (JSONWriter) ContentType() string { return "application/json" }

func (JSONWriter) Write(_ context.Context, categories []dto.CategoryResponse) ([]byte, error) {
	if categories == nil {
		categories = []dto.CategoryResponse{}
	}
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return data, nil
}

// Writers devuelve todos los formatos de archivo plano (el PDF vive en su propio paquete).
func Writers() []ports.CategoryFileWriter {
	return []ports.CategoryFileWriter{JSONWriter{}, CSVWriter{}, XMLWriter{}}
}
