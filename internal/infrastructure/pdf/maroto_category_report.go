// Package pdf genera el reporte imprimible del catálogo de categorías.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Blue Velvet + título   │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Categoría padre | Estado | Creada            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total / habilitadas / raíz                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
)

var _ ports.CategoryFileWriter = (*CategoryReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 40, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 228, Blue: 245}
)

// CategoryReport implementa ports.CategoryFileWriter para el formato "pdf" usando Maroto v2.
type CategoryReport struct {
	now func() time.Time
}

// NewCategoryReport construye el generador.
func NewCategoryReport() *CategoryReport { return &CategoryReport{now: time.Now} }

func (g *CategoryReport) Format() string      { return "pdf" }
func (g *CategoryReport) ContentType() string { return "application/pdf" }

// Write genera el PDF y devuelve sus bytes.
func (g *CategoryReport) Write(_ context.Context, categories []dto.CategoryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Catálogo de categorías", true).
		WithAuthor("Blue Velvet", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(categories)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(categories))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(at time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("BLUE VELVET MUSIC STORE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Catálogo de categorías", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 4, align.Left),
		h("Categoría padre", 4, align.Left),
		h("Estado", 2, align.Center),
		h("Creada", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

// tableRows: una fila por categoría, en el orden recibido.
func tableRows(categories []dto.CategoryResponse) []core.Row {
	result := make([]core.Row, 0, len(categories))
	for _, c := range categories {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(c.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(c.ParentName, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(status(c.Enabled), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(c.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func summaryRow(categories []dto.CategoryResponse) core.Row {
	var enabled, roots int
	for _, c := range categories {
		if c.Enabled {
			enabled++
		}
		if c.ParentID == "" {
			roots++
		}
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total: %d   |   Habilitadas: %d   |   Raíz: %d", len(categories), enabled, roots), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func status(enabled bool) string {
	if enabled {
		return "Habilitada"
	}
	return "Deshabilitada"
}
