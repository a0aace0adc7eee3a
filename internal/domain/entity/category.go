package entity

import "time"

// Category representa una categoría de productos. La jerarquía se guarda solo como
// parent_id; los hijos se obtienen consultando por parent_id, nunca por enlaces en memoria.
type Category struct {
	ID         string
	Name       string // único en todo el catálogo (no por padre)
	Image      string // referencia opaca (ruta o URL), vacío si no tiene
	Enabled    bool   // visible para el comprador
	ParentID   string // vacío si es raíz
	ParentName string // solo lectura, resuelto por join
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRoot informa si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
