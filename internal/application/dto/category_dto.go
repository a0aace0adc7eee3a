package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Image    string  `json:"image" validate:"omitempty,max=500"`
	Enabled  *bool   `json:"enabled"`   // true si se omite
	ParentID *string `json:"parent_id"` // raíz si se omite
}

// UpdateCategoryRequest entrada para editar una categoría.
// ParentID ausente convierte la categoría en raíz. Image se acepta pero no se persiste.
type UpdateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Image    string  `json:"image" validate:"omitempty,max=500"`
	Enabled  *bool   `json:"enabled"` // se conserva el valor actual si se omite
	ParentID *string `json:"parent_id"`
}

// CategoryResponse proyección de una categoría. Children solo aparece si tiene hijos.
type CategoryResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Image      string             `json:"image,omitempty"`
	Enabled    bool               `json:"enabled"`
	ParentID   string             `json:"parent_id,omitempty"`
	ParentName string             `json:"parent_name,omitempty"`
	Children   []CategoryResponse `json:"children,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ResetResponse resultado del borrado masivo.
type ResetResponse struct {
	Deleted int64 `json:"deleted"`
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Format      string // normalizado: json, csv, xml, pdf
	Filename    string
	ContentType string
	Data        []byte
}
