package dto

import "math"

// PageRequest paginación para listados. Page empieza en 0.
type PageRequest struct {
	Page      int    `query:"page" validate:"min=0"`
	Size      int    `query:"size" validate:"min=0"` // se recorta a 100
	SortBy    string `query:"sort_by"`
	Direction string `query:"direction"` // ASC | DESC
}

// DefaultPage aplica valores por defecto si Page/Size/SortBy vienen vacíos.
func (p *PageRequest) DefaultPage(size int) {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = size
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if p.SortBy == "" {
		p.SortBy = "name"
	}
	if p.Direction == "" {
		p.Direction = "ASC"
	}
}

// Offset devuelve la posición de la primera fila de la página. Si Page*Size desborda
// devuelve math.MaxInt: la página existe pero queda vacía.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse calcula el total de páginas.
func NewPageResponse(req PageRequest, total int) PageResponse {
	pages := 0
	if req.Size > 0 {
		pages = (total + req.Size - 1) / req.Size
	}
	return PageResponse{Number: req.Page, Size: req.Size, TotalItems: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExistsResponse respuesta de los chequeos booleanos.
type ExistsResponse struct {
	Result bool `json:"result"`
}
