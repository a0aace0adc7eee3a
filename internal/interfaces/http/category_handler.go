package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/usecase"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/metrics"
)

// CategoryHandler maneja las peticiones HTTP del catálogo de categorías.
type CategoryHandler struct {
	uc     *usecase.CategoryUseCase
	export *usecase.CategoryExportUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, export *usecase.CategoryExportUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc, export: export}
}

// List godoc
// @Summary      Listar categorías
// @Description  Paginado; por defecto 10 por página ordenadas por nombre ascendente.
// @Tags         categories
// @Produce      json
// @Param        page       query  int     false  "Página (desde 0)"  default(0)
// @Param        size       query  int     false  "Tamaño de página"  default(10)
// @Param        sort_by    query  string  false  "name | id | enabled | created_at"  default(name)
// @Param        direction  query  string  false  "ASC | DESC"  default(ASC)
// @Success      200  {object}  dto.CategoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sorted godoc
// @Summary      Listar categorías ordenadas
// @Tags         categories
// @Produce      json
// @Param        sort_by    query  string  false  "name | id | enabled | created_at"  default(name)
// @Param        direction  query  string  false  "ASC | DESC"  default(ASC)
// @Param        page       query  int     false  "Página (desde 0)"
// @Param        size       query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.CategoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories/sorted [get]
func (h *CategoryHandler) Sorted(c *fiber.Ctx) error {
	return h.List(c)
}

// TopLevel godoc
// @Summary      Listar categorías raíz
// @Tags         categories
// @Produce      json
// @Param        page  query  int  false  "Página (desde 0)"
// @Param        size  query  int  false  "Tamaño de página"  default(5)
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories/top-level [get]
func (h *CategoryHandler) TopLevel(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTopLevel(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Hierarchy godoc
// @Summary      Categorías raíz con sus subcategorías
// @Tags         categories
// @Produce      json
// @Param        page  query  int  false  "Página (desde 0)"
// @Param        size  query  int  false  "Tamaño de página"  default(5)
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories/hierarchy [get]
func (h *CategoryHandler) Hierarchy(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListTopLevelWithChildren(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar categorías por nombre
// @Description  Subcadena sin distinguir mayúsculas.
// @Tags         categories
// @Produce      json
// @Param        name  query  string  true   "Texto a buscar"
// @Param        page  query  int     false  "Página (desde 0)"
// @Param        size  query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories/search [get]
func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SearchByName(c.UserContext(), c.Query("name"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Enabled godoc
// @Summary      Listar categorías habilitadas
// @Tags         categories
// @Produce      json
// @Param        page  query  int  false  "Página (desde 0)"
// @Param        size  query  int  false  "Tamaño de página"
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories/enabled [get]
func (h *CategoryHandler) Enabled(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListEnabled(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Public godoc
// @Summary      Categorías visibles para el comprador
// @Tags         shopper
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/public [get]
func (h *CategoryHandler) Public(c *fiber.Ctx) error {
	out, err := h.uc.ListEnabledForShopper(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PublicHierarchy godoc
// @Summary      Jerarquía visible para el comprador
// @Description  Raíces habilitadas con sus subcategorías habilitadas.
// @Tags         shopper
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories/public/hierarchy [get]
func (h *CategoryHandler) PublicHierarchy(c *fiber.Ctx) error {
	out, err := h.uc.ListEnabledWithChildren(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar categorías a archivo
// @Tags         categories
// @Produce      json
// @Produce      text/csv
// @Produce      application/xml
// @Produce      application/pdf
// @Param        format  query  string  false  "json | csv | xml | pdf"  default(json)
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories/export [get]
func (h *CategoryHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), c.Query("format", "json"))
	if err != nil {
		return writeError(c, err)
	}
	metrics.CategoryExportsTotal.WithLabelValues(file.Format).Inc()
	c.Attachment(file.Filename)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// Exists godoc
// @Summary      ¿Existe una categoría con ese nombre?
// @Tags         categories
// @Produce      json
// @Param        name  query  string  true  "Nombre exacto"
// @Success      200  {object}  dto.ExistsResponse
// @Router       /api/categories/exists [get]
func (h *CategoryHandler) Exists(c *fiber.Ctx) error {
	ok, err := h.uc.ExistsByName(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ExistsResponse{Result: ok})
}

// ByName godoc
// @Summary      Obtener categoría por nombre exacto
// @Tags         categories
// @Produce      json
// @Param        name  query  string  true  "Nombre exacto"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/by-name [get]
func (h *CategoryHandler) ByName(c *fiber.Ctx) error {
	out, err := h.uc.GetByName(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WithChildren godoc
// @Summary      Obtener categoría con sus subcategorías
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/with-children [get]
func (h *CategoryHandler) WithChildren(c *fiber.Ctx) error {
	out, err := h.uc.GetByIDWithChildren(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subcategories godoc
// @Summary      Listar subcategorías directas
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría padre"
// @Success      200  {array}   dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/subcategories [get]
func (h *CategoryHandler) Subcategories(c *fiber.Ctx) error {
	out, err := h.uc.ListSubcategories(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HasChildren godoc
// @Summary      ¿Tiene subcategorías?
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.ExistsResponse
// @Router       /api/categories/{id}/has-children [get]
func (h *CategoryHandler) HasChildren(c *fiber.Ctx) error {
	ok, err := h.uc.HasChildren(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ExistsResponse{Result: ok})
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	metrics.CategoryMutationsTotal.WithLabelValues("create", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}
	c.Location("/api/categories/" + out.ID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Sin parent_id la categoría pasa a ser raíz. La imagen no se modifica.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	metrics.CategoryMutationsTotal.WithLabelValues("update", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.UserContext(), c.Params("id"))
	metrics.CategoryMutationsTotal.WithLabelValues("delete", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reset godoc
// @Summary      Reiniciar catálogo
// @Description  Elimina todas las categorías.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResetResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/categories/reset [post]
func (h *CategoryHandler) Reset(c *fiber.Ctx) error {
	out, err := h.uc.ResetToInitialState(c.UserContext())
	metrics.CategoryMutationsTotal.WithLabelValues("reset", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
