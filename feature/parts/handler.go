package parts

import (
	"errors"
	"mime/multipart"
	"strconv"

	"parts-manager/core/logger"
	"parts-manager/feature/parts/importer"
	"parts-manager/feature/parts/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Form field names understood by HandleUpdatePart, besides the descriptive
// part columns.
const (
	formFieldImage      = "image"
	formFieldMachineIDs = "machine_ids"
	formFieldFile       = "file"
)

// updatableFields maps multipart form keys onto part columns. The business
// reference is deliberately absent: it is the import key and never editable.
var updatableFields = []string{
	"name", "category", "machine_model", "machine_variant", "product_type",
	"model", "tag", "unit", "location", "note", "machine_tag", "quantity",
}

// Handler handles HTTP requests for parts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the parts routes. The static paths must come
// before /:id so "import" and "by-machine" are not captured as ids.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/parts")
	group.Post("/import", h.HandleImport)
	group.Post("/import/preview", h.HandleImportPreview)
	group.Get("/", h.HandleListParts)
	group.Get("/by-machine", h.HandleListByMachine)
	group.Get("/:id", h.HandleGetPart)
	group.Put("/:id", h.HandleUpdatePart)
	group.Delete("/:id", h.HandleDeletePart)
}

// HandleImport imports a spreadsheet into the inventory.
// @Summary Import Parts
// @Description Reconcile an uploaded xlsx spreadsheet against the inventory.
// @Tags parts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Param mode query string false "Import mode: full (default) or quantity"
// @Param layout query string false "Sheet layout: native (default) or odoo"
// @Success 200 {object} importer.Result "Import Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} importer.Result "Aborted Import Report"
// @Router /parts/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	mode, err := importer.ParseMode(c.Query("mode"))
	if err != nil {
		return badRequest(c, err)
	}
	layout, err := importer.ParseLayout(c.Query("layout"))
	if err != nil {
		return badRequest(c, err)
	}

	src, err := openUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	defer src.Close()

	result, err := h.service.Import(c.Context(), src, layout, mode)
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		if result == nil {
			return badRequest(c, err)
		}
		// The file was fine; a database write aborted the run partway.
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}

	return c.JSON(result)
}

// HandleImportPreview reports what an import would do, without writing.
// @Summary Preview Import
// @Description Dry-run an xlsx spreadsheet against the inventory.
// @Tags parts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx workbook"
// @Param layout query string false "Sheet layout: native (default) or odoo"
// @Success 200 {object} importer.Preview "Preview Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /parts/import/preview [post]
func (h *Handler) HandleImportPreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	layout, err := importer.ParseLayout(c.Query("layout"))
	if err != nil {
		return badRequest(c, err)
	}

	src, err := openUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	defer src.Close()

	preview, err := h.service.PreviewImport(c.Context(), src, layout)
	if err != nil {
		l.Error("Import preview failed", zap.Error(err))
		return badRequest(c, err)
	}

	return c.JSON(preview)
}

// HandleListParts lists parts, filtered by search text and stock bucket.
// @Summary List Parts
// @Description List parts with optional search and stock filtering.
// @Tags parts
// @Produce json
// @Param search query string false "Match against name, reference, and tag"
// @Param stock query string false "Stock bucket: ok, low, or zero"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} store.Page "Parts Page"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /parts [get]
func (h *Handler) HandleListParts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stock := c.Query("stock")
	if !store.ValidStock(stock) {
		return badRequest(c, errors.New("unknown stock filter "+strconv.Quote(stock)))
	}

	f := store.Filter{
		Search: c.Query("search"),
		Stock:  stock,
		Page:   c.QueryInt("page"),
		Limit:  c.QueryInt("limit"),
	}

	page, err := h.service.List(c.Context(), f)
	if err != nil {
		l.Error("Part listing failed", zap.Error(err))
		return internalError(c, err)
	}
	return c.JSON(page)
}

// HandleListByMachine lists the parts fitting one exact machine.
// @Summary List Parts By Machine
// @Description List parts matching an exact category, machine model, and variant.
// @Tags parts
// @Produce json
// @Param category query string true "Part category"
// @Param machine_model query string true "Machine model"
// @Param machine_variant query string true "Machine variant"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} store.Page "Parts Page"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /parts/by-machine [get]
func (h *Handler) HandleListByMachine(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	f := store.Filter{
		Category:       c.Query("category"),
		MachineModel:   c.Query("machine_model"),
		MachineVariant: c.Query("machine_variant"),
		Page:           c.QueryInt("page"),
		Limit:          c.QueryInt("limit"),
	}
	if f.Category == "" || f.MachineModel == "" || f.MachineVariant == "" {
		return badRequest(c, errors.New("category, machine_model and machine_variant are required"))
	}

	page, err := h.service.ListByMachine(c.Context(), f)
	if err != nil {
		l.Error("Part listing by machine failed", zap.Error(err))
		return internalError(c, err)
	}
	return c.JSON(page)
}

// HandleGetPart returns one part with its machine compatibility.
// @Summary Get Part
// @Description Get a single part with the ids of its compatible machines.
// @Tags parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} PartDetail "Part Detail"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /parts/{id} [get]
func (h *Handler) HandleGetPart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	detail, err := h.service.Get(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		l.Error("Part lookup failed", zap.Uint("part_id", id), zap.Error(err))
		return internalError(c, err)
	}
	return c.JSON(detail)
}

// HandleUpdatePart applies a partial update from a multipart form. Known
// form fields become column updates, an "image" file replaces the stored
// photo, and the presence of "machine_ids" replaces the compatibility set.
// @Summary Update Part
// @Description Partially update a part; optionally replace its image and machine compatibility.
// @Tags parts
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Part ID"
// @Success 200 {object} PartDetail "Updated Part"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /parts/{id} [put]
func (h *Handler) HandleUpdatePart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, errors.New("expected a multipart form"))
	}

	params := UpdateParams{Fields: map[string]any{}}
	for _, field := range updatableFields {
		values, ok := form.Value[field]
		if !ok || len(values) == 0 {
			continue
		}
		if field == "quantity" {
			qty, err := strconv.Atoi(values[0])
			if err != nil || qty < 0 {
				return badRequest(c, errors.New("quantity must be a non-negative integer"))
			}
			params.Fields[field] = qty
			continue
		}
		params.Fields[field] = values[0]
	}

	if ids, ok := form.Value[formFieldMachineIDs]; ok {
		params.ReplaceMachines = true
		params.MachineIDs, err = parseMachineIDs(ids)
		if err != nil {
			return badRequest(c, err)
		}
	}

	if files := form.File[formFieldImage]; len(files) > 0 {
		file := files[0]
		src, err := file.Open()
		if err != nil {
			return badRequest(c, err)
		}
		defer src.Close()
		params.Image = &ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
			Reader:      src,
		}
	}

	detail, err := h.service.Update(c.Context(), id, params)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		l.Error("Part update failed", zap.Uint("part_id", id), zap.Error(err))
		return internalError(c, err)
	}
	return c.JSON(detail)
}

// HandleDeletePart removes a part.
// @Summary Delete Part
// @Description Delete a part together with its compatibility pairs and image.
// @Tags parts
// @Produce json
// @Param id path int true "Part ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /parts/{id} [delete]
func (h *Handler) HandleDeletePart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := parseID(c)
	if err != nil {
		return badRequest(c, err)
	}

	err = h.service.Delete(c.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		l.Error("Part deletion failed", zap.Uint("part_id", id), zap.Error(err))
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func openUpload(c *fiber.Ctx) (multipart.File, error) {
	file, err := c.FormFile(formFieldFile)
	if err != nil {
		return nil, errors.New("missing file upload")
	}
	return file.Open()
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid part id")
	}
	return uint(id), nil
}

func parseMachineIDs(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if v == "" {
			// An empty machine_ids field clears the compatibility set.
			continue
		}
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, errors.New("machine_ids must be integers")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "part not found"})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
