package migration

import (
	"errors"

	"sheet-sync/core/logger"
	"sheet-sync/feature/sheet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for migration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the migration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	sync := app.Group("/sync")
	sync.Post("/run", h.HandleRunPass)
	sync.Get("/report", h.HandleGetReport)
	app.Post("/sheet/edit", h.HandleEdit)
}

// HandleRunPass runs a full reconciliation pass.
// @Summary Run Reconciliation Pass
// @Description Traverse every non-empty sheet row and reconcile it against the remote platform.
// @Tags sync
// @Accept json
// @Produce json
// @Success 200 {object} PassReport "Pass Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/run [post]
func (h *Handler) HandleRunPass(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunPass(c.Context())
	if err != nil {
		l.Error("Reconciliation pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleGetReport returns the report of the most recent pass.
// @Summary Get Last Pass Report
// @Description Get the change report of the most recent reconciliation pass.
// @Tags sync
// @Produce json
// @Success 200 {object} PassReport "Pass Report"
// @Failure 404 {object} map[string]string "No pass has run yet"
// @Router /sync/report [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	report := h.service.LastReport()
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no reconciliation pass has run yet",
		})
	}
	return c.JSON(report)
}

// EditRequest is one cell edit event. Prior is the cell's old value; it
// may be absent when the caller cannot supply it.
type EditRequest struct {
	Row   int     `json:"row"`
	Field string  `json:"field"`
	Prior *string `json:"prior"`
	Value string  `json:"value"`
}

// HandleEdit applies a single cell edit, propagating linked-column
// changes to every row in the same bucket.
// @Summary Apply Cell Edit
// @Description Apply one cell edit and propagate it across linked rows.
// @Tags sheet
// @Accept json
// @Produce json
// @Param request body EditRequest true "Edit event"
// @Success 200 {object} map[string]string "OK"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Read-only field"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sheet/edit [post]
func (h *Handler) HandleEdit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req EditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Row < 2 || req.Field == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "row must be 2 or greater and field must be set",
		})
	}

	err := h.service.ApplyEdit(c.Context(), req.Row, req.Field, req.Prior, req.Value)
	var roErr *sheet.ReadOnlyError
	if errors.As(err, &roErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": roErr.Error(),
		})
	}
	if err != nil {
		l.Error("Edit failed", zap.Error(err), zap.Int("row", req.Row), zap.String("field", req.Field))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
