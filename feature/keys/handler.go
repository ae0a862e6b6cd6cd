package keys

import (
	"errors"

	"keys-monitor/core/logger"
	"keys-monitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the key sheet.
type Handler struct {
	service     *Service
	defaultPath func() string
}

// NewHandler creates a new HTTP handler. defaultPath supplies the addon file
// when a sync request names none; it may be nil.
func NewHandler(service *Service, defaultPath func() string) *Handler {
	// Force import for Swagger
	var _ = reconcile.Row{}
	return &Handler{service: service, defaultPath: defaultPath}
}

// RegisterRoutes registers the keys routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/keys")
	group.Get("/", h.HandleList)
	group.Post("/sync", h.HandleSync)
}

// HandleList returns the rows of the shared sheet.
// @Summary List Sheet Rows
// @Description Returns every row currently held by the shared key sheet, in sheet order.
// @Tags keys
// @Produce json
// @Success 200 {array} reconcile.Row
// @Failure 502 {object} map[string]string "Sheet unavailable"
// @Router /keys [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	rows, err := h.service.Rows(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load sheet", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleSync runs one sync pass.
// @Summary Sync Addon File
// @Description Parses the addon file, merges it into the shared sheet and writes the result back.
// @Tags keys
// @Produce json
// @Param file_path query string false "Addon file, defaults to the saved one"
// @Param dry_run query boolean false "Merge without writing"
// @Success 200 {object} SyncResult
// @Failure 400 {object} map[string]string "No file"
// @Failure 502 {object} map[string]string "Sheet unavailable"
// @Router /keys/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	path := c.Query("file_path")
	if path == "" && h.defaultPath != nil {
		path = h.defaultPath()
	}

	result, err := h.service.Sync(c.Context(), path, SyncOptions{DryRun: c.QueryBool("dry_run")})
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Sync request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}
