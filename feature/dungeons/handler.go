package dungeons

import (
	"sort"
	"time"

	"keys-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Entry is one dungeon in an HTTP listing.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Listing is the response of GET /dungeons.
type Listing struct {
	Source      string    `json:"source"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Dungeons    []Entry   `json:"dungeons"`
}

// Handler handles HTTP requests for dungeon names.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a new HTTP handler.
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// RegisterRoutes registers the dungeon routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dungeons")
	group.Get("/", h.HandleList)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleList returns the current id to name table.
// @Summary List Dungeons
// @Description Returns the dungeon names currently used for location_name, sorted by id.
// @Tags dungeons
// @Produce json
// @Success 200 {object} Listing
// @Router /dungeons [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.listing())
}

// HandleRefresh fetches the dungeon list again.
// @Summary Refresh Dungeons
// @Description Downloads the dungeon list. On failure the built-in names are used and the error is reported.
// @Tags dungeons
// @Produce json
// @Success 200 {object} Listing
// @Failure 502 {object} map[string]interface{} "Fetch failed, fallback in use"
// @Router /dungeons/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.resolver.logger, c)

	if err := h.resolver.Refresh(c.Context()); err != nil {
		l.Warn("Dungeon refresh failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   err.Error(),
			"listing": h.listing(),
		})
	}
	return c.JSON(h.listing())
}

func (h *Handler) listing() Listing {
	return Listing{
		Source:      h.resolver.Source(),
		RefreshedAt: h.resolver.RefreshedAt(),
		Dungeons:    Entries(h.resolver.Snapshot()),
	}
}

// Entries flattens names into a list sorted by id.
func Entries(names map[int]string) []Entry {
	out := make([]Entry, 0, len(names))
	for id, name := range names {
		out = append(out, Entry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
