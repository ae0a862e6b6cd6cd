package monitor

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"keys-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StartRequest is the body of POST /monitor/start.
type StartRequest struct {
	FilePath string `json:"file_path"`
}

// Handler handles HTTP requests controlling the monitor.
type Handler struct {
	monitor *Monitor
	logs    *logger.Buffer
}

// NewHandler creates a new HTTP handler. logs may be nil.
func NewHandler(monitor *Monitor, logs *logger.Buffer) *Handler {
	return &Handler{monitor: monitor, logs: logs}
}

// RegisterRoutes registers the monitor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/monitor")
	group.Get("/status", h.HandleStatus)
	group.Post("/start", h.HandleStart)
	group.Post("/stop", h.HandleStop)
	group.Get("/logs", h.HandleLogs)
	group.Get("/logs/stream", h.HandleLogStream)
}

// HandleStatus returns the monitor status.
// @Summary Monitor Status
// @Description Whether the addon file is being watched, and the outcome of the last pass.
// @Tags monitor
// @Produce json
// @Success 200 {object} Status
// @Router /monitor/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.monitor.Status())
}

// HandleStart starts monitoring.
// @Summary Start Monitoring
// @Description Starts watching the given addon file, or the saved one when the body names none. One pass runs before the response.
// @Tags monitor
// @Accept json
// @Produce json
// @Param request body StartRequest false "Addon file"
// @Success 200 {object} Status
// @Failure 400 {object} map[string]string "No file selected or file not found"
// @Failure 409 {object} map[string]string "Already running"
// @Router /monitor/start [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	l := logger.WithRayID(h.monitor.logger, c)

	var req StartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if req.FilePath == "" {
		req.FilePath = h.monitor.SavedPath()
	}

	if err := h.monitor.Start(c.Context(), req.FilePath); err != nil {
		l.Warn("Monitor start rejected", zap.Error(err))
		switch {
		case errors.Is(err, ErrAlreadyRunning):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return c.JSON(h.monitor.Status())
}

// HandleStop stops monitoring.
// @Summary Stop Monitoring
// @Description Stops the watcher after its current pass.
// @Tags monitor
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /monitor/stop [post]
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	stopped := h.monitor.Stop()
	return c.JSON(fiber.Map{"stopped": stopped, "status": h.monitor.Status()})
}

// HandleLogs returns recent log entries, newest first.
// @Summary Recent Logs
// @Description Returns up to limit recent log entries, newest first.
// @Tags monitor
// @Produce json
// @Param limit query int false "Maximum entries (default 100)"
// @Success 200 {array} logger.Entry
// @Router /monitor/logs [get]
func (h *Handler) HandleLogs(c *fiber.Ctx) error {
	if h.logs == nil {
		return c.JSON([]logger.Entry{})
	}
	return c.JSON(h.logs.Recent(c.QueryInt("limit", 100)))
}

// HandleLogStream follows the log as server-sent events.
// @Summary Follow Logs
// @Description Streams new log entries as server-sent events until the client disconnects.
// @Tags monitor
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /monitor/logs/stream [get]
func (h *Handler) HandleLogStream(c *fiber.Ctx) error {
	if h.logs == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	entries, cancel := h.logs.Subscribe(64)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		heartbeat := time.NewTicker(15 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case e, ok := <-entries:
				if !ok {
					return
				}
				data, err := json.Marshal(e)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// A failed flush means the client went away.
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}
