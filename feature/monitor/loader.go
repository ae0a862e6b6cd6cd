package monitor

import (
	"keys-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	monitor *Monitor
	handler *Handler
}

// NewFeature creates the monitor feature around an existing monitor.
func NewFeature(monitor *Monitor, logs *logger.Buffer) *Feature {
	return &Feature{monitor: monitor, handler: NewHandler(monitor, logs)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "monitor"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
