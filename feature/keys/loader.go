package keys

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the keys feature around an existing service.
func NewFeature(service *Service, defaultPath func() string) *Feature {
	return &Feature{service: service, handler: NewHandler(service, defaultPath)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "keys"
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

// Service returns the sync service.
func (f *Feature) Service() *Service {
	return f.service
}
