package dungeons

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	resolver *Resolver
	handler  *Handler
}

// NewFeature creates the dungeons feature around an existing resolver.
func NewFeature(resolver *Resolver) *Feature {
	return &Feature{resolver: resolver, handler: NewHandler(resolver)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "dungeons"
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
