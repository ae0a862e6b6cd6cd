// Package loader provides the feature loading system for the control API.
//
// Each feature (keys, dungeons, monitor) implements the Feature interface and
// registers its routes when loaded.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry:
//   - Register() adds a feature
//   - LoadAll() loads every enabled feature in registration order
package loader
