package parts

import (
	"parts-manager/core/storage"
	"parts-manager/feature/parts/importer"
	"parts-manager/feature/parts/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Parts feature.
func NewFeature(db *gorm.DB, images *storage.Images, importCfg importer.Config, logger *zap.Logger) *Feature {
	s := store.New(db)
	engine := importer.NewEngine(s, importCfg, logger)
	svc := NewService(s, images, engine, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "parts"
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
