package migration

import (
	"sheet-sync/core/kvcache"
	"sheet-sync/feature/migration/platform"
	"sheet-sync/feature/sheet"
	"sheet-sync/feature/sheet/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new migration feature.
func NewFeature(st store.Store, cache kvcache.Cache, client platform.Client,
	sheetCfg *sheet.Config, platCfg *platform.Config, logger *zap.Logger) *Feature {
	svc := NewService(st, cache, client, sheetCfg, platCfg, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "migration"
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

// Service exposes the feature's service for CLI entry points.
func (f *Feature) Service() *Service {
	return f.service
}
