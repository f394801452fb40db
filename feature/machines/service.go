package machines

import (
	"context"

	"parts-manager/feature/parts/models"
	"parts-manager/feature/parts/store"

	"go.uber.org/zap"
)

// Service handles machine reference-data operations.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates a new machines service.
func NewService(s store.Store, logger *zap.Logger) *Service {
	return &Service{store: s, logger: logger}
}

// List returns all machines ordered by model and variant.
func (s *Service) List(ctx context.Context) ([]models.Machine, error) {
	return s.store.ListMachines(ctx)
}
