package parts

import (
	"context"
	"fmt"
	"io"

	"parts-manager/core/storage"
	"parts-manager/feature/parts/importer"
	"parts-manager/feature/parts/models"
	"parts-manager/feature/parts/store"

	"go.uber.org/zap"
)

// Default page sizes. Filtered listings page smaller because they back the
// search UI; the by-machine view loads a whole machine's parts list.
const (
	defaultListLimit      = 24
	defaultByMachineLimit = 50
)

// Service handles spare-part operations.
type Service struct {
	store  store.Store
	images *storage.Images
	engine *importer.Engine
	logger *zap.Logger
}

// NewService creates a new parts service.
func NewService(s store.Store, images *storage.Images, engine *importer.Engine, logger *zap.Logger) *Service {
	return &Service{
		store:  s,
		images: images,
		engine: engine,
		logger: logger,
	}
}

// Import reconciles an uploaded spreadsheet against the inventory.
func (s *Service) Import(ctx context.Context, src io.Reader, layout importer.Layout, mode importer.Mode) (*importer.Result, error) {
	return s.engine.Import(ctx, src, layout, mode)
}

// PreviewImport reports what an import would do without writing anything.
func (s *Service) PreviewImport(ctx context.Context, src io.Reader, layout importer.Layout) (*importer.Preview, error) {
	return s.engine.Preview(ctx, src, layout)
}

// List returns one page of parts matching the filter.
func (s *Service) List(ctx context.Context, f store.Filter) (*store.Page, error) {
	if f.Limit < 1 {
		f.Limit = defaultListLimit
	}
	return s.store.ListPaged(ctx, f)
}

// ListByMachine returns parts matching the exact machine triple.
func (s *Service) ListByMachine(ctx context.Context, f store.Filter) (*store.Page, error) {
	if f.Limit < 1 {
		f.Limit = defaultByMachineLimit
	}
	return s.store.ListPaged(ctx, f)
}

// PartDetail is a part plus the ids of the machines it fits.
type PartDetail struct {
	models.Part
	MachineIDs []uint `json:"machine_ids"`
}

// Get returns one part with its machine compatibility.
func (s *Service) Get(ctx context.Context, id uint) (*PartDetail, error) {
	part, machineIDs, err := s.store.GetWithMachines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PartDetail{Part: *part, MachineIDs: machineIDs}, nil
}

// ImageUpload is a replacement image for a part.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UpdateParams is a partial part update. Only non-nil pieces are applied:
// Fields may be empty, Image replaces the stored photo, and MachineIDs
// replaces the compatibility set when ReplaceMachines is set.
type UpdateParams struct {
	Fields          map[string]any
	Image           *ImageUpload
	MachineIDs      []uint
	ReplaceMachines bool
}

// Update applies a partial update and returns the updated detail.
func (s *Service) Update(ctx context.Context, id uint, params UpdateParams) (*PartDetail, error) {
	part, _, err := s.store.GetWithMachines(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := params.Fields
	if fields == nil {
		fields = map[string]any{}
	}

	if params.Image != nil {
		url, err := s.images.Upload(ctx, part.BusinessRef, params.Image.Filename,
			params.Image.Reader, params.Image.Size, params.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store image for part %d: %w", id, err)
		}
		if part.ImageURL != "" {
			if err := s.images.Remove(ctx, part.ImageURL); err != nil {
				s.logger.Warn("Failed to remove replaced part image",
					zap.Uint("part_id", id), zap.Error(err))
			}
		}
		fields["image_url"] = url
	}

	if len(fields) > 0 {
		if err := s.store.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	if params.ReplaceMachines {
		if err := s.store.ReplaceCompatibility(ctx, id, params.MachineIDs); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a part, its compatibility pairs, and its stored image.
func (s *Service) Delete(ctx context.Context, id uint) error {
	part, _, err := s.store.GetWithMachines(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	if part.ImageURL != "" {
		if err := s.images.Remove(ctx, part.ImageURL); err != nil {
			s.logger.Warn("Failed to remove image of deleted part",
				zap.Uint("part_id", id), zap.Error(err))
		}
	}
	return nil
}
