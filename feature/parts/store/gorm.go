package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parts-manager/feature/parts/models"

	"gorm.io/gorm"
)

// maxPageLimit caps the page size of listings. Oversized limits are clamped
// rather than rejected so older clients keep working.
const maxPageLimit = 200

// Gorm is the MySQL-backed Store implementation.
type Gorm struct {
	db *gorm.DB
}

// New creates a Store on top of the given database handle. The handle must
// have error translation enabled (see core/database.Connect) so duplicate-key
// violations can be mapped to ErrConflict.
func New(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// GetByRef returns the part with the given business reference.
func (s *Gorm) GetByRef(ctx context.Context, ref string) (*models.Part, error) {
	var part models.Part
	err := s.db.WithContext(ctx).Where("business_ref = ?", ref).First(&part).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query part %q: %w", ref, err)
	}
	return &part, nil
}

// Insert creates a new part row. The unique index on business_ref is the
// authoritative guard: a duplicate reference surfaces as ErrConflict even if
// the caller looked the reference up a moment earlier.
func (s *Gorm) Insert(ctx context.Context, part *models.Part) error {
	err := s.db.WithContext(ctx).Create(part).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert part %q: %w", part.BusinessRef, err)
	}
	return nil
}

// UpdateFields applies a partial update. GORM refreshes updated_at on the
// way through.
//
// MySQL reports zero affected rows both for an unknown id and for an update
// that changes no values (a re-imported row with identical data), so a zero
// result is disambiguated with a lookup rather than trusted as not-found.
func (s *Gorm) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&models.Part{ID: id}).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update part %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.Part{}).Where("id = ?", id).Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to look up part %d: %w", id, err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteByID removes the part and cascades its compatibility pairs in the
// same transaction, so no orphaned join rows remain.
func (s *Gorm) DeleteByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", id).Delete(&models.PartMachine{}).Error; err != nil {
			return fmt.Errorf("failed to delete compatibility of part %d: %w", id, err)
		}

		res := tx.Delete(&models.Part{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete part %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GetWithMachines returns the part plus the ids of its compatible machines.
func (s *Gorm) GetWithMachines(ctx context.Context, id uint) (*models.Part, []uint, error) {
	var part models.Part
	err := s.db.WithContext(ctx).First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query part %d: %w", id, err)
	}

	machineIDs := []uint{}
	err = s.db.WithContext(ctx).
		Model(&models.PartMachine{}).
		Where("part_id = ?", id).
		Order("machine_id").
		Pluck("machine_id", &machineIDs).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query compatibility of part %d: %w", id, err)
	}

	return &part, machineIDs, nil
}

// ListPaged returns one page of parts matching the filter. Total counts the
// filtered rows, not the table size.
func (s *Gorm) ListPaged(ctx context.Context, f Filter) (*Page, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	q := s.db.WithContext(ctx).Model(&models.Part{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(business_ref) LIKE ? OR LOWER(tag) LIKE ?", like, like, like)
	}

	switch f.Stock {
	case StockOK:
		q = q.Where("quantity >= ?", 5)
	case StockLow:
		q = q.Where("quantity BETWEEN ? AND ?", 1, 4)
	case StockZero:
		q = q.Where("quantity = ?", 0)
	}

	if f.Category != "" && f.MachineModel != "" && f.MachineVariant != "" {
		q = q.Where("category = ? AND machine_model = ? AND machine_variant = ?",
			f.Category, f.MachineModel, f.MachineVariant)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count parts: %w", err)
	}

	rows := []models.Part{}
	err := q.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}

	return &Page{Rows: rows, Total: total, Page: page, Limit: limit}, nil
}

// ReplaceCompatibility replaces the part's compatibility set in one
// transaction: either the whole new set is visible or the old one still is.
func (s *Gorm) ReplaceCompatibility(ctx context.Context, partID uint, machineIDs []uint) error {
	// Collapse duplicate ids; the pair table has a composite primary key.
	seen := make(map[uint]struct{}, len(machineIDs))
	pairs := make([]models.PartMachine, 0, len(machineIDs))
	for _, id := range machineIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		pairs = append(pairs, models.PartMachine{PartID: partID, MachineID: id})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", partID).Delete(&models.PartMachine{}).Error; err != nil {
			return fmt.Errorf("failed to clear compatibility of part %d: %w", partID, err)
		}
		if len(pairs) == 0 {
			return nil
		}
		if err := tx.Create(&pairs).Error; err != nil {
			return fmt.Errorf("failed to write compatibility of part %d: %w", partID, err)
		}
		return nil
	})
}

// ListMachines returns all machines ordered by model and variant.
func (s *Gorm) ListMachines(ctx context.Context) ([]models.Machine, error) {
	machines := []models.Machine{}
	err := s.db.WithContext(ctx).Order("model, variant").Find(&machines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}
