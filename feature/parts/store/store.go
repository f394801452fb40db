package store

import (
	"context"
	"errors"

	"parts-manager/feature/parts/models"
)

var (
	// ErrNotFound is returned when no part matches the given id or reference.
	ErrNotFound = errors.New("part not found")
	// ErrConflict is returned by Insert when the business reference already
	// exists. The unique index raises it, so it also catches writers racing
	// between a lookup and the insert.
	ErrConflict = errors.New("business reference already exists")
)

// Stock bucket values accepted by Filter.Stock.
const (
	StockAny  = ""
	StockOK   = "ok"   // quantity >= 5
	StockLow  = "low"  // 1 <= quantity <= 4
	StockZero = "zero" // quantity == 0
)

// ValidStock reports whether s is a recognized stock bucket.
func ValidStock(s string) bool {
	switch s {
	case StockAny, StockOK, StockLow, StockZero:
		return true
	default:
		return false
	}
}

// Filter narrows and pages a part listing. Search and Stock combine with AND;
// the machine triple (Category, MachineModel, MachineVariant) is a separate
// exact-match mode used by ListPaged when all three are set.
type Filter struct {
	// Search matches name, business reference, and tag, case-insensitively.
	Search string
	// Stock selects a stock bucket (see Stock* constants).
	Stock string
	// Exact-match triple.
	Category       string
	MachineModel   string
	MachineVariant string
	// Page is 1-based; values < 1 fall back to 1.
	Page int
	// Limit is the page size; values < 1 fall back to the caller's default,
	// values above the cap are clamped.
	Limit int
}

// Page is one page of a filtered listing. Total counts the rows matching the
// filter, not the table size.
type Page struct {
	Rows  []models.Part `json:"rows"`
	Total int64         `json:"total_matching"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// Store is the inventory persistence gateway.
type Store interface {
	// GetByRef returns the part with the given business reference, or
	// ErrNotFound.
	GetByRef(ctx context.Context, ref string) (*models.Part, error)
	// Insert creates a new part. Returns ErrConflict if the business
	// reference is already taken.
	Insert(ctx context.Context, part *models.Part) error
	// UpdateFields applies only the given column→value pairs to the part;
	// unspecified columns are untouched. Returns ErrNotFound for unknown ids.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	// DeleteByID removes a part and its compatibility pairs.
	DeleteByID(ctx context.Context, id uint) error
	// GetWithMachines returns a part together with its compatible machine ids.
	GetWithMachines(ctx context.Context, id uint) (*models.Part, []uint, error)
	// ListPaged returns one page of parts matching the filter plus the total
	// match count.
	ListPaged(ctx context.Context, f Filter) (*Page, error)
	// ReplaceCompatibility atomically replaces the set of machines the part
	// is compatible with. An empty set clears it.
	ReplaceCompatibility(ctx context.Context, partID uint, machineIDs []uint) error
	// ListMachines returns all machines ordered by model and variant.
	ListMachines(ctx context.Context) ([]models.Machine, error)
}
