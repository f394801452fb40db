package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"parts-manager/core/logger"
	"parts-manager/feature/parts/models"
	"parts-manager/feature/parts/store"

	"go.uber.org/zap"
)

// Mode selects which fields an import is allowed to touch.
type Mode string

const (
	// ModeFull overwrites every field present in the file.
	ModeFull Mode = "full"
	// ModeQuantity only updates stock counts; descriptive fields of
	// existing parts are left alone.
	ModeQuantity Mode = "quantity"
)

// ParseMode validates a mode name. An empty name defaults to full.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeFull, nil
	case ModeFull, ModeQuantity:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// Config tunes the import engine.
type Config struct {
	// StrictQuantity rejects rows with absent or non-numeric quantity
	// cells instead of coercing them to 0.
	StrictQuantity bool `mapstructure:"strict_quantity" default:"false"`
	// ContinueOnStoreError keeps processing the remaining rows after a
	// database write fails, recording the failed row instead of aborting.
	ContinueOnStoreError bool `mapstructure:"continue_on_store_error" default:"false"`
}

// Result is the report of one import run. OK reports whether the whole
// batch was processed; it stays false when a store failure aborts the run.
type Result struct {
	OK         bool          `json:"ok"`
	Inserted   int           `json:"inserted"`
	Updated    int           `json:"updated"`
	Errors     []RowError    `json:"errors"`
	NewRecords []models.Part `json:"new_records"`
}

// QuantityChange is one pending update in a preview.
type QuantityChange struct {
	BusinessRef      string `json:"business_ref"`
	CurrentQuantity  int    `json:"current_quantity"`
	ProposedQuantity int    `json:"proposed_quantity"`
}

// Preview is the report of a dry run: what an import would do, without
// writing anything. ToInsert carries the drafts that would become new parts.
type Preview struct {
	OK       bool             `json:"ok"`
	ToInsert []models.Part    `json:"to_insert"`
	ToUpdate []QuantityChange `json:"to_update"`
	Errors   []RowError       `json:"errors"`
}

// Engine reconciles spreadsheet imports against the parts store.
type Engine struct {
	store store.Store
	cfg   Config
	log   *zap.Logger
}

// NewEngine creates an import engine.
func NewEngine(s store.Store, cfg Config, log *zap.Logger) *Engine {
	return &Engine{store: s, cfg: cfg, log: log}
}

// Import parses the workbook and reconciles each valid row against the
// store: unknown references are inserted, known ones updated according to
// the mode. Rows rejected by validation never reach the store.
//
// A nil Result means the file itself was unusable. A non-nil Result
// alongside an error means the run was aborted partway by a store failure;
// the result covers the rows processed before the abort.
func (e *Engine) Import(ctx context.Context, src io.Reader, layout Layout, mode Mode) (*Result, error) {
	rows, err := ParseSheet(src)
	if err != nil {
		return nil, err
	}

	records, rowErrors := ValidateRows(rows, layout, Policy{StrictQuantity: e.cfg.StrictQuantity})
	result := &Result{Errors: rowErrors, NewRecords: []models.Part{}}
	log := logger.WithImport(e.log, string(layout), string(mode))

	for _, rec := range records {
		inserted, err := e.apply(ctx, rec, mode, result)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rec.Row, Reason: ReasonStoreError})
			log.Error("Import row failed",
				zap.String("business_ref", rec.Ref),
				zap.Int("row", rec.Row),
				zap.Error(err))
			if !e.cfg.ContinueOnStoreError {
				return result, fmt.Errorf("import aborted at row %d: %w", rec.Row, err)
			}
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	result.OK = true
	log.Info("Import finished",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("rejected", len(result.Errors)))
	return result, nil
}

// apply reconciles a single record. Returns whether it was inserted.
func (e *Engine) apply(ctx context.Context, rec Record, mode Mode, result *Result) (bool, error) {
	existing, err := e.store.GetByRef(ctx, rec.Ref)
	if errors.Is(err, store.ErrNotFound) {
		part := newPart(rec)
		err := e.store.Insert(ctx, &part)
		if errors.Is(err, store.ErrConflict) {
			// Another writer created the reference between our lookup and
			// the insert. Fall through to an update.
			existing, err = e.store.GetByRef(ctx, rec.Ref)
			if err != nil {
				return false, err
			}
			return false, e.update(ctx, existing, rec, mode)
		}
		if err != nil {
			return false, err
		}
		result.NewRecords = append(result.NewRecords, part)
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, e.update(ctx, existing, rec, mode)
}

func (e *Engine) update(ctx context.Context, existing *models.Part, rec Record, mode Mode) error {
	fields := map[string]any{string(FieldQuantity): rec.Quantity}
	if mode == ModeFull {
		for field, value := range rec.Fields {
			fields[string(field)] = value
		}
	}
	return e.store.UpdateFields(ctx, existing.ID, fields)
}

// newPart builds an insertable part from a record. Inserts always carry
// every present field, whatever the mode: a part the system has never seen
// has no descriptive data to preserve.
func newPart(rec Record) models.Part {
	part := models.Part{BusinessRef: rec.Ref, Quantity: rec.Quantity}
	for field, value := range rec.Fields {
		switch field {
		case FieldName:
			part.Name = value
		case FieldCategory:
			part.Category = value
		case FieldMachineModel:
			part.MachineModel = value
		case FieldMachineVariant:
			part.MachineVariant = value
		case FieldProductType:
			part.ProductType = value
		case FieldModel:
			part.Model = value
		case FieldTag:
			part.Tag = value
		case FieldUnit:
			part.Unit = value
		case FieldLocation:
			part.Location = value
		case FieldNote:
			part.Note = value
		case FieldImageURL:
			part.ImageURL = value
		case FieldMachineTag:
			part.MachineTag = value
		}
	}
	return part
}

// Preview runs the same parse, validation, and lookups as Import but writes
// nothing, reporting what an import of the file would do. Quantity deltas
// are computed against the current stock so the caller can show them.
func (e *Engine) Preview(ctx context.Context, src io.Reader, layout Layout) (*Preview, error) {
	rows, err := ParseSheet(src)
	if err != nil {
		return nil, err
	}

	records, rowErrors := ValidateRows(rows, layout, Policy{StrictQuantity: e.cfg.StrictQuantity})
	preview := &Preview{ToInsert: []models.Part{}, ToUpdate: []QuantityChange{}, Errors: rowErrors}

	for _, rec := range records {
		existing, err := e.store.GetByRef(ctx, rec.Ref)
		if errors.Is(err, store.ErrNotFound) {
			preview.ToInsert = append(preview.ToInsert, newPart(rec))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("preview failed at row %d: %w", rec.Row, err)
		}
		preview.ToUpdate = append(preview.ToUpdate, QuantityChange{
			BusinessRef:      rec.Ref,
			CurrentQuantity:  existing.Quantity,
			ProposedQuantity: rec.Quantity,
		})
	}

	preview.OK = true
	return preview, nil
}
