package importer

import (
	"strconv"
	"strings"
)

// Rejection reasons attached to RowError.Reason.
const (
	ReasonMissingKey       = "missing_key"
	ReasonDuplicateInBatch = "duplicate_in_batch"
	ReasonInvalidQuantity  = "invalid_quantity"
	ReasonStoreError       = "store_error"
)

// RowError describes one rejected row. Data carries the normalized fields so
// the caller can show the user what was rejected.
type RowError struct {
	Row    int              `json:"row"`
	Reason string           `json:"reason"`
	Data   map[Field]string `json:"data,omitempty"`
}

// Record is a validated row ready for reconciliation. Fields holds the
// descriptive columns only; the reference and quantity are pulled out because
// every reconciliation decision keys on them.
type Record struct {
	Row      int
	Ref      string
	Quantity int
	Fields   map[Field]string
}

// Policy controls row validation.
type Policy struct {
	// StrictQuantity rejects rows whose quantity cell is absent or not a
	// number. When false, such rows pass with quantity 0.
	StrictQuantity bool
}

// ValidateRows turns normalized rows into records, in input order. Rows
// without a business reference are rejected, and only the first occurrence
// of each reference survives; later duplicates are rejected. A row rejected
// for its quantity does not claim its reference: the first occurrence that
// passes validation is the canonical one.
//
// Quantity cells are coerced to a whole count: fractional values are
// truncated toward zero and negatives are clamped to 0. What happens to
// absent or non-numeric cells depends on the policy.
func ValidateRows(rows []Row, layout Layout, policy Policy) ([]Record, []RowError) {
	records := make([]Record, 0, len(rows))
	rowErrors := []RowError{}
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		fields := Normalize(row, layout)

		ref, ok := fields[FieldBusinessRef]
		if !ok {
			rowErrors = append(rowErrors, RowError{Row: row.Index, Reason: ReasonMissingKey, Data: fields})
			continue
		}
		if _, dup := seen[ref]; dup {
			rowErrors = append(rowErrors, RowError{Row: row.Index, Reason: ReasonDuplicateInBatch, Data: fields})
			continue
		}

		quantity, numeric := coerceQuantity(fields[FieldQuantity])
		if !numeric && policy.StrictQuantity {
			rowErrors = append(rowErrors, RowError{Row: row.Index, Reason: ReasonInvalidQuantity, Data: fields})
			continue
		}

		seen[ref] = struct{}{}
		delete(fields, FieldBusinessRef)
		delete(fields, FieldQuantity)
		records = append(records, Record{Row: row.Index, Ref: ref, Quantity: quantity, Fields: fields})
	}

	return records, rowErrors
}

// coerceQuantity parses a quantity cell into a whole count. The second
// return reports whether the cell held a number; callers decide whether a
// non-number is an error or just 0.
func coerceQuantity(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	n := int(f) // truncates toward zero
	if n < 0 {
		n = 0
	}
	return n, true
}
