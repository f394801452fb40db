package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned for workbooks without a single worksheet.
var ErrNoSheet = errors.New("workbook has no sheets")

// Row is one data row of a spreadsheet, keyed by the raw header of each
// column. Index is the 1-based row number in the sheet, header row included,
// so it matches what the user sees in their spreadsheet program.
type Row struct {
	Index int
	Cells map[string]string
}

// ParseSheet reads the first worksheet of an xlsx workbook. The first row is
// taken as the header row; rows whose cells are all blank are skipped.
func ParseSheet(src io.Reader) ([]Row, error) {
	book, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}

	raw, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		if blankRow(cells) {
			continue
		}
		row := Row{Index: i + 2, Cells: make(map[string]string, len(headers))}
		for j, header := range headers {
			if j < len(cells) {
				row.Cells[header] = cells[j]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
