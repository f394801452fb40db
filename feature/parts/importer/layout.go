package importer

import (
	"fmt"
	"strings"
)

// Layout identifies the spreadsheet column layout of an import file.
type Layout string

const (
	// LayoutNative is the layout of sheets exported by this system.
	LayoutNative Layout = "native"
	// LayoutOdoo is the stock-report layout exported by the Odoo ERP,
	// with Spanish column headers.
	LayoutOdoo Layout = "odoo"
)

// ParseLayout validates a layout name. An empty name defaults to native.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "":
		return LayoutNative, nil
	case LayoutNative, LayoutOdoo:
		return Layout(s), nil
	default:
		return "", fmt.Errorf("unknown layout %q", s)
	}
}

// Field is a canonical record field. The values double as database column
// names so a normalized record can feed a partial update directly.
type Field string

const (
	FieldBusinessRef    Field = "business_ref"
	FieldName           Field = "name"
	FieldCategory       Field = "category"
	FieldMachineModel   Field = "machine_model"
	FieldMachineVariant Field = "machine_variant"
	FieldProductType    Field = "product_type"
	FieldModel          Field = "model"
	FieldTag            Field = "tag"
	FieldUnit           Field = "unit"
	FieldLocation       Field = "location"
	FieldNote           Field = "note"
	FieldImageURL       Field = "image_url"
	FieldMachineTag     Field = "machine_tag"
	FieldQuantity       Field = "quantity"
)

var nativeHeaders = map[string]Field{
	"Reference":       FieldBusinessRef,
	"Name":            FieldName,
	"Category":        FieldCategory,
	"Machine Model":   FieldMachineModel,
	"Machine Variant": FieldMachineVariant,
	"Product Type":    FieldProductType,
	"Model":           FieldModel,
	"Tag":             FieldTag,
	"Unit":            FieldUnit,
	"Location":        FieldLocation,
	"Note":            FieldNote,
	"Image URL":       FieldImageURL,
	"Machine Number":  FieldMachineTag,
	"Quantity":        FieldQuantity,
}

// odooHeaders maps the columns of an Odoo stock export. The export carries
// more columns than these; anything unmapped is dropped during normalization.
var odooHeaders = map[string]Field{
	"Referencia interna":                      FieldBusinessRef,
	"Nombre":                                  FieldName,
	"Cantidad a la mano":                      FieldQuantity,
	"Etiquetas de la plantilla del producto":  FieldTag,
	"Unidad de Medida":                        FieldUnit,
}

func headerMap(layout Layout) map[string]Field {
	if layout == LayoutOdoo {
		return odooHeaders
	}
	return nativeHeaders
}

// Normalize maps a raw sheet row onto canonical fields according to the
// layout. Headers and values are trimmed; unmapped columns and empty values
// are dropped, so absent and blank cells come out the same.
func Normalize(row Row, layout Layout) map[Field]string {
	headers := headerMap(layout)
	out := make(map[Field]string, len(row.Cells))
	for header, value := range row.Cells {
		field, ok := headers[strings.TrimSpace(header)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out[field] = value
	}
	return out
}
