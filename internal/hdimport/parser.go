package hdimport

import (
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
)

// ParsedLine is one normalized row out of an HD order spreadsheet.
type ParsedLine struct {
	LineNumber  *int    `json:"line_number,omitempty" validate:"omitempty,min=1"`
	PartNumber  string  `json:"part_number" validate:"required"`
	Description *string `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"min=1"`
}

// columnAliases maps the header spellings dealers actually upload to the
// normalized column each feeds. Comparison is case-insensitive on the
// trimmed header cell.
var columnAliases = map[string]string{
	"part number": "part_number",
	"part no":     "part_number",
	"part no.":    "part_number",
	"part#":       "part_number",
	"pn":          "part_number",
	"line":        "line_number",
	"line #":      "line_number",
	"line no":     "line_number",
	"line number": "line_number",
	"qty":         "quantity",
	"quantity":    "quantity",
	"qty ordered": "quantity",
	"description": "description",
	"desc":        "description",
	"item":        "description",
}

// ParseUpload reads an xlsx stream and returns the normalized lines from its
// first sheet. The header row may use any known alias in any column order;
// rows with a blank part number are skipped.
func ParseUpload(r io.Reader) ([]ParsedLine, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open spreadsheet")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read sheet rows")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "spreadsheet is empty")
	}

	columns := matchColumns(rows[0])
	if _, ok := columns["part_number"]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no part number column recognized").
			WithDetails(map[string]any{"header": rows[0]})
	}

	lines := make([]ParsedLine, 0, len(rows)-1)
	for _, row := range rows[1:] {
		line := ParsedLine{Quantity: 1}

		if idx, ok := columns["part_number"]; ok {
			line.PartNumber = strings.TrimSpace(cellAt(row, idx))
		}
		if line.PartNumber == "" {
			continue
		}
		if idx, ok := columns["line_number"]; ok {
			if n, err := strconv.Atoi(strings.TrimSpace(cellAt(row, idx))); err == nil {
				line.LineNumber = &n
			}
		}
		if idx, ok := columns["quantity"]; ok {
			if n, err := strconv.Atoi(strings.TrimSpace(cellAt(row, idx))); err == nil && n > 0 {
				line.Quantity = n
			}
		}
		if idx, ok := columns["description"]; ok {
			if desc := strings.TrimSpace(cellAt(row, idx)); desc != "" {
				line.Description = &desc
			}
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// matchColumns resolves header cells to normalized column names. The first
// header claiming a column wins.
func matchColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name, ok := columnAliases[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		if _, claimed := columns[name]; claimed {
			continue
		}
		columns[name] = i
	}
	return columns
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
