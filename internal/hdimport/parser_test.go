package hdimport

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell := fmt.Sprintf("%s%d", string(rune('A'+colIdx)), rowIdx+1)
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseUploadMatchesAliasedColumns(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Line #", "Part No.", "Desc", "Qty"},
		{1, "HD-1001", "Clutch lever", 2},
		{2, "HD-2002", "", 1},
	})

	lines, err := ParseUpload(buf)
	if err != nil {
		t.Fatalf("ParseUpload error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	first := lines[0]
	if first.PartNumber != "HD-1001" || first.Quantity != 2 {
		t.Fatalf("aliased columns mismapped: %+v", first)
	}
	if first.LineNumber == nil || *first.LineNumber != 1 {
		t.Fatalf("line number not parsed: %+v", first)
	}
	if first.Description == nil || *first.Description != "Clutch lever" {
		t.Fatalf("description not parsed: %+v", first)
	}
	if lines[1].Description != nil {
		t.Fatalf("blank description should stay nil: %+v", lines[1])
	}
}

func TestParseUploadToleratesColumnOrderAndCase(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"QUANTITY", "pn", "LINE"},
		{3, "HD-9", 7},
	})

	lines, err := ParseUpload(buf)
	if err != nil {
		t.Fatalf("ParseUpload error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line.PartNumber != "HD-9" || line.Quantity != 3 || line.LineNumber == nil || *line.LineNumber != 7 {
		t.Fatalf("columns mismapped: %+v", line)
	}
}

func TestParseUploadSkipsBlankPartNumbers(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Part Number", "Qty"},
		{"HD-1", 1},
		{"", 5},
		{"  ", 5},
		{"HD-2", 1},
	})

	lines, err := ParseUpload(buf)
	if err != nil {
		t.Fatalf("ParseUpload error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("blank part numbers should be skipped, got %d lines", len(lines))
	}
}

func TestParseUploadDefaultsQuantityToOne(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Part Number"},
		{"HD-1"},
	})

	lines, err := ParseUpload(buf)
	if err != nil {
		t.Fatalf("ParseUpload error: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("quantity should default to 1: %+v", lines)
	}
}

func TestParseUploadRejectsUnrecognizedHeader(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Color", "Size"},
		{"black", "L"},
	})

	_, err := ParseUpload(buf)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseUploadRejectsGarbage(t *testing.T) {
	_, err := ParseUpload(bytes.NewBufferString("not a spreadsheet"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
