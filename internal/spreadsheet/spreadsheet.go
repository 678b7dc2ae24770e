package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"

	"github.com/spigell/hf-importer/internal/candidate"
)

const charset = "utf-8"

const (
	colPosition = iota
	colFullName
	colSalary
	colComment
	colStatus
	columns
)

// FileFormatError reports a workbook that cannot be opened or a row that cannot be converted.
type FileFormatError struct {
	Path string
	// Row is the 1-based sheet row, zero for workbook level problems.
	Row    int
	Reason string
	Err    error
}

func (e *FileFormatError) Error() string {
	msg := fmt.Sprintf("spreadsheet %s", e.Path)
	if e.Row > 0 {
		msg = fmt.Sprintf("%s: row %d", msg, e.Row)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *FileFormatError) Unwrap() error {
	return e.Err
}

// Read loads candidates from the first sheet of a legacy .xls workbook.
// The first row is a header. Columns are position, full name, salary
// expectation, comment and status.
func Read(path string) ([]*candidate.Candidate, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	return FromRows(path, rows)
}

// FromRows converts sheet rows, header included, into candidates in row order.
// Rows without any value are skipped and missing trailing cells read as empty.
// Only the header must carry all five columns.
func FromRows(path string, rows [][]string) ([]*candidate.Candidate, error) {
	if allBlank(rows) {
		return nil, nil
	}

	if width := filledWidth(rows[0]); width < columns {
		return nil, &FileFormatError{
			Path:   path,
			Row:    1,
			Reason: fmt.Sprintf("expected %d columns in the header, got %d", columns, width),
		}
	}

	candidates := make([]*candidate.Candidate, 0, len(rows)-1)
	for i, row := range rows[1:] {
		number := i + 2

		if isBlank(row) {
			continue
		}

		c, err := candidate.New(
			cell(row, colPosition),
			cell(row, colFullName),
			parseSalary(cell(row, colSalary)),
			cell(row, colComment),
			cell(row, colStatus),
		)
		if err != nil {
			return nil, &FileFormatError{Path: path, Row: number, Err: err}
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}

func readRows(path string) (rows [][]string, err error) {
	// The xls decoder panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = &FileFormatError{Path: path, Reason: fmt.Sprintf("malformed workbook: %v", r)}
		}
	}()

	wb, err := xls.Open(path, charset)
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: "cannot open workbook", Err: err}
	}

	if wb.NumSheets() == 0 {
		return nil, &FileFormatError{Path: path, Reason: "workbook has no sheets"}
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &FileFormatError{Path: path, Reason: "cannot read the first sheet"}
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := rowAt(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		// LastCol stops at the last stored cell, so empty trailing cells are read explicitly.
		cells := make([]string, columns)
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// rowAt returns nil for rows the workbook does not store. The decoder
// dereferences a nil row for them instead.
func rowAt(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()

	return sheet.Row(i)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// filledWidth is the number of cells up to the last non-empty one.
func filledWidth(row []string) int {
	for i := len(row) - 1; i >= 0; i-- {
		if strings.TrimSpace(row[i]) != "" {
			return i + 1
		}
	}

	return 0
}

func allBlank(rows [][]string) bool {
	for _, row := range rows {
		if !isBlank(row) {
			return false
		}
	}

	return true
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

// parseSalary accepts "150000", "150 000" (any unicode spaces) and "1500,50". Anything else is treated as absent.
func parseSalary(raw string) *float64 {
	raw = strings.Join(strings.Fields(raw), "")
	raw = strings.ReplaceAll(raw, ",", ".")
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}
