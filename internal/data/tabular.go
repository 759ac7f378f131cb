package data

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"maternal-vitals/internal/model"
)

// Table is a tabular source materialized as records.
// Columns keeps the source header order, which records (maps) do not.
type Table struct {
	Columns []string
	Records []model.Record
}

// ReadTable reads a CSV or XLSX file (chosen by extension, CSV by default) and
// converts every row into a record with per-column type inference.
func ReadTable(path string) (*Table, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		header, rows, err = readXLSX(path)
	default:
		header, rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(header, rows), nil
}

// ReadRecords is ReadTable without the column order.
func ReadRecords(path string) ([]model.Record, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	return t.Records, nil
}

// Tokens read as missing values. These are the pandas read_csv defaults, which
// is how the dashboard CSVs are produced.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// isNA matches the cell exactly; " NA " is a string, not a missing value.
func isNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

type columnKind int

const (
	kindInt columnKind = iota
	kindFloat
	kindBool
	kindString
)

func buildTable(header []string, rows [][]string) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
	}
	dedupColumns(columns)

	kinds := make([]columnKind, len(columns))
	for col := range columns {
		kinds[col] = inferKind(rows, col)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(model.Record, len(columns))
		for col, name := range columns {
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			rec[name] = convert(cell, kinds[col])
		}
		records = append(records, rec)
	}
	return &Table{Columns: columns, Records: records}
}

// dedupColumns renames repeated headers in place the way pandas does: the
// second "a" becomes "a.1", the third "a.2", skipping names already taken.
func dedupColumns(columns []string) {
	counts := make(map[string]int, len(columns))
	for i, col := range columns {
		cur := counts[col]
		for cur > 0 {
			counts[col] = cur + 1
			col = fmt.Sprintf("%s.%d", col, cur)
			cur = counts[col]
		}
		columns[i] = col
		counts[col] = cur + 1
	}
}

// inferKind picks the narrowest type every non-missing cell of a column parses
// as. Integer columns with gaps widen to float, as pandas does.
func inferKind(rows [][]string, col int) columnKind {
	allInt, allFloat, allBool := true, true, true
	seen, missing := false, false
	for _, row := range rows {
		if col >= len(row) || isNA(row[col]) {
			missing = true
			continue
		}
		seen = true
		v := strings.TrimSpace(row[col])
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			allFloat = false
		}
		if _, ok := parseBool(v); !ok {
			allBool = false
		}
	}
	switch {
	case !seen:
		return kindFloat
	case allInt && !missing:
		return kindInt
	case allInt || allFloat:
		return kindFloat
	case allBool:
		return kindBool
	default:
		return kindString
	}
}

func convert(cell string, kind columnKind) any {
	if isNA(cell) {
		return nil
	}
	v := strings.TrimSpace(cell)
	switch kind {
	case kindInt:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case kindFloat:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case kindBool:
		b, _ := parseBool(v)
		return b
	default:
		return cell
	}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
