package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"maternal-vitals/internal/model"
)

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Rows may be shorter or longer than the header; short rows are padded later.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// WriteRecordsCSV writes records with the given column order. Fields present in
// a record but missing from columns (for example vitals added by the simulator)
// are appended to the header in sorted order.
func WriteRecordsCSV(path string, columns []string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := headerFor(columns, records)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := make([]string, len(header))
		for i, name := range header {
			row[i] = fmtValue(rec[name])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func headerFor(columns []string, records []model.Record) []string {
	known := make(map[string]bool, len(columns))
	header := append([]string(nil), columns...)
	for _, c := range columns {
		known[c] = true
	}
	var extra []string
	for _, rec := range records {
		for k := range rec {
			if !known[k] {
				known[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(header, extra...)
}

func fmtValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(x)
	}
}
