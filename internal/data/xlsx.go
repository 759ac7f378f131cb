package data

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet of an Excel workbook as header + rows.
func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	var body [][]string
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		body = append(body, row)
	}
	return rows[0], body, nil
}
