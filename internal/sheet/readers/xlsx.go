// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
	"github.com/xuri/excelize/v2"
)

var _ sheet.Reader = (*XLSXReader)(nil)

// XLSXReader reads the first worksheet of an Office Open XML workbook.
// Cell values are taken as excelize formats them for display, so numbers
// keep the precision shown in the spreadsheet.
type XLSXReader struct{}

func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

func (r *XLSXReader) Name() string {
	return "xlsx"
}

func (r *XLSXReader) CanHandle(source sheet.Source) bool {
	switch declaredFormat(source) {
	case "xlsx", "xlsm", "excel":
		return true
	case "":
		return isZip(source.Content)
	}
	return false
}

func (r *XLSXReader) Read(ctx context.Context, source sheet.Source) (*sheet.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(source.Content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet %q has no header row", sheets[0])
	}

	records := make([][]any, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells := make([]any, len(cols))
		for i, val := range cols {
			if val != "" {
				cells[i] = val
			}
		}
		records = append(records, cells)
	}
	return sheet.NewTable(rows[0], records), nil
}
