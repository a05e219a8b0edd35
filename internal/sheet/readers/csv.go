// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

var _ sheet.Reader = (*CSVReader)(nil)

// CSVReader reads comma separated files. The first record is the header
// row; empty cells are reported as missing. A semicolon delimiter is
// detected when the header line holds more semicolons than commas, which
// is what spreadsheet exports in comma-decimal locales produce.
type CSVReader struct{}

func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

func (r *CSVReader) Name() string {
	return "csv"
}

// CanHandle accepts "csv"/"txt" hints and, for untagged sources, any
// content that is not a zip archive.
func (r *CSVReader) CanHandle(source sheet.Source) bool {
	switch declaredFormat(source) {
	case "csv", "txt":
		return true
	case "":
		return !isZip(source.Content)
	}
	return false
}

func (r *CSVReader) Read(ctx context.Context, source sheet.Source) (*sheet.Table, error) {
	content := bytes.TrimPrefix(source.Content, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.New("no columns to parse: file is empty")
	}

	cr := csv.NewReader(bytes.NewReader(content))
	cr.Comma = sniffDelimiter(content)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}

	var records [][]any
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		cells := make([]any, len(record))
		for i, val := range record {
			if val != "" {
				cells[i] = val
			}
		}
		records = append(records, cells)
	}
	return sheet.NewTable(headers, records), nil
}

func sniffDelimiter(content []byte) rune {
	first, _, _ := bytes.Cut(content, []byte("\n"))
	line := string(first)
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
