// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"context"
	"fmt"
	"strings"
)

// Row maps a header to its cell value. A header that is absent from the
// map, or mapped to nil, is a missing cell.
type Row map[string]any

// Table is an in-memory question sheet: ordered headers and ordered rows.
type Table struct {
	Headers []string
	Rows    []Row
}

// Source describes the raw input handed to a Reader.
type Source struct {
	// Content is the raw file content.
	Content []byte
	// Format is an optional hint such as "csv", "xlsx" or "yaml".
	Format string
	// Name is the original file name, used for extension detection and messages.
	Name string
}

type Reader interface {
	CanHandle(source Source) bool
	Read(ctx context.Context, source Source) (*Table, error)
	Name() string
}

// NewTable builds a Table from a raw header line and positional records.
// Empty headers become "Unnamed: <index>" and repeated headers are suffixed
// ".1", ".2", ... in column order. Short records are padded with missing
// cells and cells beyond the header width are dropped.
func NewTable(rawHeaders []string, records [][]any) *Table {
	headers := normalizeHeaders(rawHeaders)
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	counts := make(map[string]int)
	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}
