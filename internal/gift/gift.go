// SPDX-License-Identifier: Apache-2.0

// Package gift converts question sheets into Moodle GIFT markup.
//
// A conversion resolves column roles once from the headers, extracts a
// record from every row that has both a statement and a correct answer,
// and writes one multiple-choice block per record. Rows lacking either
// field are dropped silently. Conversion never fails: read errors belong
// to the sheet loader and invalid options are rejected by Options.Validate.
package gift

import (
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

// Convert turns a table into a GIFT document. The table is not modified.
func Convert(table *sheet.Table, opts Options) Result {
	if table == nil {
		return Assemble(opts, nil, 1)
	}
	cols := ResolveColumns(table.Headers)
	records := ExtractRecords(table.Rows, cols)
	return Assemble(opts, records, cols.OptionCount())
}
