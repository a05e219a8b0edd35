// SPDX-License-Identifier: Apache-2.0

package gift

import (
	"fmt"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

// Record is a validated question ready for assembly. Fields hold raw text;
// escaping happens when the block is written.
type Record struct {
	ID          string
	Statement   string
	Correct     string
	Distractors []string
}

// DefaultID is the identifier given to the row at 1-based position n when
// the sheet supplies none.
func DefaultID(n int) string {
	return fmt.Sprintf("Question_%d", n)
}

// ExtractRow validates one row against the column map. It returns false,
// with no error, when the statement or correct answer is missing or blank.
// index is the 0-based row position.
func ExtractRow(index int, row sheet.Row, cols ColumnMap) (Record, bool) {
	statement := row[cols.Statement]
	if isBlank(statement) {
		return Record{}, false
	}
	correct := row[cols.Correct]
	if isBlank(correct) {
		return Record{}, false
	}

	id := DefaultID(index + 1)
	if v := row[cols.ID]; !isMissing(v) {
		if s := toText(v); s != "" {
			id = s
		}
	}

	var distractors []string
	for _, h := range cols.Distractors {
		if v := row[h]; !isBlank(v) {
			distractors = append(distractors, toText(v))
		}
	}

	return Record{
		ID:          id,
		Statement:   toText(statement),
		Correct:     toText(correct),
		Distractors: distractors,
	}, true
}

// ExtractRecords runs ExtractRow over every row, keeping input order.
func ExtractRecords(rows []sheet.Row, cols ColumnMap) []Record {
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if rec, ok := ExtractRow(i, row, cols); ok {
			records = append(records, rec)
		}
	}
	return records
}
