// SPDX-License-Identifier: Apache-2.0

package gift

import (
	"strings"
)

// Result is the generated GIFT document with its summary counters.
type Result struct {
	Document string
	// Questions is the number of emitted question blocks.
	Questions int
	// Options is the number of distractor columns plus one, independent of
	// how many distractors a given row filled in.
	Options int
}

// Assemble writes the GIFT document for records. optionCount is reported
// as is in the result.
func Assemble(opts Options, records []Record, optionCount int) Result {
	var b strings.Builder

	if opts.Category != "" {
		b.WriteString("$CATEGORY: ")
		b.WriteString(opts.Category)
		b.WriteString("\n\n")
	}

	weight := opts.Penalty.String()
	for _, rec := range records {
		writeBlock(&b, rec, weight)
	}

	return Result{
		Document:  b.String(),
		Questions: len(records),
		Options:   optionCount,
	}
}

func writeBlock(b *strings.Builder, rec Record, weight string) {
	b.WriteString("::")
	b.WriteString(Escape(rec.ID))
	b.WriteString("::")
	b.WriteString(Escape(rec.Statement))
	b.WriteString(" {\n")

	b.WriteString("  =%100%")
	b.WriteString(Escape(rec.Correct))
	b.WriteString("\n")

	for _, d := range rec.Distractors {
		b.WriteString("  ~%")
		b.WriteString(weight)
		b.WriteString("%")
		b.WriteString(Escape(d))
		b.WriteString("\n")
	}

	b.WriteString("}\n\n")
}
