// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// DefaultFilename is the name offered for a generated document.
	DefaultFilename = "questions_moodle.gift"
	// ContentType is the MIME type of a GIFT document.
	ContentType = "text/plain; charset=utf-8"
	// DefaultPreviewChars is how much of a document Preview shows by default.
	DefaultPreviewChars = 2000
	// Ellipsis marks a truncated preview.
	Ellipsis = "..."
)

// Preview returns the first limit characters of doc, followed by Ellipsis
// when anything was cut. A limit of zero or less uses DefaultPreviewChars.
func Preview(doc string, limit int) (string, bool) {
	if limit <= 0 {
		limit = DefaultPreviewChars
	}
	n := 0
	for i := range doc {
		if n == limit {
			return doc[:i] + Ellipsis, true
		}
		n++
	}
	return doc, false
}

// WriteFile writes doc to path. The path "-" writes to stdout instead.
// Parent directories are created as needed.
func WriteFile(path, doc string, stdout io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(stdout, doc)
		return err
	}
	if path == "" {
		path = DefaultFilename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
