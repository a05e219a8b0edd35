// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

var zipMagic = []byte("PK\x03\x04")

// NewDefaultLoader builds a Loader with every reader registered.
// Order matters: the XLSX reader sniffs binary content first, and the CSV
// reader is last because it accepts any untagged text.
func NewDefaultLoader() *sheet.Loader {
	return sheet.NewLoader(
		NewXLSXReader(),
		NewYAMLReader(),
		NewCSVReader(),
	)
}

// declaredFormat returns the lower-cased format hint, falling back to the
// file extension without its dot. It returns "" when neither is present.
func declaredFormat(source sheet.Source) string {
	if f := strings.ToLower(strings.TrimSpace(source.Format)); f != "" {
		return strings.TrimPrefix(f, ".")
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(source.Name)), ".")
}

func isZip(content []byte) bool {
	return bytes.HasPrefix(content, zipMagic)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
