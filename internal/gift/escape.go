// SPDX-License-Identifier: Apache-2.0

package gift

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// giftReplacements escape GIFT control characters. The backslash rule must
// stay first so escapes added by later rules are not escaped again.
var giftReplacements = [][2]string{
	{`\`, `\\`},
	{`~`, `\~`},
	{`=`, `\=`},
	{`#`, `\#`},
	{`{`, `\{`},
	{`}`, `\}`},
	{`:`, `\:`},
}

// Escape renders a cell value as GIFT-safe text. Missing values (nil or
// NaN) become the empty string.
func Escape(v any) string {
	if isMissing(v) {
		return ""
	}
	text := toText(v)
	for _, r := range giftReplacements {
		text = strings.ReplaceAll(text, r[0], r[1])
	}
	return text
}

func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	}
	return false
}

func toText(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// isBlank reports whether a cell is missing or only whitespace once
// rendered as text.
func isBlank(v any) bool {
	return isMissing(v) || strings.TrimSpace(toText(v)) == ""
}
