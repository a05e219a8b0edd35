// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

var _ sheet.Reader = (*YAMLReader)(nil)

// YAMLReader reads question sheets written as YAML or JSON. The document
// is either a sequence of mappings, one per question, or a mapping with a
// "questions" key holding that sequence. Headers are the mapping keys in
// the order they are first seen.
type YAMLReader struct{}

func NewYAMLReader() *YAMLReader {
	return &YAMLReader{}
}

func (r *YAMLReader) Name() string {
	return "yaml"
}

func (r *YAMLReader) CanHandle(source sheet.Source) bool {
	switch declaredFormat(source) {
	case "yaml", "yml", "json":
		return true
	case "":
		content := strings.TrimSpace(string(source.Content))
		return strings.HasPrefix(content, "- ") ||
			strings.HasPrefix(content, "[") ||
			strings.HasPrefix(content, "---") ||
			strings.HasPrefix(content, "questions:")
	}
	return false
}

func (r *YAMLReader) Read(ctx context.Context, source sheet.Source) (*sheet.Table, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(source.Content, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML/JSON: %w", err)
	}

	items, err := questionItems(doc)
	if err != nil {
		return nil, err
	}

	var headers []string
	index := map[string]int{}
	rows := make([]yaml.MapSlice, 0, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, ok := item.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("item %d is %T, want a mapping", i+1, item)
		}
		for _, kv := range m {
			key := fmt.Sprint(kv.Key)
			if _, seen := index[key]; !seen {
				index[key] = len(headers)
				headers = append(headers, key)
			}
		}
		rows = append(rows, m)
	}

	records := make([][]any, len(rows))
	for i, m := range rows {
		cells := make([]any, len(headers))
		for _, kv := range m {
			cells[index[fmt.Sprint(kv.Key)]] = scalar(kv.Value)
		}
		records[i] = cells
	}
	return sheet.NewTable(headers, records), nil
}

func questionItems(doc any) ([]any, error) {
	switch v := doc.(type) {
	case nil:
		return nil, fmt.Errorf("no columns to parse: document is empty")
	case []any:
		return v, nil
	case yaml.MapSlice:
		for _, kv := range v {
			if fmt.Sprint(kv.Key) != "questions" {
				continue
			}
			items, ok := kv.Value.([]any)
			if !ok {
				return nil, fmt.Errorf("questions is %T, want a sequence", kv.Value)
			}
			return items, nil
		}
		return nil, fmt.Errorf("mapping document has no questions key")
	}
	return nil, fmt.Errorf("document is %T, want a sequence of questions", doc)
}

// scalar keeps plain values and renders nested YAML back to text so that
// one cell always holds one scalar.
func scalar(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice, []any, map[string]any:
		rendered, err := yaml.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return strings.TrimSpace(string(rendered))
	case string:
		if isBlank(t) {
			return nil
		}
	}
	return v
}
