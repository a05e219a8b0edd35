// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet/readers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MetadataConvertToGIFT describes the convert_to_gift tool.
var MetadataConvertToGIFT = &mcp.Tool{
	Name: "convert_to_gift",
	Description: "Convert a question sheet into Moodle GIFT multiple-choice markup. " +
		"The sheet needs a statement column (enunciado, pregunta or question) and a correct answer " +
		"column (correcta, respuesta, correct or answer); an id column and distractor columns " +
		"(any header containing 'distractor', or d1, d2, ...) are optional. " +
		"Rows missing the statement or the correct answer are skipped. " +
		"Supported formats: csv, xlsx, yaml, json. Binary formats such as xlsx must be sent base64 encoded.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Sheet content, raw text or base64 depending on encoding",
			},
			"encoding": map[string]interface{}{
				"type":        "string",
				"description": "Content encoding. Use base64 for xlsx files.",
				"enum":        []string{"", "base64"},
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint. One of: csv, xlsx, yaml, json. If omitted, the filename extension or auto-detection is used.",
				"enum":        []string{"", "csv", "xlsx", "yaml", "json"},
			},
			"filename": map[string]interface{}{
				"type":        "string",
				"description": "Optional original file name, used for format detection and error messages.",
			},
			"wrong_score": map[string]interface{}{
				"type":        "number",
				"description": "Weight of each distractor in percent. One of 0, -5, -10, -20, -25, -33.33333, -50. Defaults to -10.",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Optional Moodle question bank category, e.g. Psicobiologia/Tema1.",
			},
		},
	},
}

// InputConvertToGIFT is the input for the ConvertToGIFT tool.
type InputConvertToGIFT struct {
	Content    string   `json:"content"`
	Encoding   string   `json:"encoding,omitempty"`
	Format     string   `json:"format,omitempty"`
	Filename   string   `json:"filename,omitempty"`
	WrongScore *float64 `json:"wrong_score,omitempty"`
	Category   string   `json:"category,omitempty"`
}

// OutputConvertToGIFT is the output for the ConvertToGIFT tool.
type OutputConvertToGIFT struct {
	// GIFT is the generated document.
	GIFT string `json:"gift"`
	// QuestionCount is the number of questions written.
	QuestionCount int `json:"question_count"`
	// OptionCount is the number of distractor columns plus one.
	OptionCount int `json:"option_count"`
	// ReaderUsed is the name of the sheet reader that was selected.
	ReaderUsed string `json:"reader_used"`
}

// Converter runs the convert_to_gift tool with a given sheet loader.
type Converter struct {
	loader *sheet.Loader
}

// NewConverter creates a Converter. A nil loader uses every default reader.
func NewConverter(loader *sheet.Loader) *Converter {
	if loader == nil {
		loader = readers.NewDefaultLoader()
	}
	return &Converter{loader: loader}
}

// ConvertToGIFT loads the sheet carried by the input and converts it.
func (c *Converter) ConvertToGIFT(ctx context.Context, _ *mcp.CallToolRequest, input InputConvertToGIFT) (*mcp.CallToolResult, OutputConvertToGIFT, error) {
	if input.Content == "" {
		return nil, OutputConvertToGIFT{}, fmt.Errorf("content is required")
	}

	opts := gift.DefaultOptions()
	opts.Category = strings.TrimSpace(input.Category)
	if input.WrongScore != nil {
		opts.Penalty = gift.Penalty(*input.WrongScore)
	}
	if err := opts.Validate(); err != nil {
		return nil, OutputConvertToGIFT{}, err
	}

	content, err := decodeContent(input.Content, input.Encoding)
	if err != nil {
		return nil, OutputConvertToGIFT{}, err
	}

	name := input.Filename
	if name == "" {
		name = "upload"
	}

	loaded, err := c.loader.LoadWithMeta(ctx, sheet.Source{
		Content: content,
		Format:  input.Format,
		Name:    name,
	})
	if err != nil {
		return nil, OutputConvertToGIFT{}, err
	}

	result := gift.Convert(loaded.Table, opts)
	return nil, OutputConvertToGIFT{
		GIFT:          result.Document,
		QuestionCount: result.Questions,
		OptionCount:   result.Options,
		ReaderUsed:    loaded.ReaderUsed,
	}, nil
}

func decodeContent(content, encoding string) ([]byte, error) {
	switch strings.ToLower(encoding) {
	case "":
		return []byte(content), nil
	case "base64":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
		if err != nil {
			return nil, fmt.Errorf("decode base64 content: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported content encoding %q", encoding)
}
