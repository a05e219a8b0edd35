// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func float(v float64) *float64 { return &v }

func xlsxBase64(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "pregunta", "respuesta", "d1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"X1", "Capital?", "Madrid", "Roma"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestConvertToGIFT(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	converter := NewConverter(nil)

	tests := []struct {
		name           string
		input          InputConvertToGIFT
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputConvertToGIFT)
	}{
		{
			name:        "empty content returns error",
			input:       InputConvertToGIFT{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "csv sheet produces blocks",
			input: InputConvertToGIFT{
				Content:  "id,enunciado,correcta,distractor1,distractor2\nQ1,2+2?,4,5,3\n",
				Filename: "preguntas.csv",
			},
			validateOutput: func(t *testing.T, output OutputConvertToGIFT) {
				assert.Equal(t, "csv", output.ReaderUsed)
				assert.Equal(t, "::Q1::2+2? {\n  =%100%4\n  ~%-10%5\n  ~%-10%3\n}\n\n", output.GIFT)
				assert.Equal(t, 1, output.QuestionCount)
				assert.Equal(t, 3, output.OptionCount)
			},
		},
		{
			name: "category and penalty applied",
			input: InputConvertToGIFT{
				Content:    "question,answer,d1\nQ?,A,B\n",
				Format:     "csv",
				WrongScore: float(-25),
				Category:   "Unit1",
			},
			validateOutput: func(t *testing.T, output OutputConvertToGIFT) {
				assert.Equal(t, "$CATEGORY: Unit1\n\n::Question_1::Q? {\n  =%100%A\n  ~%-25%B\n}\n\n", output.GIFT)
			},
		},
		{
			name: "base64 xlsx workbook",
			input: InputConvertToGIFT{
				Content:  xlsxBase64(t),
				Encoding: "base64",
				Filename: "banco.xlsx",
			},
			validateOutput: func(t *testing.T, output OutputConvertToGIFT) {
				assert.Equal(t, "xlsx", output.ReaderUsed)
				assert.Contains(t, output.GIFT, "::X1::Capital? {")
				assert.Contains(t, output.GIFT, "~%-10%Roma")
			},
		},
		{
			name: "yaml sheet with zero surviving rows",
			input: InputConvertToGIFT{
				Content: "- enunciado: S\n",
				Format:  "yaml",
			},
			validateOutput: func(t *testing.T, output OutputConvertToGIFT) {
				assert.Empty(t, output.GIFT)
				assert.Equal(t, 0, output.QuestionCount)
			},
		},
		{
			name: "invalid penalty returns error",
			input: InputConvertToGIFT{
				Content:    "question,answer\nQ,A\n",
				WrongScore: float(-12),
			},
			wantErr:     true,
			errContains: "invalid wrong-answer penalty",
		},
		{
			name: "bad base64 returns error",
			input: InputConvertToGIFT{
				Content:  "%%%",
				Encoding: "base64",
			},
			wantErr:     true,
			errContains: "decode base64",
		},
		{
			name: "unsupported format returns error",
			input: InputConvertToGIFT{
				Content: "anything",
				Format:  "pdf",
			},
			wantErr:     true,
			errContains: "unsupported sheet format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := converter.ConvertToGIFT(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer("test", NewConverter(nil)))
}
