// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/server"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet/readers"
)

const sampleCSV = "id,enunciado,correcta,distractor1,distractor2\nQ1,2+2?,4,5,3\nQ2,,x,y,z\n"

func newServer(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.PreviewChars = 10
	return server.New(cfg, readers.NewDefaultLoader()).Router()
}

func upload(t *testing.T, path, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestConvert(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, upload(t, "/convert", "preguntas.csv", sampleCSV, map[string]string{"category": "Unit1"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="questions_moodle.gift"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", rec.Header().Get("X-Question-Count"))
	assert.Equal(t, "3", rec.Header().Get("X-Option-Count"))
	assert.Equal(t, "$CATEGORY: Unit1\n\n::Q1::2+2? {\n  =%100%4\n  ~%-10%5\n  ~%-10%3\n}\n\n", rec.Body.String())
}

func TestConvert_WrongScore(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, upload(t, "/convert", "preguntas.csv", sampleCSV, map[string]string{"wrong_score": "-33.33333"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "~%-33.33333%5")
}

func TestConvert_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		contains string
	}{
		{
			name:     "missing file",
			req:      func(t *testing.T) *http.Request { return upload(t, "/convert", "", "", nil) },
			contains: "file required",
		},
		{
			name: "invalid penalty",
			req: func(t *testing.T) *http.Request {
				return upload(t, "/convert", "q.csv", sampleCSV, map[string]string{"wrong_score": "-7"})
			},
			contains: "invalid wrong-answer penalty",
		},
		{
			name:     "unsupported file",
			req:      func(t *testing.T) *http.Request { return upload(t, "/convert", "old.xls", "binary", nil) },
			contains: "error processing file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newServer(t).ServeHTTP(rec, tt.req(t))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestPreview(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, upload(t, "/preview", "preguntas.csv", sampleCSV, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp server.PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "::Q1::2+2?...", resp.Preview)
	assert.True(t, resp.Truncated)
	assert.Equal(t, 1, resp.QuestionCount)
	assert.Equal(t, 3, resp.OptionCount)
	assert.Equal(t, -10.0, resp.WrongScore)
	assert.Equal(t, "questions_moodle.gift", resp.Filename)
}
