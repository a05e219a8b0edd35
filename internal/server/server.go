// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jalopezm-ui/gift-moodle-generator/internal/config"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/gift"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/output"
	"github.com/jalopezm-ui/gift-moodle-generator/internal/sheet"
)

// Server exposes the converter over HTTP: a sheet is uploaded as the
// multipart field "file" and comes back as a GIFT download or a preview.
type Server struct {
	cfg    *config.Config
	loader *sheet.Loader
}

func New(cfg *config.Config, loader *sheet.Loader) *Server {
	return &Server{cfg: cfg, loader: loader}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Question-Count", "X-Option-Count"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r.Post("/convert", s.handleConvert)
	r.Post("/preview", s.handlePreview)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s", s.cfg.HTTP.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[Server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// POST /convert (multipart: file, wrong_score?, category?)
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.convertUpload(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+output.DefaultFilename+`"`)
	w.Header().Set("X-Question-Count", strconv.Itoa(result.Questions))
	w.Header().Set("X-Option-Count", strconv.Itoa(result.Options))
	_, _ = io.WriteString(w, result.Document)
}

// PreviewResponse is the JSON body of POST /preview.
type PreviewResponse struct {
	Preview       string  `json:"preview"`
	Truncated     bool    `json:"truncated"`
	QuestionCount int     `json:"question_count"`
	OptionCount   int     `json:"option_count"`
	WrongScore    float64 `json:"wrong_score"`
	Category      string  `json:"category,omitempty"`
	Filename      string  `json:"filename"`
}

// POST /preview (multipart: file, wrong_score?, category?)
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	result, opts, ok := s.convertUpload(w, r)
	if !ok {
		return
	}

	preview, truncated := output.Preview(result.Document, s.cfg.PreviewChars)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(PreviewResponse{
		Preview:       preview,
		Truncated:     truncated,
		QuestionCount: result.Questions,
		OptionCount:   result.Options,
		WrongScore:    float64(opts.Penalty),
		Category:      opts.Category,
		Filename:      output.DefaultFilename,
	})
}

// convertUpload reads the uploaded sheet and converts it. On failure it
// writes the error response and returns false.
func (s *Server) convertUpload(w http.ResponseWriter, r *http.Request) (gift.Result, gift.Options, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.HTTP.MaxUploadBytes)

	f, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return gift.Result{}, gift.Options{}, false
	}
	defer f.Close()

	opts, err := s.formOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return gift.Result{}, gift.Options{}, false
	}

	content, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return gift.Result{}, gift.Options{}, false
	}

	table, err := s.loader.Load(r.Context(), sheet.Source{
		Content: content,
		Format:  r.FormValue("format"),
		Name:    hdr.Filename,
	})
	if err != nil {
		log.Printf("[Server] Failed to read %q: %v", hdr.Filename, err)
		http.Error(w, fmt.Sprintf("error processing file: %v", err), http.StatusBadRequest)
		return gift.Result{}, gift.Options{}, false
	}

	result := gift.Convert(table, opts)
	log.Printf("[Server] Converted %q: %d questions, %d options/question, penalty %s%%",
		hdr.Filename, result.Questions, result.Options, opts.Penalty)
	return result, opts, true
}

// formOptions starts from the configured options and applies the optional
// wrong_score and category form fields.
func (s *Server) formOptions(r *http.Request) (gift.Options, error) {
	opts, err := s.cfg.Options()
	if err != nil {
		return gift.Options{}, err
	}
	if v := strings.TrimSpace(r.FormValue("wrong_score")); v != "" {
		p, err := gift.ParsePenalty(v)
		if err != nil {
			return gift.Options{}, err
		}
		opts.Penalty = p
	}
	if _, ok := r.MultipartForm.Value["category"]; ok {
		opts.Category = strings.TrimSpace(r.FormValue("category"))
	}
	return opts, nil
}
