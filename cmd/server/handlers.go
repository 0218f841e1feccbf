package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AmritanshuRaj45/sectionize"
	"github.com/AmritanshuRaj45/sectionize/section"
)

type handler struct {
	engine sectionize.Engine
}

func newHandler(e sectionize.Engine) *handler {
	return &handler{engine: e}
}

// POST /ingest
// Accepts multipart file upload or JSON with a file path.
func (h *handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
	defer cancel()

	// Try multipart upload first
	if err := r.ParseMultipartForm(100 << 20); err == nil { // 100MB max
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()

			// Sanitise filename to prevent path traversal.
			safeName := filepath.Base(header.Filename)

			tmpPath := filepath.Join(os.TempDir(), safeName)
			dst, err := os.Create(tmpPath)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to process file")
				slog.Error("creating temp file", "error", err)
				return
			}
			if _, err := io.Copy(dst, file); err != nil {
				dst.Close()
				writeError(w, http.StatusInternalServerError, "failed to save file")
				slog.Error("saving uploaded file", "error", err)
				return
			}
			dst.Close()
			defer os.Remove(tmpPath)

			docID, err := h.engine.Ingest(ctx, tmpPath)
			if err != nil {
				writeError(w, ingestStatus(err), "ingestion failed")
				slog.Error("ingest error", "error", err)
				return
			}

			writeJSON(w, http.StatusOK, map[string]interface{}{
				"document_id": docID,
				"filename":    safeName,
			})
			return
		}
	}

	// Try JSON body with path
	var req struct {
		Path    string            `json:"path"`
		Options map[string]string `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: expected multipart file or JSON with 'path'")
		return
	}

	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	absPath, err := filepath.Abs(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusBadRequest, "path must be an existing file")
		return
	}

	var opts []sectionize.IngestOption
	if _, ok := req.Options["force"]; ok {
		opts = append(opts, sectionize.WithForceReparse())
	}

	docID, err := h.engine.Ingest(ctx, absPath, opts...)
	if err != nil {
		writeError(w, ingestStatus(err), "ingestion failed")
		slog.Error("ingest error", "path", absPath, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"document_id": docID,
		"path":        absPath,
	})
}

// GET /search?q=...&persona=...&limit=N
func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	var opts []sectionize.SearchOption
	if persona := r.URL.Query().Get("persona"); persona != "" {
		opts = append(opts, sectionize.WithSearchPersona(persona))
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		opts = append(opts, sectionize.WithMaxResults(limit))
	}

	results, err := h.engine.Search(ctx, query, opts...)
	if err != nil {
		if errors.Is(err, sectionize.ErrNoResults) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"results": []sectionize.Result{}})
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		slog.Error("search error", "query", query, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// POST /snippet
// Extracts a budgeted snippet from arbitrary text.
func (h *handler) handleSnippet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body      string `json:"body"`
		Query     string `json:"query"`
		Persona   string `json:"persona,omitempty"`
		MaxLength int    `json:"max_length,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}

	var opts []sectionize.SnippetOption
	if req.Persona != "" {
		opts = append(opts, sectionize.WithPersona(req.Persona))
	}
	if req.MaxLength > 0 {
		opts = append(opts, sectionize.WithMaxLength(req.MaxLength))
	}

	snippet := h.engine.Snippet(r.Context(), req.Body, req.Query, opts...)
	writeJSON(w, http.StatusOK, map[string]string{"snippet": snippet})
}

// POST /sections
// Runs section detection over raw page text without persisting.
func (h *handler) handleSections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string   `json:"name"`
		Pages []string `json:"pages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.Pages) == 0 {
		writeError(w, http.StatusBadRequest, "pages is required")
		return
	}
	if req.Name == "" {
		req.Name = "untitled"
	}

	doc := section.Document{Name: req.Name}
	for i, text := range req.Pages {
		doc.Pages = append(doc.Pages, section.Page{Number: i + 1, Text: text})
	}

	chunks := h.engine.BuildChunks(r.Context(), []section.Document{doc})
	if chunks == nil {
		chunks = []section.Chunk{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sections": chunks})
}

// DELETE /documents/{id}
func (h *handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	if err := h.engine.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		slog.Error("delete error", "document_id", id, "error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /documents
func (h *handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.engine.ListDocuments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		slog.Error("list documents error", "error", err)
		return
	}
	if docs == nil {
		docs = []sectionize.Document{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ingestStatus maps ingest errors to HTTP status codes.
func ingestStatus(err error) int {
	switch {
	case errors.Is(err, sectionize.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, sectionize.ErrParsingFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
