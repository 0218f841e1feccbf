// Package sectionize turns noisy page text into titled, classified
// sections and serves query-relevant snippets over them. It combines
// heading detection, lightweight linguistic analysis, SQLite-backed
// hybrid retrieval, and budgeted snippet extraction.
package sectionize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AmritanshuRaj45/sectionize/llm"
	"github.com/AmritanshuRaj45/sectionize/nlp"
	"github.com/AmritanshuRaj45/sectionize/parser"
	"github.com/AmritanshuRaj45/sectionize/section"
	"github.com/AmritanshuRaj45/sectionize/store"
)

// Engine is the main entry point for the sectionize pipeline.
type Engine interface {
	// Ingest parses a document, detects sections, classifies and
	// embeds them. Returns document ID. Skips if content hash
	// unchanged.
	Ingest(ctx context.Context, path string, opts ...IngestOption) (int64, error)

	// Search runs hybrid (vector + FTS) retrieval over ingested
	// sections and optionally attaches extracted snippets.
	Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error)

	// BuildChunks runs the section pipeline over in-memory documents
	// without touching storage.
	BuildChunks(ctx context.Context, docs []section.Document) []section.Chunk

	// Snippet extracts a query-relevant excerpt from arbitrary text.
	Snippet(ctx context.Context, body, query string, opts ...SnippetOption) string

	// ListDocuments returns all ingested documents.
	ListDocuments(ctx context.Context) ([]Document, error)

	// Delete removes a document and all associated sections.
	Delete(ctx context.Context, documentID int64) error

	// Store returns the underlying store for diagnostic access.
	Store() *store.Store

	// Close cleanly shuts down the engine.
	Close() error
}

// Result is a retrieved section with its fused score and optional
// snippet.
type Result struct {
	SectionID  int64         `json:"section_id"`
	DocumentID int64         `json:"document_id"`
	Filename   string        `json:"filename"`
	Chunk      section.Chunk `json:"chunk"`
	Score      float64       `json:"score"`
	Snippet    string        `json:"snippet,omitempty"`
}

// Document represents an ingested document.
type Document struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	ContentHash string `json:"content_hash"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// IngestOption configures ingestion behavior.
type IngestOption func(*ingestOptions)

type ingestOptions struct {
	forceReparse bool
}

// WithForceReparse forces re-parsing even if the hash hasn't changed.
func WithForceReparse() IngestOption {
	return func(o *ingestOptions) { o.forceReparse = true }
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg      Config
	store    *store.Store
	embedLLM llm.Provider
	oracle   nlp.Oracle
	parsers  *parser.Registry
	pipeline *section.Pipeline
}

// New creates a sectionize engine with the given configuration. An
// empty embedding provider yields a degraded engine: FTS-only search
// and lexical snippet ranking, no vector index.
func New(cfg Config) (Engine, error) {
	dbPath := cfg.resolveDBPath()

	if cfg.EmbeddingDim == 0 {
		cfg.EmbeddingDim = 768
	}
	if cfg.MinSectionLength == 0 {
		cfg.MinSectionLength = section.DefaultMinSectionLength
	}
	if cfg.SnippetMaxLength == 0 {
		cfg.SnippetMaxLength = DefaultSnippetMaxLength
	}

	s, err := store.New(dbPath, cfg.EmbeddingDim)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	var embedLLM llm.Provider
	var oracle nlp.Oracle
	if cfg.Embedding.Provider != "" {
		embedLLM, err = llm.NewProvider(cfg.Embedding)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("creating embedding provider: %w", err)
		}
		oracle = nlp.Load(embedLLM)
	} else {
		slog.Warn("no embedding provider configured, running degraded")
	}

	return &engine{
		cfg:      cfg,
		store:    s,
		embedLLM: embedLLM,
		oracle:   oracle,
		parsers:  parser.NewRegistry(),
		pipeline: section.NewPipeline(oracle, section.PipelineConfig{
			MinSectionLength: cfg.MinSectionLength,
		}),
	}, nil
}

// Ingest processes a document through the full pipeline.
func (e *engine) Ingest(ctx context.Context, path string, opts ...IngestOption) (int64, error) {
	options := &ingestOptions{}
	for _, o := range opts {
		o(options)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving path: %w", err)
	}

	hash, err := fileHash(absPath)
	if err != nil {
		return 0, fmt.Errorf("hashing file: %w", err)
	}

	if !options.forceReparse {
		existing, err := e.store.GetDocumentByPath(ctx, absPath)
		if err == nil && existing.ContentHash == hash {
			return existing.ID, nil // no change
		}
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(absPath), "."))
	filename := filepath.Base(absPath)

	docID, err := e.store.UpsertDocument(ctx, store.Document{
		Path:        absPath,
		Filename:    filename,
		Format:      format,
		ContentHash: hash,
		Status:      "processing",
	})
	if err != nil {
		return 0, fmt.Errorf("upserting document: %w", err)
	}

	slog.Info("ingest: parsing document", "file", filename, "format", format, "doc_id", docID)
	parseStart := time.Now()

	p, err := e.parsers.Get(format)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	parsed, err := p.Parse(ctx, absPath)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return 0, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	slog.Info("ingest: parsing complete",
		"file", filename, "method", parsed.Method,
		"pages", len(parsed.Pages), "elapsed", time.Since(parseStart).Round(time.Millisecond))

	// Section detection and classification
	sectStart := time.Now()
	chunks := e.pipeline.BuildChunks(ctx, []section.Document{{
		Name:  filename,
		Pages: parsed.Pages,
	}})
	slog.Info("ingest: sectioning complete",
		"file", filename, "sections", len(chunks),
		"elapsed", time.Since(sectStart).Round(time.Millisecond))

	// Clear old sections for re-ingest
	if err := e.store.DeleteDocumentSections(ctx, docID); err != nil {
		return 0, fmt.Errorf("cleaning old data: %w", err)
	}

	sectionIDs, err := e.store.InsertSections(ctx, docID, chunks)
	if err != nil {
		e.store.UpdateDocumentStatus(ctx, docID, "error")
		return 0, fmt.Errorf("inserting sections: %w", err)
	}

	if e.embedLLM != nil && len(chunks) > 0 {
		slog.Info("ingest: generating embeddings", "file", filename, "sections", len(chunks))
		embedStart := time.Now()
		if err := e.embedChunks(ctx, chunks, sectionIDs); err != nil {
			e.store.UpdateDocumentStatus(ctx, docID, "error")
			return 0, fmt.Errorf("embedding sections: %w", err)
		}
		slog.Info("ingest: embeddings complete",
			"file", filename, "sections", len(chunks),
			"elapsed", time.Since(embedStart).Round(time.Millisecond))
	}

	slog.Info("ingest: document ready",
		"file", filename, "doc_id", docID,
		"total_elapsed", time.Since(parseStart).Round(time.Millisecond))
	e.store.UpdateDocumentStatus(ctx, docID, "ready")
	return docID, nil
}

// Search runs hybrid retrieval and optional snippet extraction.
func (e *engine) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	options := &searchOptions{maxResults: 10, snippets: true}
	for _, o := range opts {
		o(options)
	}

	fetch := options.maxResults * 2

	var vecResults []store.SearchResult
	if e.embedLLM != nil {
		embeddings, err := e.embedLLM.Embed(ctx, []string{query})
		if err != nil || len(embeddings) == 0 {
			slog.Warn("query embedding failed, FTS only", "error", err)
		} else {
			vecResults, err = e.store.VectorSearch(ctx, embeddings[0], fetch)
			if err != nil {
				slog.Warn("vector search failed", "error", err)
			}
		}
	}

	ftsResults, err := e.store.FTSSearch(ctx, sanitizeFTSQuery(query), fetch)
	if err != nil {
		slog.Warn("fts search failed", "error", err)
	}

	fused := fuseRRF(vecResults, ftsResults, e.cfg.WeightVector, e.cfg.WeightFTS, options.maxResults)
	if len(fused) == 0 {
		return nil, ErrNoResults
	}

	results := make([]Result, len(fused))
	for i, r := range fused {
		results[i] = Result{
			SectionID:  r.SectionID,
			DocumentID: r.DocumentID,
			Filename:   r.Filename,
			Chunk:      r.Chunk,
			Score:      r.Score,
		}
		if options.snippets {
			results[i].Snippet = ExtractSnippet(ctx, e.oracle, r.Chunk.SectionText, query,
				WithPersona(options.persona),
				WithMaxLength(e.cfg.SnippetMaxLength))
		}
	}
	return results, nil
}

// BuildChunks runs section detection over in-memory documents.
func (e *engine) BuildChunks(ctx context.Context, docs []section.Document) []section.Chunk {
	return e.pipeline.BuildChunks(ctx, docs)
}

// Snippet extracts a query-relevant excerpt from arbitrary text.
func (e *engine) Snippet(ctx context.Context, body, query string, opts ...SnippetOption) string {
	merged := append([]SnippetOption{WithMaxLength(e.cfg.SnippetMaxLength)}, opts...)
	return ExtractSnippet(ctx, e.oracle, body, query, merged...)
}

// ListDocuments returns all ingested documents.
func (e *engine) ListDocuments(ctx context.Context) ([]Document, error) {
	docs, err := e.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Document, len(docs))
	for i, d := range docs {
		result[i] = Document{
			ID:          d.ID,
			Path:        d.Path,
			Filename:    d.Filename,
			Format:      d.Format,
			ContentHash: d.ContentHash,
			Status:      d.Status,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		}
	}
	return result, nil
}

// Delete removes a document and all its sections.
func (e *engine) Delete(ctx context.Context, documentID int64) error {
	if _, err := e.store.GetDocument(ctx, documentID); err != nil {
		return fmt.Errorf("%w: id %d", ErrDocumentNotFound, documentID)
	}
	return e.store.DeleteDocument(ctx, documentID)
}

// Store returns the underlying store for diagnostic access.
func (e *engine) Store() *store.Store {
	return e.store
}

// Close shuts down the engine.
func (e *engine) Close() error {
	return e.store.Close()
}

// maxEmbedChars caps the text length sent to the embedding model.
// Most embedding models have an 8192-token window; ~24000 chars keeps
// headroom for varied tokenisers.
const maxEmbedChars = 24000

// truncateForEmbed truncates text to maxEmbedChars on a word boundary.
func truncateForEmbed(text string) string {
	if len(text) <= maxEmbedChars {
		return text
	}
	cut := strings.LastIndex(text[:maxEmbedChars], " ")
	if cut <= 0 {
		cut = maxEmbedChars
	}
	return text[:cut]
}

// embedText builds the text sent to the embedding model for a section:
// normalized body prefixed by its title. Falls back to the raw text
// when normalization strips everything.
func (e *engine) embedText(ctx context.Context, c section.Chunk) string {
	text := section.PreprocessForVector(ctx, e.oracle, c.SectionText)
	if text == "" {
		text = c.SectionText
	}
	if c.SectionTitle != "" {
		text = c.SectionTitle + ": " + text
	}
	return truncateForEmbed(text)
}

// embedChunks generates embeddings for sections in batches. A failed
// batch falls back to per-text embedding so one oversized section does
// not lose the whole batch.
func (e *engine) embedChunks(ctx context.Context, chunks []section.Chunk, sectionIDs []int64) error {
	const batchSize = 32
	var failed int

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-i)
		for j := i; j < end; j++ {
			texts[j-i] = e.embedText(ctx, chunks[j])
		}

		embeddings, err := e.embedLLM.Embed(ctx, texts)
		if err != nil {
			slog.Warn("embedding batch failed, falling back to individual",
				"batch_start", i, "batch_end", end, "error", err)
			for j, text := range texts {
				single, serr := e.embedLLM.Embed(ctx, []string{text})
				if serr != nil || len(single) == 0 || len(single[0]) == 0 {
					slog.Warn("embedding single text failed",
						"section_id", sectionIDs[i+j], "error", serr)
					failed++
					continue
				}
				if serr := e.store.InsertEmbedding(ctx, sectionIDs[i+j], single[0]); serr != nil {
					slog.Warn("storing embedding failed",
						"section_id", sectionIDs[i+j], "error", serr)
					failed++
				}
			}
			continue
		}

		for j, emb := range embeddings {
			if err := e.store.InsertEmbedding(ctx, sectionIDs[i+j], emb); err != nil {
				slog.Warn("storing embedding failed",
					"section_id", sectionIDs[i+j], "error", err)
				failed++
			}
		}
	}

	if failed == len(chunks) && len(chunks) > 0 {
		return fmt.Errorf("all %d sections failed embedding", len(chunks))
	}
	if failed > 0 {
		slog.Warn("some embeddings failed", "failed", failed, "total", len(chunks))
	}
	return nil
}

// fileHash computes the SHA-256 hash of a file's content.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
