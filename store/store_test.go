//go:build cgo

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/AmritanshuRaj45/sectionize/section"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath, 4) // dim=4 for test vectors
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleChunks() []section.Chunk {
	return []section.Chunk{
		{
			Document:      "cities.pdf",
			PageNumber:    1,
			SectionTitle:  "Packing Checklist",
			SectionText:   "Bring layers for variable weather and comfortable walking shoes.",
			WordCount:     9,
			CharCount:     64,
			SentenceCount: 1,
			SectionType:   "checklist",
		},
		{
			Document:      "cities.pdf",
			PageNumber:    2,
			SectionTitle:  "Nightlife And Entertainment",
			SectionText:   "The old town hosts bars and live music venues until early morning.",
			WordCount:     12,
			CharCount:     66,
			SentenceCount: 1,
			SectionType:   "entertainment",
		},
	}
}

// ---------------------------------------------------------------------------
// Schema / construction
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	s := newTestStore(t)
	if s.EmbeddingDim() != 4 {
		t.Fatalf("expected embedding dim 4, got %d", s.EmbeddingDim())
	}
	if s.DB() == nil {
		t.Fatal("expected non-nil *sql.DB")
	}
}

func TestNewCreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "dir", "test.db")
	s, err := New(dbPath, 4)
	if err != nil {
		t.Fatalf("creating store in nested dir: %v", err)
	}
	s.Close()
}

// ---------------------------------------------------------------------------
// Document CRUD
// ---------------------------------------------------------------------------

func TestUpsertAndGetDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{
		Path:        "/docs/cities.pdf",
		Filename:    "cities.pdf",
		Format:      "pdf",
		ContentHash: "abc123",
		Status:      "processing",
	})
	if err != nil {
		t.Fatalf("upserting document: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero document id")
	}

	got, err := s.GetDocumentByPath(ctx, "/docs/cities.pdf")
	if err != nil {
		t.Fatalf("getting by path: %v", err)
	}
	if got.ID != id {
		t.Errorf("id: got %d, want %d", got.ID, id)
	}
	if got.Filename != "cities.pdf" {
		t.Errorf("filename: got %q, want %q", got.Filename, "cities.pdf")
	}
	if got.Status != "processing" {
		t.Errorf("status: got %q, want %q", got.Status, "processing")
	}
}

func TestUpsertDocumentSamePath(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/a.pdf", Filename: "a.pdf", Format: "pdf", ContentHash: "h1", Status: "processing",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	id2, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/a.pdf", Filename: "a.pdf", Format: "pdf", ContentHash: "h2", Status: "ready",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Errorf("upsert on same path changed id: %d -> %d", id1, id2)
	}

	got, err := s.GetDocumentByPath(ctx, "/docs/a.pdf")
	if err != nil {
		t.Fatalf("getting by path: %v", err)
	}
	if got.ContentHash != "h2" {
		t.Errorf("content hash not updated: got %q, want %q", got.ContentHash, "h2")
	}
}

func TestGetDocumentByPathNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocumentByPath(context.Background(), "/nonexistent")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListAndDeleteDocuments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/b.pdf", Filename: "b.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	if err := s.DeleteDocument(ctx, id); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	docs, err = s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("listing after delete: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected 0 documents after delete, got %d", len(docs))
	}
}

// ---------------------------------------------------------------------------
// Sections
// ---------------------------------------------------------------------------

func TestInsertAndGetSections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/cities.pdf", Filename: "cities.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}

	chunks := sampleChunks()
	ids, err := s.InsertSections(ctx, docID, chunks)
	if err != nil {
		t.Fatalf("inserting sections: %v", err)
	}
	if len(ids) != len(chunks) {
		t.Fatalf("expected %d ids, got %d", len(chunks), len(ids))
	}
	for i, id := range ids {
		if id == 0 {
			t.Errorf("ids[%d] is zero", i)
		}
	}

	got, err := s.GetSectionsByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("getting sections: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got))
	}
	if got[0].SectionTitle != "Packing Checklist" {
		t.Errorf("order not preserved: got[0].SectionTitle = %q", got[0].SectionTitle)
	}
	if got[1].SectionType != "entertainment" {
		t.Errorf("got[1].SectionType = %q, want %q", got[1].SectionType, "entertainment")
	}
}

func TestDeleteDocumentSections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/cities.pdf", Filename: "cities.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	ids, err := s.InsertSections(ctx, docID, sampleChunks())
	if err != nil {
		t.Fatalf("inserting sections: %v", err)
	}
	if err := s.InsertEmbedding(ctx, ids[0], []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("inserting embedding: %v", err)
	}

	if err := s.DeleteDocumentSections(ctx, docID); err != nil {
		t.Fatalf("deleting sections: %v", err)
	}

	got, err := s.GetSectionsByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("getting sections: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 sections after delete, got %d", len(got))
	}

	// Document row survives a section wipe.
	if _, err := s.GetDocumentByPath(ctx, "/docs/cities.pdf"); err != nil {
		t.Errorf("document row should survive: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func TestVectorSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/cities.pdf", Filename: "cities.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	ids, err := s.InsertSections(ctx, docID, sampleChunks())
	if err != nil {
		t.Fatalf("inserting sections: %v", err)
	}

	if err := s.InsertEmbedding(ctx, ids[0], []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("embedding 0: %v", err)
	}
	if err := s.InsertEmbedding(ctx, ids[1], []float32{0, 1, 0, 0}); err != nil {
		t.Fatalf("embedding 1: %v", err)
	}

	results, err := s.VectorSearch(ctx, []float32{0.9, 0.1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("vector search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SectionID != ids[0] {
		t.Errorf("nearest section = %d, want %d", results[0].SectionID, ids[0])
	}
	if results[0].Chunk.SectionTitle != "Packing Checklist" {
		t.Errorf("result chunk title = %q, want %q", results[0].Chunk.SectionTitle, "Packing Checklist")
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %f then %f", results[0].Score, results[1].Score)
	}
}

func TestFTSSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/cities.pdf", Filename: "cities.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if _, err := s.InsertSections(ctx, docID, sampleChunks()); err != nil {
		t.Fatalf("inserting sections: %v", err)
	}

	results, err := s.FTSSearch(ctx, "nightlife OR bars", 10)
	if err != nil {
		t.Fatalf("fts search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Chunk.SectionTitle != "Nightlife And Entertainment" {
		t.Errorf("result title = %q, want %q", results[0].Chunk.SectionTitle, "Nightlife And Entertainment")
	}
}

func TestFTSSearchNoMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	docID, err := s.UpsertDocument(ctx, Document{
		Path: "/docs/cities.pdf", Filename: "cities.pdf", Format: "pdf", ContentHash: "h", Status: "ready",
	})
	if err != nil {
		t.Fatalf("upserting: %v", err)
	}
	if _, err := s.InsertSections(ctx, docID, sampleChunks()); err != nil {
		t.Fatalf("inserting sections: %v", err)
	}

	results, err := s.FTSSearch(ctx, "zeppelin", 10)
	if err != nil {
		t.Fatalf("fts search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}
