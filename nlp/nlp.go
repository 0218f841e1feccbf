// Package nlp defines the pluggable language-understanding oracle the
// pipeline consults for lemmatization, part-of-speech flags, noun
// chunks, and semantic similarity. The oracle is optional: a nil
// Oracle means degraded mode, and every caller falls back to lexical
// heuristics rather than failing.
package nlp

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Coarse part-of-speech tags produced by oracle tokenization.
const (
	POSNoun  = "NOUN"
	POSVerb  = "VERB"
	POSStop  = "STOP"
	POSNum   = "NUM"
	POSOther = "X"
)

// Token is one token of a text span with its linguistic annotations.
type Token struct {
	Text    string
	Lemma   string
	POS     string
	IsStop  bool
	IsAlpha bool
}

// Oracle supplies the linguistic primitives used by the section
// detector, text normalizer, and snippet extractor. Implementations
// must be reentrant: the core shares one oracle across concurrent
// invocations without locking.
type Oracle interface {
	// Tokens annotates a text span.
	Tokens(ctx context.Context, text string) ([]Token, error)

	// NounChunks returns the noun-headed phrase spans of a text span.
	NounChunks(ctx context.Context, text string) ([]string, error)

	// Similarity scores the semantic closeness of two spans. Higher is
	// closer; callers rely only on the total order, not the scale.
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Embedder produces vector embeddings for a batch of texts. The llm
// package's Provider satisfies this.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

var (
	loadOnce sync.Once
	loaded   Oracle
)

// probeTimeout bounds the one-time availability check at startup.
const probeTimeout = 10 * time.Second

// Load probes the embedding provider once per process and returns the
// shared Oracle, or nil if the provider is missing or unreachable. The
// outcome is captured on first call and never re-probed; an
// unavailable provider logs a single warning and the process continues
// in degraded mode for its remaining lifetime.
func Load(provider Embedder) Oracle {
	loadOnce.Do(func() {
		if provider == nil {
			slog.Warn("nlp: no embedding provider configured, running in degraded mode")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		if _, err := provider.Embed(ctx, []string{"probe"}); err != nil {
			slog.Warn("nlp: embedding provider unavailable, running in degraded mode", "error", err)
			return
		}
		loaded = NewEmbedOracle(provider)
	})
	return loaded
}
