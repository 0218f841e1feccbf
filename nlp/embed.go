package nlp

import (
	"context"
	"fmt"
	"math"
)

// embedOracle implements Oracle with lexicon heuristics for the token
// primitives and provider embeddings for semantic similarity.
type embedOracle struct {
	provider Embedder
}

// NewEmbedOracle wraps an embedding provider as an Oracle. Use Load for
// the shared, probed, once-per-process instance.
func NewEmbedOracle(provider Embedder) Oracle {
	return &embedOracle{provider: provider}
}

func (o *embedOracle) Tokens(ctx context.Context, text string) ([]Token, error) {
	return LexicalTokens(text), nil
}

func (o *embedOracle) NounChunks(ctx context.Context, text string) ([]string, error) {
	return lexicalNounChunks(text), nil
}

// Similarity embeds both spans in one batch and returns their cosine
// similarity.
func (o *embedOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	embs, err := o.provider.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, fmt.Errorf("embedding spans: %w", err)
	}
	if len(embs) < 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(embs))
	}
	return cosine(embs[0], embs[1]), nil
}

// cosine returns the cosine similarity of two vectors, 0 for
// mismatched or zero vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
