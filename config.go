package sectionize

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AmritanshuRaj45/sectionize/llm"
)

// Config holds all configuration for the sectionize engine.
type Config struct {
	// DBPath is the full path to the SQLite database file.
	// If empty, defaults to ~/.sectionize/<DBName>.db
	DBPath string `json:"db_path" yaml:"db_path"`

	// DBName is the name for the database (used when DBPath is empty).
	// Defaults to "sectionize".
	DBName string `json:"db_name" yaml:"db_name"`

	// StorageDir controls where the database is created when DBPath is
	// not explicitly set. Options: "home" (default) uses ~/.sectionize/,
	// "local" uses the current working directory.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	// Embedding configures the provider behind the NLP oracle. An
	// empty provider runs the engine in degraded (oracle-absent) mode.
	Embedding llm.Config `json:"embedding" yaml:"embedding"`

	// MinSectionLength is the minimum trimmed section body length, in
	// characters, for a chunk to be emitted.
	MinSectionLength int `json:"min_section_length" yaml:"min_section_length"`

	// SnippetMaxLength is the default length budget for extracted
	// snippets.
	SnippetMaxLength int `json:"snippet_max_length" yaml:"snippet_max_length"`

	// Retrieval weights for rank fusion.
	WeightVector float64 `json:"weight_vector" yaml:"weight_vector"`
	WeightFTS    float64 `json:"weight_fts" yaml:"weight_fts"`

	// EmbeddingDim must match the embedding model.
	EmbeddingDim int `json:"embedding_dim" yaml:"embedding_dim"`
}

// DefaultConfig returns a Config with sensible defaults for local
// inference. Database is stored in ~/.sectionize/sectionize.db by
// default.
func DefaultConfig() Config {
	return Config{
		DBName:     "sectionize",
		StorageDir: "home",
		Embedding: llm.Config{
			Provider: "ollama",
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		MinSectionLength: 30,
		SnippetMaxLength: DefaultSnippetMaxLength,
		WeightVector:     1.0,
		WeightFTS:        1.0,
		EmbeddingDim:     768,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// resolveDBPath computes the final database path from config fields.
func (c *Config) resolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}

	name := c.DBName
	if name == "" {
		name = "sectionize"
	}

	switch c.StorageDir {
	case "local", "cwd":
		return name + ".db"
	default: // "home" or empty
		home, err := os.UserHomeDir()
		if err != nil {
			return name + ".db" // fallback to cwd
		}
		return filepath.Join(home, ".sectionize", name+".db")
	}
}
