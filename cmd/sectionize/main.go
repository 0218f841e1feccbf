// Command sectionize ingests documents and searches their detected
// sections from the terminal.
//
// Usage:
//
//	sectionize ingest --config cfg.yaml ./docs/guide.pdf
//	sectionize search --q "nightlife recommendations" --persona "Travel Planner"
//	sectionize sections ./docs/guide.pdf
//	sectionize list
//	sectionize delete 3
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/AmritanshuRaj45/sectionize"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "ingest":
		err = runIngest(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "sections":
		err = runSections(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sectionize <ingest|search|sections|list|delete> [flags]")
}

// newEngine loads config (file plus env overrides) and opens the engine.
func newEngine(configPath string) (sectionize.Engine, error) {
	cfg := sectionize.DefaultConfig()
	if configPath != "" {
		loaded, err := sectionize.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if v := os.Getenv("SECTIONIZE_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SECTIONIZE_EMBED_PROVIDER"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := os.Getenv("SECTIONIZE_EMBED_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("SECTIONIZE_EMBED_BASE_URL"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	return sectionize.New(cfg)
}

func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	force := fs.Bool("force", false, "Re-parse even if content hash is unchanged")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("ingest: at least one file required")
	}

	engine, err := newEngine(*configPath)
	if err != nil {
		return err
	}
	defer engine.Close()

	var opts []sectionize.IngestOption
	if *force {
		opts = append(opts, sectionize.WithForceReparse())
	}

	for _, path := range fs.Args() {
		id, err := engine.Ingest(context.Background(), path, opts...)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		fmt.Printf("ingested %s (document %d)\n", path, id)
	}
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	query := fs.String("q", "", "Search query")
	persona := fs.String("persona", "", "Persona for snippet framing")
	limit := fs.Int("limit", 10, "Maximum results")
	asJSON := fs.Bool("json", false, "Emit raw JSON")
	fs.Parse(args)

	if *query == "" {
		return fmt.Errorf("search: --q is required")
	}

	engine, err := newEngine(*configPath)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(context.Background(), *query,
		sectionize.WithMaxResults(*limit),
		sectionize.WithSearchPersona(*persona))
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, r := range results {
		fmt.Printf("%d. [%.4f] %s p%d: %s\n", i+1, r.Score, r.Filename,
			r.Chunk.PageNumber, r.Chunk.SectionTitle)
		if r.Snippet != "" {
			fmt.Printf("   %s\n", r.Snippet)
		}
	}
	return nil
}

func runSections(args []string) error {
	fs := flag.NewFlagSet("sections", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("sections: exactly one file required")
	}

	engine, err := newEngine(*configPath)
	if err != nil {
		return err
	}
	defer engine.Close()

	id, err := engine.Ingest(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	chunks, err := engine.Store().GetSectionsByDocument(context.Background(), id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(chunks)
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	fs.Parse(args)

	engine, err := newEngine(*configPath)
	if err != nil {
		return err
	}
	defer engine.Close()

	docs, err := engine.ListDocuments(context.Background())
	if err != nil {
		return err
	}

	for _, d := range docs {
		fmt.Printf("%d\t%s\t%s\t%s\n", d.ID, d.Status, d.Format, d.Path)
	}
	return nil
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("delete: document id required")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("delete: invalid document id %q", fs.Arg(0))
	}

	engine, err := newEngine(*configPath)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("deleted document %d\n", id)
	return nil
}
