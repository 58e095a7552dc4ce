// Package cli wires kwic's cobra command tree to the rest of the module:
// loading a corpus per cli/config, building the search index, and
// driving one-shot queries, the HTTP/WebSocket server, and index
// validation. Grounded on the teacher's internal/cli/commands package.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/czcorpus/kwic/internal/cli/config"
	"github.com/czcorpus/kwic/internal/corpus"
	"github.com/czcorpus/kwic/internal/search"
)

// LoadIndex loads the corpus described by cfg.Corpus and builds a
// search.Index from it, dispatching on cfg.Corpus.Source the way the
// teacher's db commands dispatch on a configured driver.
func LoadIndex(ctx context.Context, cfg *config.Config) (*search.Index, error) {
	docs, err := loadDocs(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return search.NewIndex(docs, corpus.Config{
		DefaultAttr: cfg.Corpus.DefaultAttr,
		MaxQuant:    cfg.Corpus.MaxQuant,
	})
}

func loadDocs(ctx context.Context, cfg *config.Config) ([]corpus.RawDocument, error) {
	switch cfg.Corpus.Source {
	case "jsonl":
		f, err := os.Open(cfg.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("opening corpus file %s: %w", cfg.Corpus.Path, err)
		}
		defer f.Close()
		return corpus.LoadJSONLines(f, cfg.Corpus.TextField)

	case "sql":
		switch cfg.Corpus.Driver {
		case "postgres":
			return corpus.LoadFromPostgres(ctx, cfg.Corpus.DSN)
		case "sqlite3":
			return corpus.LoadFromSQLiteFile(ctx, cfg.Corpus.DSN)
		default:
			return nil, fmt.Errorf("unsupported corpus.driver %q", cfg.Corpus.Driver)
		}

	default:
		return nil, fmt.Errorf("unsupported corpus.source %q", cfg.Corpus.Source)
	}
}
