package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/czcorpus/kwic/internal/cli"
	"github.com/czcorpus/kwic/internal/cli/config"
)

// NewIndexCommand validates a corpus source and reports index statistics,
// without starting a server or running a query - the "does my corpus
// load" smoke test, grounded on the teacher's db commands being
// idempotent, side-effect-reporting operations.
func NewIndexCommand() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build and validate the corpus index",
		Long: `Load the configured corpus, build its inverted index, and report
schema and document statistics. Exits non-zero on a schema error (spec.md §7).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if corpusPath != "" {
				cfg.Corpus.Path = corpusPath
			}

			idx, err := cli.LoadIndex(context.Background(), cfg)
			if err != nil {
				return fmt.Errorf("building index: %w", err)
			}

			underlying := idx.Underlying()
			ok := color.New(color.FgGreen, color.Bold)
			info := color.New(color.FgCyan)

			ok.Println("index built successfully")
			info.Printf("  documents: %d\n", underlying.NumDocs())
			info.Printf("  schema attributes: %v\n", underlying.Schema().Attrs())
			info.Printf("  default attribute: %s\n", underlying.DefaultAttr())
			info.Printf("  max quantifier bound: %d\n", underlying.MaxQuant())
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "path", "", "override corpus.path from kwic.yml")
	return cmd
}
