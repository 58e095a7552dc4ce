package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/czcorpus/kwic/internal/cli"
	"github.com/czcorpus/kwic/internal/cli/config"
	cerrors "github.com/czcorpus/kwic/internal/errors"
	"github.com/czcorpus/kwic/internal/kwicprint"
	"github.com/czcorpus/kwic/internal/match"
)

// NewQueryCommand runs a single CQL query against the configured corpus
// and prints KWIC rows to the terminal, the interactive counterpart to
// the HTTP search endpoint. When no query argument is given, it prompts
// for one (github.com/AlecAivazis/survey/v2), the same interactive
// fallback the teacher's `generate resource` command uses for a missing
// positional argument.
func NewQueryCommand() *cobra.Command {
	var (
		left, right int
		attrs       []string
		corpusPath  string
	)

	cmd := &cobra.Command{
		Use:   "query [cql]",
		Short: "Run a CQL query against the corpus and print KWIC rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) > 0 {
				query = args[0]
			} else {
				prompt := &survey.Input{Message: "CQL query:"}
				if err := survey.AskOne(prompt, &query, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}

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

			results, errs := idx.Search(query, left, right)
			if len(errs) > 0 {
				for _, d := range cerrors.ToDiagnostics(errs) {
					fmt.Fprintln(os.Stderr, cerrors.FormatDiagnostic(d))
				}
				return fmt.Errorf("query failed with %d error(s)", len(errs))
			}

			var rows []match.KWIC
			for kwic := range results {
				rows = append(rows, kwic)
			}

			if len(attrs) == 0 {
				attrs = kwicprint.DefaultAttrs
			}
			return kwicprint.Print(os.Stdout, rows, attrs)
		},
	}

	cmd.Flags().IntVar(&left, "left", 5, "number of tokens of left context")
	cmd.Flags().IntVar(&right, "right", 5, "number of tokens of right context")
	cmd.Flags().StringSliceVar(&attrs, "attrs", nil, "token attributes to print (default: word,pos)")
	cmd.Flags().StringVar(&corpusPath, "path", "", "override corpus.path from kwic.yml")

	return cmd
}
