// Package commands implements kwic's cobra command tree: serve, query,
// index and version. Grounded on the teacher's internal/cli/commands
// package (root.go's color-banner style, subcommand registration shape).
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information, set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand builds the kwic root command.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "kwic",
		Short: "Keyword-in-context concordancer",
		Long: color.CyanString(`kwic - a Corpus Query Language concordancer

Indexes a tokenized, attribute-annotated corpus and answers CQL queries
with keyword-in-context matches, over HTTP or the terminal.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewVersionCommand())
	root.AddCommand(NewIndexCommand())
	root.AddCommand(NewQueryCommand())
	root.AddCommand(NewServeCommand())

	return root
}
