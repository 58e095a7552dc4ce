package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewVersionCommand reports build metadata, in the teacher's version
// command style (titled/colored key-value pairs).
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			title := color.New(color.FgCyan, color.Bold)
			value := color.New(color.FgWhite)

			title.Print("kwic version: ")
			value.Println(Version)
			title.Print("Git commit: ")
			value.Println(GitCommit)
			title.Print("Build date: ")
			value.Println(BuildDate)
			title.Print("Go version: ")
			value.Println(runtime.Version())
		},
	}
}
