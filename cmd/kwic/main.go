package main

import (
	"fmt"
	"os"

	"github.com/czcorpus/kwic/internal/cli/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
