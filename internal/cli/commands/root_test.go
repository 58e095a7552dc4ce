package commands

import "testing"

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	if root.Use != "kwic" {
		t.Errorf("expected Use to be 'kwic', got %s", root.Use)
	}

	want := []string{"version", "index", "query", "serve"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestNewIndexCommandRegistersPathFlag(t *testing.T) {
	cmd := NewIndexCommand()
	if cmd.Flags().Lookup("path") == nil {
		t.Error("expected --path flag to be registered")
	}
}

func TestNewQueryCommandRegistersFlags(t *testing.T) {
	cmd := NewQueryCommand()
	for _, name := range []string{"left", "right", "attrs", "path"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to be registered", name)
		}
	}
}
