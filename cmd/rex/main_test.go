package main

import "testing"

func TestReadInput_FromPositionalArgument(t *testing.T) {
	got, err := readInput([]string{"pattern", "haystack text"})
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if string(got) != "haystack text" {
		t.Errorf("readInput = %q, want %q", got, "haystack text")
	}
}

func TestNewRootCmd_FlagsRegistered(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"all", "replace", "ignore-case"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %q not registered", name)
		}
	}
	if cmd.Flags().ShorthandLookup("g") == nil {
		t.Error("expected -g as the shorthand for --all")
	}
	if cmd.Flags().ShorthandLookup("r") == nil {
		t.Error("expected -r as the shorthand for --replace")
	}
	if cmd.Flags().ShorthandLookup("i") == nil {
		t.Error("expected -i as the shorthand for --ignore-case")
	}
}

func TestNewRootCmd_RequiresAtLeastOnePositionalArg(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected an error for zero positional args")
	}
	if err := cmd.Args(cmd, []string{"pattern"}); err != nil {
		t.Errorf("Args with one positional arg: %v", err)
	}
	if err := cmd.Args(cmd, []string{"pattern", "input"}); err != nil {
		t.Errorf("Args with two positional args: %v", err)
	}
	if err := cmd.Args(cmd, []string{"pattern", "input", "extra"}); err == nil {
		t.Error("expected an error for three positional args")
	}
}
