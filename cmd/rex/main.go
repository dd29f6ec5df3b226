// Command rex is a small command-line front end for the regex engine: it
// matches a pattern against either a positional argument or stdin,
// optionally replacing or listing every match.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zig-utils/zig-regex-sub002"
)

var (
	version = "dev"

	flagAll         bool
	flagReplace     string
	flagIgnoreCase  bool
	hasReplace      bool
	matchColor      = color.New(color.FgGreen, color.Bold)
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rex PATTERN [INPUT]",
		Short:   "Match and manipulate text with a compiled regular expression",
		Version: version,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runRex,
	}
	cmd.Flags().BoolVarP(&flagAll, "all", "g", false, "find all non-overlapping matches")
	cmd.Flags().StringVarP(&flagReplace, "replace", "r", "", "replace matches with TEMPLATE ($0, $1, $name)")
	cmd.Flags().BoolVarP(&flagIgnoreCase, "ignore-case", "i", false, "case-insensitive match")
	return cmd
}

func runRex(cmd *cobra.Command, args []string) error {
	hasReplace = cmd.Flags().Changed("replace")

	pattern := args[0]
	input, err := readInput(args)
	if err != nil {
		return exitErr(err)
	}

	re, err := rex.CompileWithFlags(pattern, rex.Flags{CaseInsensitive: flagIgnoreCase})
	if err != nil {
		fmt.Fprintln(os.Stderr, "rex: invalid pattern:", err)
		os.Exit(2)
		return nil
	}

	if hasReplace {
		return runReplace(cmd, re, input)
	}
	return runFind(cmd, re, input)
}

func runReplace(cmd *cobra.Command, re *rex.Regex, input []byte) error {
	var out []byte
	if flagAll {
		out = re.ReplaceAll(input, []byte(flagReplace))
	} else {
		out = re.Replace(input, []byte(flagReplace))
	}
	cmd.OutOrStdout().Write(out)
	if len(out) == 0 || out[len(out)-1] != '\n' {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if !re.Match(input) {
		os.Exit(1)
	}
	return nil
}

func runFind(cmd *cobra.Command, re *rex.Regex, input []byte) error {
	w := cmd.OutOrStdout()

	if !flagAll {
		m := re.Find(input)
		if m == nil {
			os.Exit(1)
			return nil
		}
		matchColor.Fprintln(w, string(m))
		return nil
	}

	matches := re.FindAll(input, -1)
	if len(matches) == 0 {
		os.Exit(1)
		return nil
	}
	for _, m := range matches {
		matchColor.Fprintln(w, string(m))
	}
	return nil
}

// readInput reads the haystack from the second positional argument, or
// from stdin when it is omitted.
func readInput(args []string) ([]byte, error) {
	if len(args) == 2 {
		return []byte(args[1]), nil
	}
	r := bufio.NewReader(os.Stdin)
	return io.ReadAll(r)
}

func exitErr(err error) error {
	fmt.Fprintln(os.Stderr, "rex:", err)
	os.Exit(2)
	return nil
}
