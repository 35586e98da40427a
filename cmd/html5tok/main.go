// Command html5tok is a small CLI wrapper around the html5tok library:
// tokenize a file for manual inspection, or run a directory of
// html5lib-style JSON fixtures and report pass/fail. The library itself
// needs no CLI (spec.md §6) — this exists because every other example
// repo in the pack ships a cmd/ entry point alongside its library
// (_examples/dphaener-conduit/cmd/conduit, _examples/distribution-distribution/main).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "html5tok",
		Short: "Tokenize HTML5 input and inspect the result",
		Long: `html5tok drives the WHATWG HTML5 tokenizer state machine over a
file or standard input and prints the resulting token and parse-error streams.`,
	}

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(fixturesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
