package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/aldermoss/html5tok/internal/conformance"
	"github.com/aldermoss/html5tok/token"
)

var fixturesDir string

func init() {
	fixturesCmd.Flags().StringVar(&fixturesDir, "dir", "testdata/html5lib", "directory of html5lib-style JSON fixture files to run")
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Run a directory of html5lib-style JSON tokenizer fixtures and report pass/fail",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := os.ReadDir(fixturesDir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", fixturesDir, err)
		}

		pass := color.New(color.FgGreen)
		fail := color.New(color.FgRed)

		var total, failed int
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			path := filepath.Join(fixturesDir, e.Name())
			file, err := conformance.LoadFile(path)
			if err != nil {
				return err
			}
			for _, c := range file.Tests {
				total++
				outcomes, err := conformance.RunAll(c)
				if err != nil {
					failed++
					fail.Printf("FAIL %s: %s: %v\n", e.Name(), c.Description, err)
					continue
				}
				if diff := diffOutcomes(c, outcomes); diff != "" {
					failed++
					fail.Printf("FAIL %s: %s\n%s\n", e.Name(), c.Description, diff)
					continue
				}
				pass.Printf("PASS %s: %s\n", e.Name(), c.Description)
			}
		}

		fmt.Printf("%d/%d passed\n", total-failed, total)
		if failed > 0 {
			return fmt.Errorf("%d fixture(s) failed", failed)
		}
		return nil
	},
}

var fixtureCmpOpts = []cmp.Option{
	cmpopts.IgnoreFields(token.Token{}, "Start", "End"),
}

// diffOutcomes renders a non-empty string if any initial-state run of a
// case disagrees with its expected tokens or errors.
func diffOutcomes(c conformance.Case, outcomes []conformance.Outcome) string {
	var wantErrs []string
	for _, e := range c.Errors {
		wantErrs = append(wantErrs, fmt.Sprintf("%s@%d:%d", e.Code, e.Location.Line, e.Location.Column))
	}
	var out string
	for _, o := range outcomes {
		if diff := cmp.Diff(o.Want, o.Got, fixtureCmpOpts...); diff != "" {
			out += fmt.Sprintf("  state %q: token mismatch (-want +got):\n%s", o.State, diff)
		}
		var gotErrs []string
		for _, e := range o.Errors {
			gotErrs = append(gotErrs, e.String())
		}
		if diff := cmp.Diff(wantErrs, gotErrs); diff != "" {
			out += fmt.Sprintf("  state %q: error mismatch (-want +got):\n%s", o.State, diff)
		}
	}
	return out
}
