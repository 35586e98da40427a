package conformance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/aldermoss/html5tok/token"
)

var tokenCmpOpts = []cmp.Option{
	cmpopts.IgnoreFields(token.Token{}, "Start", "End"),
}

func TestHTML5LibFixtures(t *testing.T) {
	dir := "../../testdata/html5lib"
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	ran := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		file, err := LoadFile(path)
		require.NoError(t, err, "loading %s", path)

		for _, c := range file.Tests {
			c := c
			t.Run(e.Name()+"/"+c.Description, func(t *testing.T) {
				outcomes, err := RunAll(c)
				require.NoError(t, err)
				for _, o := range outcomes {
					if diff := cmp.Diff(o.Want, o.Got, tokenCmpOpts...); diff != "" {
						t.Errorf("state %q: token mismatch (-want +got):\n%s", o.State, diff)
					}
					wantErrs := make([]errorSummary, len(c.Errors))
					for i, e := range c.Errors {
						wantErrs[i] = errorSummary{Code: string(e.Code), Line: e.Location.Line, Column: e.Location.Column}
					}
					gotErrs := make([]errorSummary, len(o.Errors))
					for i, e := range o.Errors {
						gotErrs[i] = errorSummary{Code: string(e.Code), Line: e.Location.Line, Column: e.Location.Column}
					}
					if diff := cmp.Diff(wantErrs, gotErrs); diff != "" {
						t.Errorf("state %q: error mismatch (-want +got):\n%s", o.State, diff)
					}
				}
				ran++
			})
		}
	}
	require.Greater(t, ran, 0, "no fixtures found in %s", dir)
}

type errorSummary struct {
	Code   string
	Line   int
	Column int
}
