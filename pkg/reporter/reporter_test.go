package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/diff"
	"github.com/yaklabco/gomdfmt/pkg/format"
	"github.com/yaklabco/gomdfmt/pkg/reporter"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

func outcome(path, original, formatted string) runner.FileOutcome {
	res := &format.PipelineResult{
		FileResult: &format.FileResult{
			Path:      path,
			Original:  []byte(original),
			Formatted: []byte(formatted),
			Changed:   original != formatted,
		},
		Path: path,
	}
	if original != formatted {
		res.Diff = diff.Generate(path, []byte(original), []byte(formatted))
	}
	return runner.FileOutcome{Path: path, Result: res}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcome("/work/a.md", "* one\n", "- one\n"),
			outcome("/work/b.md", "ok\n", "ok\n"),
			{Path: "/work/c.md", Error: errors.New("file not found")},
		},
		Stats: runner.Stats{FilesDiscovered: 3, FilesProcessed: 2, FilesChanged: 1, FilesErrored: 1},
	}
}

func report(t *testing.T, opts reporter.Options) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = "/work"

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return buf.String(), count
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true})

	assert.Equal(t, 1, count)
	assert.Equal(t,
		"a.md: would reformat\n"+
			"c.md: error (file not found)\n"+
			"1 file would be reformatted, 1 file unchanged, 1 failed\n",
		out)
}

func TestTextReporter_VerboseWrite(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.Options{Format: reporter.FormatText, Verbose: true, Write: true})

	assert.Contains(t, out, "a.md: formatted\n")
	assert.Contains(t, out, "b.md: unchanged\n")
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true})

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "diff --git a/a.md b/a.md\n--- a/a.md\n+++ b/a.md\n@@ -1,1 +1,1 @@\n-* one\n+- one\n")
	assert.Contains(t, out, "c.md: error (file not found)")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
	assert.NotContains(t, out, "b.md")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatJSON})
	assert.Equal(t, 1, count)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "a.md", decoded.Files[0].Path)
	assert.Equal(t, "would reformat", decoded.Files[0].Status)
	assert.True(t, decoded.Files[0].Changed)
	assert.Equal(t, 1, decoded.Files[0].Additions)
	assert.Equal(t, "unchanged", decoded.Files[1].Status)
	assert.Equal(t, "file not found", decoded.Files[2].Error)
	assert.Equal(t, 1, decoded.Summary.FilesChanged)
	assert.Equal(t, 1, decoded.Summary.FilesErrored)
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true}).
		Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSummary, TermWidth: 80})

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "would reformat")
	assert.Contains(t, out, "Files checked:     2")
	assert.NotContains(t, out, "b.md")
}
