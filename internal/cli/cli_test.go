package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uoon-dev/sancho/internal/trace"
)

var traceDir = filepath.Join("..", "trace", "testdata")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("1.2.3", "abc", "today")

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--log-level", "disabled"))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func decodeEvents(t *testing.T, out string) []trace.Event {
	t.Helper()
	var events []trace.Event
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var ev trace.Event
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		events = append(events, ev)
	}
	return events
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sancho 1.2.3")
	assert.Contains(t, out, "commit: abc")
}

func TestReplay_Trace(t *testing.T) {
	out, err := execute(t, "replay", filepath.Join(traceDir, "left_distance_close.jsonl"))
	require.NoError(t, err)

	events := decodeEvents(t, out)
	require.Len(t, events, 12)
	assert.Equal(t, trace.EventClosed, events[8].Type)
	assert.Equal(t, 0.1, events[8].Velocity)
	assert.False(t, *events[11].Open)
}

func TestReplay_MultipleFilesKeepOrder(t *testing.T) {
	first := filepath.Join(traceDir, "left_distance_close.jsonl")
	second := filepath.Join(traceDir, "overlay_click.jsonl")

	out, err := execute(t, "replay", first, second)
	require.NoError(t, err)

	i := strings.Index(out, "# "+first)
	j := strings.Index(out, "# "+second)
	require.GreaterOrEqual(t, i, 0)
	require.Greater(t, j, i)
}

func TestReplay_Flags(t *testing.T) {
	out, err := execute(t, "replay", "--edge", "right", "--width", "200", "--open=false",
		filepath.Join(traceDir, "overlay_click.jsonl"))
	require.NoError(t, err)

	events := decodeEvents(t, out)
	require.NotEmpty(t, events)
	assert.Equal(t, 400.0, events[0].Offset.X, "unmeasured closed right sheet sits at the default extent")
}

func TestReplay_Errors(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(traceDir, "malformed.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	_, err = execute(t, "replay", "--edge", "middle", filepath.Join(traceDir, "overlay_click.jsonl"))
	assert.Error(t, err)

	_, err = execute(t, "replay", "--plot", filepath.Join(t.TempDir(), "x.svg"),
		filepath.Join(traceDir, "overlay_click.jsonl"),
		filepath.Join(traceDir, "left_distance_close.jsonl"))
	assert.Error(t, err)

	_, err = execute(t, "replay")
	assert.Error(t, err)
}

func TestReplay_Plot(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "timeline.svg")
	_, err := execute(t, "replay", "--plot", plot, filepath.Join(traceDir, "left_distance_close.jsonl"))
	require.NoError(t, err)

	data, err := os.ReadFile(plot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestReplay_Scenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(traceDir, "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	out, err := execute(t, append([]string{"replay", "--scenario"}, files...)...)
	require.NoError(t, err)
	assert.Equal(t, len(files), strings.Count(out, "PASS "))
	assert.NotContains(t, out, "FAIL")
}

func TestReplay_FailingScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: escape does not close
edge: top
open: true
steps:
  - type: escape
expect:
  open: true
`), 0o644))

	out, err := execute(t, "replay", "--scenario", path)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL escape does not close")
	assert.Contains(t, out, "open: want true, got false")
}

func TestConfigSchema(t *testing.T) {
	out, err := execute(t, "config", "schema")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "$defs")
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet:\n  edge: top\n"), 0o644))

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "edge: top")
	assert.Contains(t, out, "overlay_strength: 0.6")
}
