package trace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uoon-dev/sancho/internal/sheet"
)

func loadTrace(t *testing.T, name string) []Record {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	records, err := Decode(f)
	require.NoError(t, err)
	return records
}

func replay(t *testing.T, opts Options, records []Record) ([]Event, Result) {
	t.Helper()
	r := NewReplayer(context.Background(), opts)
	c := &Collector{}
	r.AddEventHandler(c)
	require.NoError(t, r.Run(records))
	return c.Events(), r.Result()
}

func TestDecode(t *testing.T) {
	records := loadTrace(t, "left_distance_close.jsonl")
	require.Len(t, records, 4, "blank lines are skipped")

	assert.Equal(t, RecordMeasure, records[0].Type)
	assert.Equal(t, sheet.Extent{Width: 300, Height: 600}, records[0].Extent())

	release := records[3]
	assert.Equal(t, RecordGesture, release.Type)
	assert.False(t, release.Down)
	assert.Equal(t, 0.1, release.Velocity)
	assert.Equal(t, sheet.Point{X: -160}, release.Delta)
	assert.Equal(t, sheet.Point{X: 250, Y: 10}, release.Initial)
}

func TestDecode_Malformed(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "malformed.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	_, err = Decode(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "teleport")

	_, err = Decode(strings.NewReader("{not json}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestEncodeDecodeRecords(t *testing.T) {
	records := loadTrace(t, "left_distance_close.jsonl")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, records))

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestReplayer_DistanceClose(t *testing.T) {
	events, res := replay(t, DefaultOptions(), loadTrace(t, "left_distance_close.jsonl"))

	types := make([]EventType, len(events))
	for i, ev := range events {
		assert.Equal(t, i, ev.Seq)
		types[i] = ev.Type
	}
	assert.Equal(t, []EventType{
		EventPosition, EventOpacity, // controller created
		EventPosition,               // first measurement snap
		EventPosition, EventOpacity, // drag -80
		EventPosition, EventOpacity, // drag -160
		EventPosition, EventClosed, EventPosition, EventOpacity, EventState, // release
	}, types)

	assert.Equal(t, -1, events[0].Step)
	assert.True(t, events[2].Immediate)
	assert.Equal(t, 0, events[2].Step)

	assert.InDelta(t, 1-80.0/300, *events[4].Opacity, 1e-9)
	assert.Equal(t, sheet.Offset{X: -160}, *events[5].Offset)

	releasePos := events[7]
	assert.Equal(t, sheet.Offset{X: -160}, *releasePos.Offset)
	assert.False(t, releasePos.Immediate)
	assert.Equal(t, 0.1, releasePos.Velocity)

	assert.Equal(t, 0.1, events[8].Velocity)

	settle := events[9]
	assert.Equal(t, sheet.Offset{X: -300}, *settle.Offset)
	assert.Equal(t, 0.1, settle.Velocity)
	assert.Equal(t, 0.0, *events[10].Opacity)
	assert.False(t, *events[11].Open)

	assert.True(t, res.Closed())
	assert.Equal(t, []sheet.ClosedEvent{{Velocity: 0.1}}, res.Closes)
	assert.Equal(t, sheet.Offset{X: -300}, res.Target)
	assert.False(t, res.Open)
	assert.Equal(t, len(events), res.Events)
}

func TestReplayer_IgnoredCloseStaysAtDragOffset(t *testing.T) {
	opts := DefaultOptions()
	opts.HonorClose = false

	events, res := replay(t, opts, loadTrace(t, "left_distance_close.jsonl"))

	last := events[len(events)-1]
	assert.Equal(t, EventClosed, last.Type)
	assert.True(t, res.Closed())
	assert.True(t, res.Open)
	assert.Equal(t, sheet.Offset{X: -160}, res.Target)
}

func TestReplayer_OverlayClick(t *testing.T) {
	opts := DefaultOptions()
	opts.Open = false

	events, res := replay(t, opts, loadTrace(t, "overlay_click.jsonl"))

	assert.False(t, res.Closed(), "a click on a closed sheet and a dragged click do nothing")
	assert.True(t, res.Open)

	var states []bool
	for _, ev := range events {
		if ev.Type == EventState {
			states = append(states, *ev.Open)
		}
	}
	assert.Equal(t, []bool{true}, states)
}

func TestReplayer_Escape(t *testing.T) {
	records := []Record{
		{Type: RecordMeasure, Width: 200, Height: 500},
		{Type: RecordEscape},
	}

	_, res := replay(t, DefaultOptions(), records)
	assert.Equal(t, []sheet.ClosedEvent{{}}, res.Closes)
	assert.False(t, res.Open)
	assert.Equal(t, sheet.Offset{X: -200}, res.Target)

	opts := DefaultOptions()
	opts.CloseOnEscape = false
	_, res = replay(t, opts, records)
	assert.False(t, res.Closed())
	assert.True(t, res.Open)
}

func TestReplayer_InitialExtent(t *testing.T) {
	opts := DefaultOptions()
	opts.Edge = sheet.EdgeBottom
	opts.Open = false
	opts.Extent = sheet.Extent{Width: 80, Height: 12}

	events, res := replay(t, opts, nil)
	require.Len(t, events, 3)
	assert.Equal(t, sheet.Offset{Y: 12}, *events[2].Offset)
	assert.Equal(t, sheet.Offset{Y: 12}, res.Target)
}

func TestReplayer_HandlerOrder(t *testing.T) {
	r := NewReplayer(context.Background(), DefaultOptions())

	var order []string
	r.AddEventHandler(EventHandlerFunc(func(ev Event) { order = append(order, "a:"+string(ev.Type)) }))
	r.AddEventHandler(EventHandlerFunc(func(ev Event) { order = append(order, "b:"+string(ev.Type)) }))

	require.NoError(t, r.Apply(Record{Type: RecordClose}))
	assert.Equal(t, []string{
		"a:position", "b:position",
		"a:opacity", "b:opacity",
		"a:position", "b:position",
		"a:opacity", "b:opacity",
		"a:state", "b:state",
	}, order)
}

func TestReplayer_UnknownRecord(t *testing.T) {
	r := NewReplayer(context.Background(), DefaultOptions())
	err := r.Apply(Record{Type: "warp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warp")
}

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			f, err := os.Open(file)
			require.NoError(t, err)
			defer f.Close()

			s, err := LoadScenario(f)
			require.NoError(t, err)

			res, err := s.Run(context.Background())
			require.NoError(t, err)
			assert.Empty(t, s.Check(res), s.Name)
		})
	}
}

func TestScenario_CheckReportsFailures(t *testing.T) {
	closed, open := true, true
	velocity, target := 0.3, -10.0
	s := &Scenario{
		Edge: "left",
		Expect: Expect{
			Closed:   &closed,
			Velocity: &velocity,
			Target:   &target,
			Open:     &open,
		},
	}

	failures := s.Check(Result{Target: sheet.Offset{X: -300}})
	require.Len(t, failures, 4)
	assert.Contains(t, failures[0], "closed")
	assert.Contains(t, failures[1], "no close")
	assert.Contains(t, failures[2], "target")
	assert.Contains(t, failures[3], "open")
}

func TestLoadScenario_Invalid(t *testing.T) {
	_, err := LoadScenario(strings.NewReader("name: x\nedge: sideways\n"))
	assert.Error(t, err)

	_, err = LoadScenario(strings.NewReader("name: x\nedge: left\nsteps:\n  - type: jump\n"))
	assert.Error(t, err)

	_, err = LoadScenario(strings.NewReader("name: x\nedge: left\nbogus: 1\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestPlot(t *testing.T) {
	events, _ := replay(t, DefaultOptions(), loadTrace(t, "left_distance_close.jsonl"))

	var buf bytes.Buffer
	require.NoError(t, Plot(&buf, sheet.EdgeLeft, events))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "stroke:#FF5555", "close marker")
	assert.Contains(t, out, "</svg>")

	assert.Error(t, Plot(&buf, sheet.EdgeLeft, nil))
}
