package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(e Event) { r.events = append(r.events, e) }

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{TreeID: "ignored"})
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{TreeID: "t", Category: CategoryAdd})
	m.Log(Event{TreeID: "t", Category: CategoryClone})

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("got %d and %d events, want 2 each", len(a.events), len(b.events))
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	a := NewSlogAdapter(slog.New(h))

	a.Log(Event{
		TreeID:   "tree-7",
		Category: CategoryBind,
		Path:     "arm/length",
		TypeName: "RealParameter",
		Index:    4,
		Bind:     &BindEventData{PlacementType: "REAL", Value: "0.25"},
	})
	a.Log(Event{
		TreeID:   "tree-7",
		Category: CategoryError,
		Path:     "arm",
		Index:    -1,
		Error:    &ErrorEventData{Op: "add", Message: "boom"},
	})

	out := buf.String()
	for _, want := range []string{
		"tree_id=tree-7",
		"category=BIND",
		"path=arm/length",
		"index=4",
		"placement_type=REAL",
		"value=0.25",
		"level=WARN",
		"op=add",
		"error=boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapterOmitsRootIndex(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(h)).Log(Event{TreeID: "t", Category: CategoryConstruct, Index: -1})

	if strings.Contains(buf.String(), "index=") {
		t.Errorf("root event should not carry an index: %s", buf.String())
	}
}
