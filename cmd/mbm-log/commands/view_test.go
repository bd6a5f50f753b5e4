package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

func TestFormatEventAdd(t *testing.T) {
	event := log.Event{
		Timestamp:    baseTime,
		TreeID:       "0b9d6f3e-1111-2222-3333-444455556666",
		Category:     log.CategoryAdd,
		Path:         "arm/elbow",
		TypeName:     "Joint",
		Index:        2,
		SourceTreeID: "prototype",
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-03-04T09:30:00.000000Z",
		"[tree:0b9d6f3e]",
		"ADD",
		"arm/elbow",
		"Type: Joint  Index: 2",
		"Source: prototyp",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestFormatEventRootOmitsIndex(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{Timestamp: baseTime, TreeID: "t", Category: log.CategoryConstruct, Path: "arm", TypeName: "Multibody", Index: -1})
	if strings.Contains(buf.String(), "Index") {
		t.Errorf("root event shows index: %s", buf.String())
	}
}

func TestFormatEventBindAndError(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: baseTime,
		Category:  log.CategoryBind,
		Path:      "arm/massMeasure",
		Bind:      &log.BindEventData{PlacementType: "REAL", Value: "4"},
	})
	if !strings.Contains(buf.String(), "Placement: REAL = 4") {
		t.Errorf("bind output: %s", buf.String())
	}

	buf.Reset()
	formatEvent(&buf, log.Event{
		Timestamp: baseTime,
		Category:  log.CategoryError,
		Path:      "arm",
		Error:     &log.ErrorEventData{Op: "subfeature", Message: "subfeature index out of range"},
	})
	if !strings.Contains(buf.String(), "Op: subfeature") || !strings.Contains(buf.String(), "Message: subfeature index out of range") {
		t.Errorf("error output: %s", buf.String())
	}
}

func TestParseCategoryFlag(t *testing.T) {
	c, err := ParseCategoryFlag("Bind")
	if err != nil || c != log.CategoryBind {
		t.Errorf("ParseCategoryFlag(Bind) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("ParseCategoryFlag(message) should fail")
	}
}

func TestRunView(t *testing.T) {
	path := recordSession(t)

	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{}, &buf); err != nil {
		t.Fatalf("RunView() error = %v", err)
	}
	// construct, 2 mandatory adds, elbow add, bind, error, clone
	if got := strings.Count(buf.String(), "[tree:"); got != 7 {
		t.Errorf("viewed %d events, want 7:\n%s", got, buf.String())
	}

	buf.Reset()
	bind := log.CategoryBind
	if err := RunView(path, ViewFilter{Category: &bind}, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "[tree:"); got != 1 {
		t.Errorf("viewed %d bind events, want 1", got)
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{PathPrefix: "arm/elbow"}, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "[tree:"); got != 1 {
		t.Errorf("viewed %d elbow events, want 1", got)
	}

	buf.Reset()
	if err := RunView(path, ViewFilter{TreeID: "arm-copy-0002"}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "CLONE") || strings.Count(buf.String(), "[tree:") != 1 {
		t.Errorf("tree filter output: %s", buf.String())
	}
}

func TestRunViewMissingFile(t *testing.T) {
	if err := RunView("/nonexistent/file.mbl", ViewFilter{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}
