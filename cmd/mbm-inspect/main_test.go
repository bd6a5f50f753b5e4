package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/inspect"
	"github.com/multibody-modeling/mbm-go/pkg/log"
	"github.com/multibody-modeling/mbm-go/pkg/modeldef"
)

const armModel = "../../pkg/modeldef/testdata/arm.yaml"

func TestShow(t *testing.T) {
	m, err := modeldef.LoadModel(armModel)
	if err != nil {
		t.Fatal(err)
	}
	insp := inspect.NewInspector(m.Root, m.Binder)
	fmtr := inspect.NewFormatter()

	var buf bytes.Buffer
	if err := show(&buf, fmtr, insp, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Tree ") {
		t.Errorf("show() output = %q", out)
	}
	for _, want := range []string{"bicep : RigidBody", "forearm : RigidBody", "elbow : Joint(PIN)", "gain : RealParameter  REAL = 0.75"} {
		if !strings.Contains(out, want) {
			t.Errorf("show() output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := show(&buf, fmtr, insp, "arm/forearm"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "forearm : RigidBody") || strings.Contains(buf.String(), "bicep") {
		t.Errorf("show(arm/forearm) output = %q", buf.String())
	}

	if err := show(&buf, fmtr, insp, "arm/leg"); !errors.Is(err, inspect.ErrFeatureNotFound) {
		t.Errorf("show(arm/leg) error = %v", err)
	}
}

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if setupLogging(level) == nil {
			t.Errorf("setupLogging(%q) = nil", level)
		}
	}
}

func readEvents(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	events, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return events
}

func TestFailedBuildFlushesEventLog(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "collide.yaml")
	err := os.WriteFile(def, []byte(`
version: "1.0"
root:
  name: arm
  kind: RigidBody
  subfeatures:
    - name: massMeasure
      kind: RealMeasure
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	eventLog := filepath.Join(dir, "collide.mbl")

	var out bytes.Buffer
	err = runShow([]string{"-event-log", eventLog, def}, &out)
	if !errors.Is(err, feature.ErrNameCollision) {
		t.Fatalf("runShow() error = %v, want ErrNameCollision", err)
	}
	if out.Len() != 0 {
		t.Errorf("runShow() printed %q on failure", out.String())
	}

	var failures []log.Event
	for _, e := range readEvents(t, eventLog) {
		if e.Category == log.CategoryError {
			failures = append(failures, e)
		}
	}
	if len(failures) != 1 {
		t.Fatalf("got %d ERROR events, want 1", len(failures))
	}
	e := failures[0]
	if e.Path != "arm" || e.Error == nil || e.Error.Op != "add" {
		t.Errorf("ERROR event = %+v", e)
	}
	if e.Error != nil && !strings.Contains(e.Error.Message, "massMeasure") {
		t.Errorf("ERROR message = %q", e.Error.Message)
	}
}

func TestCheckReportsUnplaced(t *testing.T) {
	eventLog := filepath.Join(t.TempDir(), "arm.mbl")

	var out bytes.Buffer
	err := runCheck([]string{"-event-log", eventLog, armModel}, &out)
	if !errors.Is(err, errUnplaced) {
		t.Fatalf("runCheck() error = %v, want errUnplaced", err)
	}
	if !strings.Contains(out.String(), "unplaced: ") || !strings.Contains(out.String(), "arm/forearm") {
		t.Errorf("runCheck() output = %q", out.String())
	}

	var binds int
	for _, e := range readEvents(t, eventLog) {
		if e.Category == log.CategoryBind {
			binds++
		}
	}
	if binds == 0 {
		t.Error("event log has no BIND events")
	}
}
