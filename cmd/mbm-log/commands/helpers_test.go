package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/multibody-modeling/mbm-go/pkg/feature"
	"github.com/multibody-modeling/mbm-go/pkg/kinematics"
	"github.com/multibody-modeling/mbm-go/pkg/log"
	"github.com/multibody-modeling/mbm-go/pkg/placement"
)

var baseTime = time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

// writeLog writes events to a fresh log file and returns its path.
func writeLog(t *testing.T, events ...log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.mbl")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// recordSession builds a small model against a file logger, the way
// mbm-inspect does, and returns the log path.
func recordSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.mbl")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}

	arm := feature.NewMultibody("arm", feature.WithLogger(logger), feature.WithTreeID("arm-tree-0001"))
	if _, err := arm.AddSubfeatureLike(feature.NewJoint("j", kinematics.Pin).Feature, "elbow"); err != nil {
		t.Fatal(err)
	}
	mass, _ := arm.MassMeasure()
	if err := placement.NewBinder().Bind(mass.Feature, placement.Real(4)); err != nil {
		t.Fatal(err)
	}
	_, _ = arm.Subfeature(10)
	arm.Clone(feature.WithTreeID("arm-copy-0002"))

	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}
