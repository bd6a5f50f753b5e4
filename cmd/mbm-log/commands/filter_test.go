package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

func TestRunFilter(t *testing.T) {
	path := writeLog(t,
		log.Event{Timestamp: baseTime, TreeID: "a", Category: log.CategoryConstruct, Path: "arm", Index: -1},
		log.Event{Timestamp: baseTime.Add(time.Minute), TreeID: "a", Category: log.CategoryAdd, Path: "arm/bicep", Index: 2},
		log.Event{Timestamp: baseTime.Add(2 * time.Minute), TreeID: "b", Category: log.CategoryAdd, Path: "leg/knee", Index: 2},
		log.Event{Timestamp: baseTime.Add(3 * time.Minute), TreeID: "a", Category: log.CategoryBind, Path: "arm/bicep", Index: 2},
	)

	tests := []struct {
		name string
		opts FilterOptions
		want int
	}{
		{"all", FilterOptions{}, 4},
		{"tree", FilterOptions{TreeID: "a"}, 3},
		{"category", FilterOptions{Category: "add"}, 2},
		{"path", FilterOptions{PathPrefix: "arm/"}, 2},
		{"time window", FilterOptions{TimeStart: "2026-03-04T09:31:00Z", TimeEnd: "2026-03-04T09:33:00Z"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(t.TempDir(), "out.mbl")
			count, err := RunFilter(path, tt.opts)
			if err != nil {
				t.Fatalf("RunFilter() error = %v", err)
			}
			if count != tt.want {
				t.Errorf("count = %d, want %d", count, tt.want)
			}

			reader, err := log.NewReader(tt.opts.Output)
			if err != nil {
				t.Fatal(err)
			}
			defer reader.Close()
			events, err := reader.ReadAll()
			if err != nil {
				t.Fatal(err)
			}
			if len(events) != tt.want {
				t.Errorf("output holds %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := writeLog(t)
	out := filepath.Join(t.TempDir(), "out.mbl")

	for _, opts := range []FilterOptions{
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "tomorrow"},
		{Output: out, Category: "message"},
	} {
		if _, err := RunFilter(path, opts); err == nil {
			t.Errorf("RunFilter(%+v) should fail", opts)
		}
	}
}
