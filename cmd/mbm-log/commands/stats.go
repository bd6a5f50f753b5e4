package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByType     map[string]int
	Trees            map[string]*TreeStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// TreeStats holds statistics for a single feature tree.
type TreeStats struct {
	FirstSeen  time.Time
	LastSeen   time.Time
	Events     int
	Root       string
	Features   int
	Bindings   int
	ClonedFrom string
}

// CollectStats reads every event of the log file into a Stats.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsByType:     make(map[string]int),
		Trees:            make(map[string]*TreeStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track tree stats
		tree, ok := stats.Trees[event.TreeID]
		if !ok {
			tree = &TreeStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Trees[event.TreeID] = tree
		}
		tree.Events++
		if event.Timestamp.After(tree.LastSeen) {
			tree.LastSeen = event.Timestamp
		}

		switch event.Category {
		case log.CategoryConstruct:
			tree.Root = event.Path
			tree.Features++
			stats.EventsByType[event.TypeName]++
		case log.CategoryClone:
			tree.Root = event.Path
			tree.ClonedFrom = event.SourceTreeID
		case log.CategoryAdd:
			tree.Features++
			stats.EventsByType[event.TypeName]++
		case log.CategoryBind:
			tree.Bindings++
		case log.CategoryError:
			stats.Errors++
		}
	}

	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Model Event Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for cat := log.CategoryConstruct; cat <= log.CategoryError; cat++ {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Features by type
	if len(stats.EventsByType) > 0 {
		fmt.Fprintln(w, "Features by Type:")
		types := make([]string, 0, len(stats.EventsByType))
		for name := range stats.EventsByType {
			types = append(types, name)
		}
		sort.Strings(types)
		for _, name := range types {
			fmt.Fprintf(w, "  %-16s %d\n", name+":", stats.EventsByType[name])
		}
		fmt.Fprintln(w)
	}

	// Trees
	fmt.Fprintf(w, "Trees: %d\n", len(stats.Trees))
	if len(stats.Trees) > 0 {
		// Sort by first seen time
		type treeInfo struct {
			id    string
			stats *TreeStats
		}
		trees := make([]treeInfo, 0, len(stats.Trees))
		for id, ts := range stats.Trees {
			trees = append(trees, treeInfo{id, ts})
		}
		sort.Slice(trees, func(i, j int) bool {
			return trees[i].stats.FirstSeen.Before(trees[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, t := range trees {
			fmt.Fprintf(w, "  [%s] %s: %d events, %d features, %d bindings\n",
				shortenTreeID(t.id), t.stats.Root, t.stats.Events, t.stats.Features, t.stats.Bindings)
			if t.stats.ClonedFrom != "" {
				fmt.Fprintf(w, "           Cloned from: %s\n", shortenTreeID(t.stats.ClonedFrom))
			}
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
