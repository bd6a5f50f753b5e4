// Package commands implements the mbm-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	TreeID     string
	Category   *log.Category
	PathPrefix string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [tree:id] CATEGORY path
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	treeID := shortenTreeID(event.TreeID)

	fmt.Fprintf(w, "%s [tree:%s] %-9s %s\n", ts, treeID, event.Category.String(), event.Path)

	if event.TypeName != "" {
		fmt.Fprintf(w, "  Type: %s", event.TypeName)
		if event.Index >= 0 {
			fmt.Fprintf(w, "  Index: %d", event.Index)
		}
		fmt.Fprintln(w)
	}
	if event.SourceTreeID != "" {
		fmt.Fprintf(w, "  Source: %s\n", shortenTreeID(event.SourceTreeID))
	}

	// Type-specific details
	switch {
	case event.Bind != nil:
		fmt.Fprintf(w, "  Placement: %s = %s\n", event.Bind.PlacementType, event.Bind.Value)
	case event.Error != nil:
		fmt.Fprintf(w, "  Op: %s\n", event.Error.Op)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenTreeID returns the first 8 characters of the tree ID.
func shortenTreeID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be construct, add, clone, bind, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		TreeID:     filter.TreeID,
		Category:   filter.Category,
		PathPrefix: strings.TrimSpace(filter.PathPrefix),
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
