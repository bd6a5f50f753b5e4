package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/multibody-modeling/mbm-go/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *log.Reader, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSON rendering of an event, with names instead of
// numeric codes.
type jsonEvent struct {
	Timestamp    string              `json:"timestamp"`
	TreeID       string              `json:"tree_id"`
	Category     string              `json:"category"`
	Path         string              `json:"path,omitempty"`
	TypeName     string              `json:"type,omitempty"`
	Index        int                 `json:"index"`
	SourceTreeID string              `json:"source_tree_id,omitempty"`
	Bind         *log.BindEventData  `json:"bind,omitempty"`
	Error        *log.ErrorEventData `json:"error,omitempty"`
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		je := jsonEvent{
			Timestamp:    event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			TreeID:       event.TreeID,
			Category:     event.Category.String(),
			Path:         event.Path,
			TypeName:     event.TypeName,
			Index:        event.Index,
			SourceTreeID: event.SourceTreeID,
			Bind:         event.Bind,
			Error:        event.Error,
		}
		if err := encoder.Encode(je); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "tree_id", "category", "path", "type", "index", "source_tree_id", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		detail := ""
		switch {
		case event.Bind != nil:
			detail = event.Bind.PlacementType + "=" + event.Bind.Value
		case event.Error != nil:
			detail = event.Error.Op + ": " + event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.TreeID,
			event.Category.String(),
			event.Path,
			event.TypeName,
			strconv.Itoa(event.Index),
			event.SourceTreeID,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}
