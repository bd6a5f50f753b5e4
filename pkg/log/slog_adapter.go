package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes model events to an slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Error events are logged at Warn
// level, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("tree_id", event.TreeID),
		slog.String("category", event.Category.String()),
	}

	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.TypeName != "" {
		attrs = append(attrs, slog.String("type", event.TypeName))
	}
	if event.Index >= 0 {
		attrs = append(attrs, slog.Int("index", event.Index))
	}
	if event.SourceTreeID != "" {
		attrs = append(attrs, slog.String("source_tree_id", event.SourceTreeID))
	}

	level := slog.LevelDebug
	switch {
	case event.Bind != nil:
		attrs = append(attrs, slog.String("placement_type", event.Bind.PlacementType))
		if event.Bind.Value != "" {
			attrs = append(attrs, slog.String("value", event.Bind.Value))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("op", event.Error.Op),
			slog.String("error", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "model", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
