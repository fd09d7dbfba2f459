// Package analytics records page views and aggregates them into per-path
// counters.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"folio/types"
)

// Tracker records a single page view.
type Tracker interface {
	Track(ctx context.Context, view types.PageView) error
}

// Counter reads aggregated view totals.
type Counter interface {
	Count(ctx context.Context, path string) (int64, error)
	Top(ctx context.Context, limit int) ([]types.PathCount, error)
}

// NewPageView stamps a view of path with a fresh ID and the current time.
func NewPageView(path, referrer string) types.PageView {
	return types.PageView{
		ID:       uuid.NewString(),
		Path:     NormalizePath(path),
		Referrer: NormalizePath(referrer),
		ViewedAt: time.Now().UTC(),
	}
}

// LogTracker only logs views. It is used when no backend is configured.
type LogTracker struct {
	Logger *slog.Logger
}

func (l LogTracker) Track(ctx context.Context, view types.PageView) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.DebugContext(ctx, "page view", "id", view.ID, "path", view.Path)
	return nil
}
