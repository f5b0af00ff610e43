// Package store persists per-run snapshots so first-seen timestamps survive
// across rebuilds.
package store

import (
	"context"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// SnapshotStore carries observation timestamps between runs. The dataset is
// rebuilt from scratch every run; the snapshot is the only state threaded
// through.
type SnapshotStore interface {
	// PriorFirstSeen returns the first-seen timestamp recorded for each
	// slug in previous runs.
	PriorFirstSeen(ctx context.Context) (map[string]string, error)

	// SaveSnapshot upserts observation timestamps for the final canonical
	// set and records a build row with the run's merge stats.
	SaveSnapshot(ctx context.Context, companies []model.Company, stats model.MergeStats) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
