// Package store persists charts submitted to the HTTP API.
//
// A [Chart] is a schedule plus the pipeline options it should be drawn
// with. Artifacts are not stored; they are rendered on demand and cached by
// the pipeline, so a stored chart stays small and renders stay
// reproducible.
//
// Implementations:
//   - [MemoryStore]: in-process, for development and tests
//   - [FileStore]: one JSON file per chart, for single-host deployments
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// All implementations return NOT_FOUND (see pkg/errors) for unknown IDs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/pipeline"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 50

// Chart is a stored schedule with its render options.
type Chart struct {
	ID           string            `json:"id" bson:"_id"`
	CreatedAt    time.Time         `json:"created_at" bson:"created_at"`
	ScheduleHash string            `json:"schedule_hash" bson:"schedule_hash"`
	Options      pipeline.Options  `json:"options" bson:"options"`
	Schedule     schedule.Schedule `json:"schedule" bson:"schedule"`
}

// NewChart returns a chart with a fresh ID.
func NewChart(s schedule.Schedule, opts pipeline.Options) (*Chart, error) {
	hash, err := pipeline.HashSchedule(s)
	if err != nil {
		return nil, err
	}
	opts.Logger = nil
	return &Chart{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		ScheduleHash: hash,
		Options:      opts,
		Schedule:     s,
	}, nil
}

// Store persists charts.
type Store interface {
	// Save inserts or replaces c.
	Save(ctx context.Context, c *Chart) error

	// Get returns the chart with the given ID.
	Get(ctx context.Context, id string) (*Chart, error)

	// List returns up to limit charts, newest first. A limit <= 0 means
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Chart, error)

	// Delete removes the chart with the given ID.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}

// ValidateID checks that id is a chart ID. IDs are UUIDs, which also keeps
// them safe to use as file names.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeNotFound, "chart %q not found", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "chart %q not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
