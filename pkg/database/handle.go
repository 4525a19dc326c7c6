package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Handle is the connected database plus the index plan it should carry.
type Handle struct {
	*mongo.Database
}

// Current wraps the database opened by InitDB.
func Current() *Handle {
	return &Handle{Database: DB}
}

// EnsureIndexes creates whatever IndexPlan lists; existing indexes are left alone.
func (h *Handle) EnsureIndexes(ctx context.Context) error {
	return CreateIndexes(ctx, h.Database)
}
