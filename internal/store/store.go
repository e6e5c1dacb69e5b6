package store

import (
	"context"
	"errors"
)

// Keys for the two persisted aggregates.
const (
	KeyPatients = "cpro_patients"
	KeyTags     = "cpro_tags"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is a key-value blob store. Writes replace the whole value for a
// key; there are no partial updates or transactions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
