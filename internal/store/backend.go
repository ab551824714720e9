// Package store persists the single user document. A Backend is a plain
// key-to-bytes document store; State owns the decoded document and
// serializes every mutation through it.
package store

import (
	"context"
	"errors"
)

// DefaultKey is the fixed application identifier the document is stored
// under.
const DefaultKey = "nutritionAppData"

// ErrNotFound is returned by Backend.Load when no document exists for key.
var ErrNotFound = errors.New("document not found")

// Backend stores whole documents by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, doc []byte) error
	Ping(ctx context.Context) error
	Close() error
	Name() string
}
