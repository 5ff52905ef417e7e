// Package slot provides named key-value slots that hold serialized history.
package slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Slot is a named blob store. Put always overwrites the whole value.
type Slot interface {
	// Get returns the stored value; ok is false when the slot has never been written.
	Get(ctx context.Context, name string) (data []byte, ok bool, err error)
	// Put replaces the stored value.
	Put(ctx context.Context, name string, data []byte) error
	// Close releases backend resources.
	Close() error
}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown slot backend")

// ErrInvalidName is returned for slot names that cannot be stored.
var ErrInvalidName = errors.New("invalid slot name")

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
