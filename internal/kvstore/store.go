// Package kvstore provides the key-value persistence the tracker writes
// profiles and day logs to. Values are opaque byte strings (JSON in practice).
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a get/set/remove key-value store. Remove of a missing key is not
// an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string
	SQLitePath    string
	PostgresURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the Store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	// Each backend is assigned only on success so a failed open never
	// yields a non-nil interface wrapping a nil pointer.
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		var s *SQLite
		if s, err = OpenSQLite(opts.SQLitePath); err == nil {
			store = s
		}
	case DriverPostgres:
		var p *Postgres
		if p, err = OpenPostgres(ctx, opts.PostgresURL); err == nil {
			store = p
		}
	case DriverRedis:
		var r *Redis
		if r, err = OpenRedis(ctx, RedisConfig{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}); err == nil {
			store = r
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q: must be one of memory, sqlite, postgres, redis", opts.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
