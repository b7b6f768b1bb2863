// Package badgerkv stores materials and suppliers in an embedded BadgerDB.
// It is the default backend for the single-device deployment: one process,
// one writer, data on local disk.
package badgerkv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"lumbertrace/pkg/logger"
)

// Config holds database settings.
type Config struct {
	// Path is the data directory. Required unless InMemory.
	Path string

	// InMemory keeps everything in RAM. Used by tests and demos.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// GCInterval between value log GC runs. Zero disables GC.
	GCInterval time.Duration

	// GCDiscardRatio passed to RunValueLogGC.
	GCDiscardRatio float64

	Logger *logger.Logger
}

// DefaultConfig returns settings for a persistent database at path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns settings for a throwaway database.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// DB is an open database with its GC runner.
type DB struct {
	db       *badger.DB
	gcRunner *gcRunner
}

// Open opens the database described by cfg.
func Open(cfg Config) (*DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger: path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(cfg.Logger.WithComponent("badger").AsPrintf())
	} else {
		opts = opts.WithLogger(nil)
	}

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	d := &DB{db: bdb}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		d.gcRunner = newGCRunner(bdb, cfg.GCInterval, cfg.GCDiscardRatio, cfg.Logger)
		d.gcRunner.start()
	}
	return d, nil
}

// Close stops GC and closes the database.
func (d *DB) Close() error {
	if d.gcRunner != nil {
		d.gcRunner.stop()
	}
	return d.db.Close()
}

// Ping reports whether the database accepts reads.
func (d *DB) Ping(ctx context.Context) error {
	if d.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return d.db.View(func(txn *badger.Txn) error { return nil })
}

// Wipe removes every key.
func (d *DB) Wipe(ctx context.Context) error {
	if err := d.db.DropAll(); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	logger.Warn(ctx, "badger store wiped")
	return nil
}

type gcRunner struct {
	db       *badger.DB
	interval time.Duration
	ratio    float64
	log      *logger.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newGCRunner(db *badger.DB, interval time.Duration, ratio float64, log *logger.Logger) *gcRunner {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &gcRunner{
		db:       db,
		interval: interval,
		ratio:    ratio,
		log:      log.WithComponent("badger-gc"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (r *gcRunner) start() {
	go r.run()
}

func (r *gcRunner) stop() {
	close(r.stopCh)
	<-r.doneCh
}

func (r *gcRunner) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			// One call rewrites at most one file; loop until nothing is left.
			for {
				err := r.db.RunValueLogGC(r.ratio)
				if err == nil {
					continue
				}
				if !errors.Is(err, badger.ErrNoRewrite) {
					r.log.Warnw("value log GC failed", "error", err)
				}
				break
			}
		}
	}
}
