package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ibam-church/membership/initializers"
)

// LoadSnapshot reads the five membership tables inside one read-only
// transaction so the dashboard never mixes rows from different moments.
func LoadSnapshot(ctx context.Context, db *goqu.Database) (Snapshot, error) {
	var snap Snapshot

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return snap, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.From("people").Order(goqu.C("created_at").Desc()).ScanStructsContext(ctx, &snap.People); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load people: %w", err)
	}
	if err := tx.From("ministries").Order(goqu.C("name").Asc()).ScanStructsContext(ctx, &snap.Ministries); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load ministries: %w", err)
	}
	if err := tx.From("cells").Order(goqu.C("name").Asc()).ScanStructsContext(ctx, &snap.Cells); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load cells: %w", err)
	}
	if err := tx.From("people_ministries").
		Order(goqu.C("person_id").Asc(), goqu.C("ministry_id").Asc()).
		ScanStructsContext(ctx, &snap.PeopleMinistries); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load people_ministries: %w", err)
	}
	if err := tx.From("people_cells").
		Order(goqu.C("person_id").Asc(), goqu.C("cell_id").Asc()).
		ScanStructsContext(ctx, &snap.PeopleCells); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load people_cells: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to close snapshot transaction: %w", err)
	}
	snap.LoadedAt = time.Now()
	return snap, nil
}

type SnapshotLoader func(ctx context.Context) (Snapshot, error)

// DirectoryCache keeps the last aggregated snapshot. A refresh replaces it
// whole; a failed refresh keeps the previous one. Concurrent refreshes
// share a single database read.
type DirectoryCache struct {
	load  SnapshotLoader
	group singleflight.Group

	mu      sync.RWMutex
	current *Membership
}

func NewDirectoryCache(load SnapshotLoader) *DirectoryCache {
	return &DirectoryCache{load: load}
}

// Current returns the cached aggregate, loading it on first use.
func (c *DirectoryCache) Current(ctx context.Context) (*Membership, error) {
	c.mu.RLock()
	m := c.current
	c.mu.RUnlock()
	if m != nil {
		return m, nil
	}
	return c.Refresh(ctx)
}

func (c *DirectoryCache) Refresh(ctx context.Context) (*Membership, error) {
	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		snap, err := c.load(ctx)
		if err != nil {
			snapshotRefreshesTotal.WithLabelValues("error").Inc()
			log.Printf("Failed to refresh membership snapshot: %v", err)
			return nil, err
		}
		m := Aggregate(snap)

		c.mu.Lock()
		c.current = m
		c.mu.Unlock()

		snapshotRefreshesTotal.WithLabelValues("ok").Inc()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Membership), nil
}

// Invalidate drops the cached aggregate so the next read reloads.
func (c *DirectoryCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

var directoryCache *DirectoryCache

// InitDirectoryCache sets up the shared cache. It reads through whatever
// initializers.DB points at when a refresh runs.
func InitDirectoryCache() {
	directoryCache = NewDirectoryCache(func(ctx context.Context) (Snapshot, error) {
		return LoadSnapshot(ctx, initializers.DB)
	})
}

func GetDirectoryCache() *DirectoryCache {
	return directoryCache
}
