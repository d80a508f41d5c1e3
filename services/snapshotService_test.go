package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ibam-church/membership/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshot(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "people" ORDER BY "created_at" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "zone", "birth_date", "wants_ministry", "created_at"}).
			AddRow("p-2", "Ana", "Centro", "2001-03-04", true, time.Now()).
			AddRow("p-1", "Bruno", "Zona Sul", nil, false, time.Now()))
	mock.ExpectQuery(`SELECT .* FROM "ministries" ORDER BY "name" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Louvor"))
	mock.ExpectQuery(`SELECT .* FROM "cells" ORDER BY "name" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow("c-uuid", "Célula Centro", true))
	mock.ExpectQuery(`SELECT .* FROM "people_ministries" ORDER BY "person_id" ASC, "ministry_id" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "ministry_id"}).AddRow("p-2", int64(1)))
	mock.ExpectQuery(`SELECT .* FROM "people_cells" ORDER BY "person_id" ASC, "cell_id" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "cell_id"}))
	mock.ExpectCommit()

	snap, err := LoadSnapshot(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, snap.People, 2)
	assert.Equal(t, "p-2", snap.People[0].ID)
	assert.Equal(t, models.Date("2001-03-04"), snap.People[0].Birth_Date)
	assert.True(t, snap.People[1].Birth_Date.IsZero())
	assert.Equal(t, models.EntityID("1"), snap.Ministries[0].ID)
	assert.Equal(t, models.EntityID("c-uuid"), snap.Cells[0].ID)
	assert.Equal(t, []models.PersonMinistry{{Person_ID: "p-2", Ministry_ID: "1"}}, snap.PeopleMinistries)
	assert.Empty(t, snap.PeopleCells)
	assert.False(t, snap.LoadedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSnapshotRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "people"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("p-1"))
	mock.ExpectQuery(`SELECT .* FROM "ministries"`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	snap, err := LoadSnapshot(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ministries")
	assert.Empty(t, snap.People, "no partial snapshot is returned")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectoryCache(t *testing.T) {
	var loads int32
	fail := false
	cache := NewDirectoryCache(func(ctx context.Context) (Snapshot, error) {
		atomic.AddInt32(&loads, 1)
		if fail {
			return Snapshot{}, errors.New("db down")
		}
		return Snapshot{People: []models.Person{{ID: "p-1", Zone: "Centro"}}}, nil
	})
	ctx := context.Background()

	m1, err := cache.Current(ctx)
	require.NoError(t, err)
	m2, err := cache.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	fail = true
	_, err = cache.Refresh(ctx)
	assert.Error(t, err)
	m3, err := cache.Current(ctx)
	require.NoError(t, err)
	assert.Same(t, m1, m3, "a failed refresh keeps the previous directory")

	fail = false
	cache.Invalidate()
	m4, err := cache.Current(ctx)
	require.NoError(t, err)
	assert.NotSame(t, m1, m4)
	assert.Equal(t, int32(3), atomic.LoadInt32(&loads))
}

func TestDirectoryCacheCollapsesConcurrentRefreshes(t *testing.T) {
	var loads int32
	release := make(chan struct{})
	cache := NewDirectoryCache(func(ctx context.Context) (Snapshot, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return Snapshot{}, nil
	})

	var wg sync.WaitGroup
	results := make([]*Membership, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := cache.Refresh(context.Background())
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}
