package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteTestRepo(t *testing.T) (*SQLiteEntryRepo, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock()
	return NewSQLiteEntryRepo(testutil.NewTestDB(t), clock.Now), clock
}

func TestSQLiteEntryRepo_InsertAndFetchAll(t *testing.T) {
	repo, _ := sqliteTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry()))

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kim", entries[0].Name)
	assert.Equal(t, "Sales", entries[0].RequestedDept)
	assert.Equal(t, "Report", entries[0].Task)
	assert.Equal(t, 45.0, entries[0].DurationMin)
	assert.True(t, testutil.DefaultNow.Equal(entries[0].CreatedAt))
}

func TestSQLiteEntryRepo_FetchAllEmpty(t *testing.T) {
	repo, _ := sqliteTestRepo(t)

	entries, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSQLiteEntryRepo_FetchAllNewestFirst(t *testing.T) {
	repo, clock := sqliteTestRepo(t)
	ctx := context.Background()

	for _, task := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithTask(task))))
		clock.Advance(90 * time.Second)
	}

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Task)
	assert.Equal(t, "second", entries[1].Task)
	assert.Equal(t, "first", entries[2].Task)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
}

func TestSQLiteEntryRepo_SameTimestampFallsBackToInsertOrder(t *testing.T) {
	repo, _ := sqliteTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithTask("a"))))
	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithTask("b"))))

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Task)
	assert.Equal(t, "a", entries[1].Task)
}

func TestSQLiteEntryRepo_SubSecondOrdering(t *testing.T) {
	repo, clock := sqliteTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithTask("whole second"))))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithTask("half second later"))))

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "half second later", entries[0].Task)
}

func TestSQLiteEntryRepo_RoundTripKeepsFractionalMinutes(t *testing.T) {
	repo, _ := sqliteTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewValidEntry(testutil.WithMinutes(2.08))))

	entries, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.08, entries[0].DurationMin)
}

func TestSQLiteEntryRepo_InsertFailureIsStoreError(t *testing.T) {
	repo, _ := sqliteTestRepo(t)

	// The table rejects what Validate would have rejected.
	err := repo.Insert(context.Background(), testutil.NewValidEntry(testutil.WithMinutes(0)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStore)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, OpInsert, se.Op)
}

func TestSQLiteEntryRepo_ClosedDatabaseIsStoreError(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database, nil)
	require.NoError(t, database.Close())

	_, err := repo.FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrStore)
	assert.Contains(t, err.Error(), OpFetchAll)
}
