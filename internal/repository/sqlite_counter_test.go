package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/testutil"
)

func TestCounterRepo_FirstReserveStartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	counters := NewSQLiteCounterRepo(database)

	first, err := counters.Reserve(context.Background(), p.ID, "ISS", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
}

func TestCounterRepo_RangesAreContiguous(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	counters := NewSQLiteCounterRepo(database)
	ctx := context.Background()

	first, err := counters.Reserve(ctx, p.ID, "ISS", 7)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// After seven codes the next bulk request starts at 8.
	next, err := counters.Reserve(ctx, p.ID, "ISS", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestCounterRepo_PrefixesAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	counters := NewSQLiteCounterRepo(database)
	ctx := context.Background()

	_, err := counters.Reserve(ctx, p.ID, "ISS", 5)
	require.NoError(t, err)

	first, err := counters.Reserve(ctx, p.ID, "REQ", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
}

func TestCounterRepo_ProjectsAreIndependent(t *testing.T) {
	database := testutil.NewTestDB(t)
	p1, _, _ := seedTree(t, database)
	ctx := context.Background()

	p2 := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, p2))

	counters := NewSQLiteCounterRepo(database)
	_, err := counters.Reserve(ctx, p1.ID, "ISS", 5)
	require.NoError(t, err)

	first, err := counters.Reserve(ctx, p2.ID, "ISS", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
}

func TestCounterRepo_ConcurrentReservationsNeverOverlap(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	counters := NewSQLiteCounterRepo(database)

	const workers = 20
	const perWorker = 5

	starts := make([]int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			first, err := counters.Reserve(context.Background(), p.ID, "DIS", perWorker)
			assert.NoError(t, err)
			starts[slot] = first
		}(i)
	}
	wg.Wait()

	// Every sequence number 1..workers*perWorker must be handed out
	// exactly once.
	seen := make(map[int]bool)
	for _, first := range starts {
		for n := first; n < first+perWorker; n++ {
			assert.False(t, seen[n], "sequence %d reserved twice", n)
			seen[n] = true
		}
	}
	assert.Len(t, seen, workers*perWorker)
	for n := 1; n <= workers*perWorker; n++ {
		assert.True(t, seen[n], "sequence %d never reserved", n)
	}
}
