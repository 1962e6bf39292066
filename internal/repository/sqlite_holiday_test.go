package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/testutil"
)

func TestHolidayRepo_ListForProject_GlobalAndScoped(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	ctx := context.Background()

	other := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, other))

	repo := NewSQLiteHolidayRepo(database)
	newYear := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	offsite := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	foreign := time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, testutil.NewTestHoliday(p.ID, newYear, "New Year", testutil.WithGlobalScope())))
	require.NoError(t, repo.Create(ctx, testutil.NewTestHoliday(p.ID, offsite, "Offsite")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestHoliday(other.ID, foreign, "Other project")))

	holidays, err := repo.ListForProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, holidays, 2)

	names := []string{holidays[0].Name, holidays[1].Name}
	assert.Contains(t, names, "New Year")
	assert.Contains(t, names, "Offsite")
}

func TestHolidayRepo_RangeRoundTrips(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	ctx := context.Background()

	repo := NewSQLiteHolidayRepo(database)
	start := time.Date(2025, 4, 29, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	h := testutil.NewTestHoliday(p.ID, start, "Golden Week", testutil.WithHolidayRange(end))
	require.NoError(t, repo.Create(ctx, h))

	holidays, err := repo.ListForProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.True(t, start.Equal(holidays[0].Date))
	require.NotNil(t, holidays[0].EndDate)
	assert.True(t, end.Equal(*holidays[0].EndDate))
}

func TestHolidayRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	p, _, _ := seedTree(t, database)
	ctx := context.Background()

	repo := NewSQLiteHolidayRepo(database)
	h := testutil.NewTestHoliday(p.ID, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "Offsite")
	require.NoError(t, repo.Create(ctx, h))
	require.NoError(t, repo.Delete(ctx, h.ID))

	holidays, err := repo.ListForProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}
