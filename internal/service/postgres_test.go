package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedawell/backend/internal/recipeapi"
	"github.com/vedawell/backend/internal/testhelpers"
)

// Exercises the chart store against real postgres, including the jsonb
// document column. Skipped when Docker is unavailable.
func TestDietChartStore_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := testhelpers.SetupPostgres(t)
	fake := &fakeSearcher{searchRecipes: []recipeapi.Recipe{{ID: "r1", Name: "Millet Bowl", Calories: 500, Protein: 10}}}
	svc := NewDietChartService(db, nil, NewMealSearch(fake, rand.New(rand.NewSource(1))), rand.New(rand.NewSource(1)))
	userID := uuid.New()

	record, err := svc.GenerateAndStore(context.Background(), userID, testProfile(), 3)
	require.NoError(t, err)

	fetched, err := svc.GetChart(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, 3, fetched.NumDays)

	updated, err := svc.ApplyEdit(context.Background(), record.ID, userID, ChartEdit{
		Action: "remove", FromDay: 1, FromSlot: "breakfast",
	})
	require.NoError(t, err)

	chart := decodeChart(t, updated)
	assert.Len(t, chart.Days[0].Meals, 4)

	edits, err := svc.ListEdits(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Len(t, edits, 1)
}
