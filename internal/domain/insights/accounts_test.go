package insights_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paperstack-io/paperstack/internal/domain/insights"
	"github.com/paperstack-io/paperstack/internal/domain/packrun"
	"github.com/paperstack-io/paperstack/internal/repository"
	"github.com/paperstack-io/paperstack/internal/repository/mocks"
)

func successRun(packType packrun.PackType, metrics string, createdAt time.Time) *packrun.Run {
	return &packrun.Run{
		PackType:  packType,
		Status:    packrun.StatusSuccess,
		Metrics:   metrics,
		CreatedAt: createdAt,
	}
}

func TestAccountsAggregator(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsSpend).
		Return(successRun(packrun.PackAccountsSpend, `{"total_spend": 42500.5}`, asOf), nil)
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsRunway).
		Return(successRun(packrun.PackAccountsRunway, `{"runway_months": "18.5"}`, asOf), nil)

	agg := insights.NewAccountsAggregator(runs, nil)
	out := agg.Aggregate(ctx, "org1")

	require.NotNil(t, out.Spend)
	require.Equal(t, 42500.5, *out.Spend)
	require.NotNil(t, out.SpendAsOf)
	require.True(t, out.SpendAsOf.Equal(asOf))

	// Numeric strings coerce.
	require.NotNil(t, out.Runway)
	require.Equal(t, 18.5, *out.Runway)
}

func TestAccountsAggregatorFieldAliases(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now().UTC()

	// The preferred field is absent; resolution walks the alias list
	// and takes the first numeric value.
	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsSpend).
		Return(successRun(packrun.PackAccountsSpend, `{"spend": "oops", "monthly_spend": 900}`, asOf), nil)
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsRunway).
		Return(successRun(packrun.PackAccountsRunway, `{"burn": 1}`, asOf), nil)

	out := insights.NewAccountsAggregator(runs, nil).Aggregate(ctx, "org1")

	require.NotNil(t, out.Spend)
	require.Equal(t, 900.0, *out.Spend)

	// No alias resolves: nil, never zero.
	require.Nil(t, out.Runway)
	require.NotNil(t, out.RunwayAsOf)
}

func TestAccountsAggregatorNoRuns(t *testing.T) {
	ctx := context.Background()

	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsSpend).
		Return(nil, repository.ErrNotFound)
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsRunway).
		Return(nil, repository.ErrNotFound)

	out := insights.NewAccountsAggregator(runs, nil).Aggregate(ctx, "org1")

	require.Nil(t, out.Spend)
	require.Nil(t, out.SpendAsOf)
	require.Nil(t, out.Runway)
	require.Nil(t, out.RunwayAsOf)
}

func TestAccountsAggregatorStoreErrorDegrades(t *testing.T) {
	ctx := context.Background()

	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsSpend).
		Return(nil, errors.New("store down"))
	runs.On("LatestSuccess", ctx, "org1", packrun.PackAccountsRunway).
		Return(successRun(packrun.PackAccountsRunway, `not json`, time.Now().UTC()), nil)

	out := insights.NewAccountsAggregator(runs, nil).Aggregate(ctx, "org1")

	require.Nil(t, out.Spend)
	// Unreadable metrics payload degrades too, keeping the run time.
	require.Nil(t, out.Runway)
	require.NotNil(t, out.RunwayAsOf)
}
