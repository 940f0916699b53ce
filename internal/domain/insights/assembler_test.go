package insights_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/domain/insights"
	"github.com/paperstack-io/paperstack/internal/repository/mocks"
)

func TestParseRange(t *testing.T) {
	require.Equal(t, insights.Range7d, insights.ParseRange("7d"))
	require.Equal(t, insights.Range30d, insights.ParseRange("30d"))
	require.Equal(t, insights.Range90d, insights.ParseRange("90d"))

	// Anything else falls back to 30 days.
	require.Equal(t, insights.Range30d, insights.ParseRange(""))
	require.Equal(t, insights.Range30d, insights.ParseRange("365d"))
	require.Equal(t, insights.Range30d, insights.ParseRange("monthly"))
}

func TestRangeWindow(t *testing.T) {
	require.Equal(t, 7, insights.Range7d.Days())
	require.Equal(t, 30, insights.Range30d.Days())
	require.Equal(t, 90, insights.Range90d.Days())
	require.Equal(t, "Last 90 days", insights.Range90d.Label())
}

func newTestAssembler(runs *mocks.PackRunRepository, events *mocks.EventRepository, documents *mocks.DocumentRepository) *insights.Assembler {
	return insights.NewAssembler(
		insights.NewAccountsAggregator(runs, nil),
		insights.NewContractsAggregator(events, nil),
		insights.NewDecksAggregator(events, documents, nil),
		nil,
	)
}

func TestBuildCardsOrderIsStable(t *testing.T) {
	ctx := context.Background()

	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", mock.Anything, "org1", mock.Anything).
		Return(successRun("accounts_spend", `{"total_spend": 100, "runway_months": 12}`, time.Now().UTC()), nil)

	events := &mocks.EventRepository{}
	events.On("CountByTypePrefix", mock.Anything, "org1", mock.Anything, mock.Anything).
		Return(int64(3), nil)

	documents := &mocks.DocumentRepository{}
	documents.On("RecentByKind", mock.Anything, "org1", document.KindDeck, 5).
		Return([]document.Document{}, nil)

	cards := newTestAssembler(runs, events, documents).BuildCards(ctx, "org1", insights.Range7d)

	require.Len(t, cards, 4)
	require.Equal(t, "accounts_spend", cards[0].ID)
	require.Equal(t, "accounts_runway", cards[1].ID)
	require.Equal(t, "contracts_signed", cards[2].ID)
	require.Equal(t, "decks_exported", cards[3].ID)

	for _, card := range cards {
		require.Equal(t, "Last 7 days", card.Period)
	}
	require.Equal(t, insights.KindAccounts, cards[0].Kind)
	require.Equal(t, "accounts_pack", cards[0].Source)
	require.Equal(t, "activity_log", cards[2].Source)

	require.NotNil(t, cards[2].Value)
	require.Equal(t, 3.0, *cards[2].Value)
}

func TestBuildCardsNoPackRunsYieldsNullNotZero(t *testing.T) {
	ctx := context.Background()

	runs := &mocks.PackRunRepository{}
	runs.On("LatestSuccess", mock.Anything, "org1", mock.Anything).
		Return(nil, errors.New("store down"))

	events := &mocks.EventRepository{}
	events.On("CountByTypePrefix", mock.Anything, "org1", mock.Anything, mock.Anything).
		Return(int64(2), nil)

	documents := &mocks.DocumentRepository{}
	documents.On("RecentByKind", mock.Anything, "org1", document.KindDeck, 5).
		Return([]document.Document{}, nil)

	cards := newTestAssembler(runs, events, documents).BuildCards(ctx, "org1", insights.Range30d)

	// Accounts degrade to null without disturbing the other domains.
	require.Len(t, cards, 4)
	require.Nil(t, cards[0].Value)
	require.Nil(t, cards[1].Value)
	require.Equal(t, "Last 30 days", cards[0].Period)

	require.NotNil(t, cards[2].Value)
	require.Equal(t, 2.0, *cards[2].Value)
	require.NotNil(t, cards[3].Value)
	require.Equal(t, 2.0, *cards[3].Value)
}
