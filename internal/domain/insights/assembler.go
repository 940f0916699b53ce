package insights

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// AccountsSource derives accounts metrics for one org.
type AccountsSource interface {
	Aggregate(ctx context.Context, orgID string) AccountsMetrics
}

// ContractsSource derives contract metrics for one org and window.
type ContractsSource interface {
	Aggregate(ctx context.Context, orgID string, since time.Time) ContractsMetrics
}

// DecksSource derives deck metrics for one org and window.
type DecksSource interface {
	Aggregate(ctx context.Context, orgID string, since time.Time) DecksMetrics
}

// Assembler fans out to the domain aggregators and normalizes their
// output into an ordered card list.
type Assembler struct {
	accounts  AccountsSource
	contracts ContractsSource
	decks     DecksSource
	logger    *slog.Logger
	now       func() time.Time
}

// NewAssembler creates a card assembler.
func NewAssembler(accounts AccountsSource, contracts ContractsSource, decks DecksSource, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		accounts:  accounts,
		contracts: contracts,
		decks:     decks,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildCards runs all aggregators concurrently and returns cards in a
// fixed order: accounts spend, accounts runway, contracts signed, decks
// exported. Aggregators are exception-free, so one domain coming back
// empty never disturbs the others.
func (a *Assembler) BuildCards(ctx context.Context, orgID string, r Range) []Card {
	since := a.now().UTC().AddDate(0, 0, -r.Days())

	var (
		accounts  AccountsMetrics
		contracts ContractsMetrics
		decks     DecksMetrics
	)

	// Deliberately not errgroup.WithContext: a slow or degraded
	// aggregator must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		accounts = a.accounts.Aggregate(ctx, orgID)
		return nil
	})
	g.Go(func() error {
		contracts = a.contracts.Aggregate(ctx, orgID, since)
		return nil
	})
	g.Go(func() error {
		decks = a.decks.Aggregate(ctx, orgID, since)
		return nil
	})
	_ = g.Wait()

	period := r.Label()
	signed := float64(contracts.Signed)
	exported := float64(decks.Exported)

	return []Card{
		{
			ID:     "accounts_spend",
			Kind:   KindAccounts,
			Title:  "Spend",
			Value:  accounts.Spend,
			Period: period,
			Source: "accounts_pack",
			CTA:    &CTA{Label: "Open accounts", Target: "/accounts"},
		},
		{
			ID:     "accounts_runway",
			Kind:   KindAccounts,
			Title:  "Runway (months)",
			Value:  accounts.Runway,
			Period: period,
			Source: "accounts_pack",
		},
		{
			ID:     "contracts_signed",
			Kind:   KindContracts,
			Title:  "Contracts signed",
			Value:  &signed,
			Period: period,
			Source: "activity_log",
			CTA:    &CTA{Label: "View contracts", Target: "/contracts"},
		},
		{
			ID:     "decks_exported",
			Kind:   KindDecks,
			Title:  "Decks exported",
			Value:  &exported,
			Period: period,
			Source: "activity_log",
			CTA:    &CTA{Label: "View decks", Target: "/decks"},
		},
	}
}
