package insights

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/packrun"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// PackRunSource fetches pack run history for one org.
type PackRunSource interface {
	LatestSuccess(ctx context.Context, orgID string, packType packrun.PackType) (*packrun.Run, error)
}

// fieldAliases is an ordered list of acceptable source-field names for
// one logical metric. Resolution takes the first alias that yields a
// numeric value; pack metrics payloads drift across pack versions.
type fieldAliases []string

func (a fieldAliases) resolve(metrics map[string]any) *float64 {
	for _, name := range a {
		if v, ok := metrics[name]; ok {
			if n, ok := coerceNumber(v); ok {
				return &n
			}
		}
	}
	return nil
}

// coerceNumber accepts JSON numbers and numeric strings.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

var (
	spendAliases  = fieldAliases{"total_spend", "spend", "monthly_spend", "net_burn"}
	runwayAliases = fieldAliases{"runway_months", "runway", "months_of_runway"}
)

// AccountsMetrics is the output of the accounts aggregator. Nil fields
// mean the metric could not be derived, not that it is zero.
type AccountsMetrics struct {
	Spend      *float64
	SpendAsOf  *time.Time
	Runway     *float64
	RunwayAsOf *time.Time
}

// AccountsAggregator derives spend and runway figures from the latest
// successful pack runs.
type AccountsAggregator struct {
	runs   PackRunSource
	logger *slog.Logger
}

// NewAccountsAggregator creates an accounts aggregator.
func NewAccountsAggregator(runs PackRunSource, logger *slog.Logger) *AccountsAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountsAggregator{runs: runs, logger: logger}
}

// Aggregate never fails: missing runs, store errors and malformed
// metrics payloads all degrade to nil fields.
func (a *AccountsAggregator) Aggregate(ctx context.Context, orgID string) AccountsMetrics {
	var out AccountsMetrics
	out.Spend, out.SpendAsOf = a.latestMetric(ctx, orgID, packrun.PackAccountsSpend, spendAliases)
	out.Runway, out.RunwayAsOf = a.latestMetric(ctx, orgID, packrun.PackAccountsRunway, runwayAliases)
	return out
}

func (a *AccountsAggregator) latestMetric(ctx context.Context, orgID string, packType packrun.PackType, aliases fieldAliases) (*float64, *time.Time) {
	run, err := a.runs.LatestSuccess(ctx, orgID, packType)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn("accounts pack lookup failed",
				"org_id", orgID, "pack_type", packType, "error", err)
		}
		return nil, nil
	}

	asOf := run.CreatedAt
	var metrics map[string]any
	if err := json.Unmarshal([]byte(run.Metrics), &metrics); err != nil {
		a.logger.Warn("accounts pack metrics unreadable",
			"org_id", orgID, "pack_type", packType, "error", err)
		return nil, &asOf
	}
	return aliases.resolve(metrics), &asOf
}
