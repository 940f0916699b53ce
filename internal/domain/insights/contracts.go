package insights

import (
	"context"
	"log/slog"
	"time"
)

// EventCounter counts activity log rows by type prefix within a window.
type EventCounter interface {
	CountByTypePrefix(ctx context.Context, orgID, prefix string, since time.Time) (int64, error)
}

// ContractsMetrics is the output of the contracts aggregator.
type ContractsMetrics struct {
	Drafted int64
	Sent    int64
	Signed  int64
}

// ContractsAggregator counts contract lifecycle events over a window.
type ContractsAggregator struct {
	events EventCounter
	logger *slog.Logger
}

// NewContractsAggregator creates a contracts aggregator.
func NewContractsAggregator(events EventCounter, logger *slog.Logger) *ContractsAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContractsAggregator{events: events, logger: logger}
}

// Aggregate counts drafted, sent and signed contracts since the window
// start. Each count falls back to 0 on a data-access error.
func (a *ContractsAggregator) Aggregate(ctx context.Context, orgID string, since time.Time) ContractsMetrics {
	return ContractsMetrics{
		Drafted: a.count(ctx, orgID, "contract_draft", since),
		Sent:    a.count(ctx, orgID, "signature_requested", since),
		Signed:  a.count(ctx, orgID, "signature_completed", since),
	}
}

func (a *ContractsAggregator) count(ctx context.Context, orgID, prefix string, since time.Time) int64 {
	n, err := a.events.CountByTypePrefix(ctx, orgID, prefix, since)
	if err != nil {
		a.logger.Warn("contract event count failed",
			"org_id", orgID, "prefix", prefix, "error", err)
		return 0
	}
	return n
}
