package insights

import (
	"context"
	"log/slog"
	"time"

	"github.com/paperstack-io/paperstack/internal/domain/document"
)

const (
	recentDeckCount  = 5
	untitledDeckName = "Untitled deck"
)

// DocumentSource lists recently updated documents for one org.
type DocumentSource interface {
	RecentByKind(ctx context.Context, orgID string, kind document.Kind, limit int) ([]document.Document, error)
}

// DeckRef is a lightweight pointer to a recently touched deck.
type DeckRef struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// DecksMetrics is the output of the decks aggregator.
type DecksMetrics struct {
	Generated int64
	Saved     int64
	Exported  int64
	Recent    []DeckRef
}

// DecksAggregator counts deck lifecycle events and lists recent decks.
type DecksAggregator struct {
	events    EventCounter
	documents DocumentSource
	logger    *slog.Logger
}

// NewDecksAggregator creates a decks aggregator.
func NewDecksAggregator(events EventCounter, documents DocumentSource, logger *slog.Logger) *DecksAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecksAggregator{events: events, documents: documents, logger: logger}
}

// Aggregate counts generated, saved and exported decks since the window
// start and fetches the five most recently updated decks. Counts fall
// back to 0 and the recent list to empty on data-access errors.
func (a *DecksAggregator) Aggregate(ctx context.Context, orgID string, since time.Time) DecksMetrics {
	out := DecksMetrics{
		Generated: a.count(ctx, orgID, "doc_generate", since),
		Saved:     a.count(ctx, orgID, "doc_save", since),
		Exported:  a.count(ctx, orgID, "doc_export", since),
	}

	docs, err := a.documents.RecentByKind(ctx, orgID, document.KindDeck, recentDeckCount)
	if err != nil {
		a.logger.Warn("recent decks lookup failed", "org_id", orgID, "error", err)
		return out
	}
	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = untitledDeckName
		}
		out.Recent = append(out.Recent, DeckRef{
			ID:        doc.ID,
			Title:     title,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	return out
}

func (a *DecksAggregator) count(ctx context.Context, orgID, prefix string, since time.Time) int64 {
	n, err := a.events.CountByTypePrefix(ctx, orgID, prefix, since)
	if err != nil {
		a.logger.Warn("deck event count failed",
			"org_id", orgID, "prefix", prefix, "error", err)
		return 0
	}
	return n
}
