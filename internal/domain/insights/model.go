package insights

import "fmt"

// Range selects the lookback window for insight cards.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	Range90d Range = "90d"
)

// ParseRange maps a raw range parameter to a known Range. Anything
// unrecognized, including the empty string, falls back to 30 days.
func ParseRange(raw string) Range {
	switch Range(raw) {
	case Range7d, Range30d, Range90d:
		return Range(raw)
	default:
		return Range30d
	}
}

// Days returns the window length in days.
func (r Range) Days() int {
	switch r {
	case Range7d:
		return 7
	case Range90d:
		return 90
	default:
		return 30
	}
}

// Label returns the human period label shown on cards.
func (r Range) Label() string {
	return fmt.Sprintf("Last %d days", r.Days())
}

// CardKind names the domain a card was derived from.
type CardKind string

const (
	KindAccounts  CardKind = "accounts"
	KindContracts CardKind = "contracts"
	KindDecks     CardKind = "decks"
)

// CTA is an optional call-to-action attached to a card.
type CTA struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Card is one normalized dashboard metric. Cards are computed per
// request and never persisted. A nil Value means "not enough data" and
// must never be rendered as zero.
type Card struct {
	ID     string   `json:"id"`
	Kind   CardKind `json:"kind"`
	Title  string   `json:"title"`
	Value  *float64 `json:"value"`
	Period string   `json:"period"`
	Source string   `json:"source"`
	CTA    *CTA     `json:"cta,omitempty"`
}
