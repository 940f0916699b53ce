package document

import "time"

// Kind classifies a document.
type Kind string

const (
	KindDeck     Kind = "deck"
	KindContract Kind = "contract"
	KindMemo     Kind = "memo"
)

// Document is one stored business document.
type Document struct {
	ID        string     `json:"id"`
	OrgID     string     `json:"org_id"`
	Kind      Kind       `json:"kind"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
