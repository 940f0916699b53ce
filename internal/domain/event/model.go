package event

import "time"

// References holds optional foreign entity ids attached to an event.
type References struct {
	DocumentID    *string `json:"document_id,omitempty"`
	VersionID     *string `json:"version_id,omitempty"`
	UnifiedItemID *string `json:"unified_item_id,omitempty"`
	EnvelopeID    *string `json:"envelope_id,omitempty"`
	ShareLinkID   *string `json:"share_link_id,omitempty"`
}

// Event is one immutable row in the activity log. Rows are created once
// at the moment of the triggering action and never updated or deleted.
type Event struct {
	ID        int64      `json:"id"`
	OrgID     string     `json:"org_id"`
	UserID    *string    `json:"user_id,omitempty"`
	Type      Type       `json:"type"`
	Refs      References `json:"references"`
	Provider  *string    `json:"provider,omitempty"`
	Context   string     `json:"context,omitempty"` // JSON string
	CreatedAt time.Time  `json:"created_at"`
}

// Page is one page of a reverse-chronological listing. NextCursor is
// non-nil only when another page may exist.
type Page struct {
	Events     []Event `json:"data"`
	NextCursor *string `json:"nextCursor"`
}
