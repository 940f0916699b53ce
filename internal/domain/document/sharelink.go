package document

import "time"

// ShareLink is a tokenized read-only pointer to a document.
type ShareLink struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"org_id"`
	DocumentID string    `json:"document_id"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}
