package envelope

import "time"

// Status is the e-signature provider's view of an envelope.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusCompleted Status = "completed"
	StatusDeclined  Status = "declined"
	StatusVoided    Status = "voided"
)

// Valid reports whether s is a known envelope status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusCompleted, StatusDeclined, StatusVoided:
		return true
	}
	return false
}

// Envelope tracks one signature request sent to an external provider.
type Envelope struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	DocumentID  string    `json:"document_id"`
	Provider    string    `json:"provider"`
	ProviderRef string    `json:"provider_ref"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
