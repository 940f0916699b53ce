package packrun

import "time"

// PackType identifies one financial pack computation.
type PackType string

const (
	PackAccountsSpend  PackType = "accounts_spend"
	PackAccountsRunway PackType = "accounts_runway"
)

// Status is the outcome of one pack computation attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Run records one execution of a pack. One row per attempt, success or
// failure, never updated.
type Run struct {
	ID          int64     `json:"id"`
	OrgID       string    `json:"org_id"`
	PackType    PackType  `json:"pack_type"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Status      Status    `json:"status"`
	Metrics     string    `json:"metrics,omitempty"` // JSON string
	CreatedAt   time.Time `json:"created_at"`
}
