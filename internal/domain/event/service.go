package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// Service handles activity log operations: validated appends and
// filtered, cursor-paginated reads.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// RecordRequest describes one event to append. Source, TriggerRoute and
// DurationMs are folded into the context payload before the write.
type RecordRequest struct {
	UserID       *string
	Type         Type
	Refs         References
	Provider     *string
	Context      map[string]any
	Source       string
	TriggerRoute string
	DurationMs   *int64
}

// Record validates and appends one event. Unknown types are rejected
// before any write is attempted.
func (s *Service) Record(ctx context.Context, orgID string, req RecordRequest) (*Event, error) {
	if orgID == "" {
		return nil, ErrInvalidInput
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, req.Type)
	}

	payload, err := encodeContext(req)
	if err != nil {
		return nil, fmt.Errorf("encoding context: %w", err)
	}

	ev := &Event{
		OrgID:     orgID,
		UserID:    req.UserID,
		Type:      req.Type,
		Refs:      req.Refs,
		Provider:  req.Provider,
		Context:   payload,
		// Microsecond precision matches the cursor encoding; anything
		// finer would break the exclusive-bound comparison.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Insert(ctx, orgID, ev); err != nil {
		return nil, fmt.Errorf("recording event: %w", err)
	}
	return ev, nil
}

// TryRecord appends one event best-effort. Failures are logged and
// swallowed so the triggering business operation is never affected.
func (s *Service) TryRecord(ctx context.Context, orgID string, req RecordRequest) {
	if _, err := s.Record(ctx, orgID, req); err != nil {
		s.logger.Warn("activity record dropped",
			"org_id", orgID, "type", req.Type, "error", err)
	}
}

// List returns one page of events in reverse-chronological order. The
// limit is clamped to [1,100] and defaults to 50; NextCursor is set only
// when a full page was returned.
func (s *Service) List(ctx context.Context, orgID string, opts ListOptions) (*Page, error) {
	if orgID == "" {
		return nil, ErrInvalidInput
	}
	if opts.From != nil && opts.To != nil && opts.From.After(*opts.To) {
		return nil, ErrInvalidRange
	}
	opts.Limit = clampLimit(opts.Limit)

	events, err := s.repo.List(ctx, orgID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	page := &Page{Events: events}
	if len(events) == opts.Limit {
		last := events[len(events)-1]
		token := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &token
	}
	return page, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}

func encodeContext(req RecordRequest) (string, error) {
	payload := make(map[string]any, len(req.Context)+3)
	for k, v := range req.Context {
		payload[k] = v
	}
	if req.Source != "" {
		payload["source"] = req.Source
	}
	if req.TriggerRoute != "" {
		payload["trigger_route"] = req.TriggerRoute
	}
	if req.DurationMs != nil {
		payload["duration_ms"] = *req.DurationMs
	}
	if len(payload) == 0 {
		return "", nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
