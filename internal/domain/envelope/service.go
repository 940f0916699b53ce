package envelope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// Repository provides persistence operations for envelopes.
type Repository interface {
	Create(ctx context.Context, orgID string, env *Envelope) error
	GetByProviderRef(ctx context.Context, provider, providerRef string) (*Envelope, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Recorder appends activity events best-effort.
type Recorder interface {
	TryRecord(ctx context.Context, orgID string, req event.RecordRequest)
}

// Service applies provider status callbacks to envelopes.
type Service struct {
	envelopes Repository
	recorder  Recorder
	logger    *slog.Logger
}

// NewService creates a new envelope service.
func NewService(envelopes Repository, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{envelopes: envelopes, recorder: recorder, logger: logger}
}

// CallbackResult reports how a provider callback was handled.
type CallbackResult struct {
	Outcome  string    `json:"status"` // "updated" or "ignored"
	Envelope *Envelope `json:"-"`
}

// ApplyCallback updates the envelope matching (provider, providerRef) to
// the reported status. An unknown reference is answered as a successful
// no-op so the provider stops retrying; it is not an error.
func (s *Service) ApplyCallback(ctx context.Context, provider, providerRef string, status Status) (*CallbackResult, error) {
	if provider == "" || providerRef == "" {
		return nil, ErrInvalidInput
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	env, err := s.envelopes.GetByProviderRef(ctx, provider, providerRef)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("envelope callback ignored",
				"provider", provider, "provider_ref", providerRef)
			return &CallbackResult{Outcome: "ignored"}, nil
		}
		return nil, fmt.Errorf("loading envelope: %w", err)
	}

	if err := s.envelopes.UpdateStatus(ctx, env.ID, status); err != nil {
		return nil, fmt.Errorf("updating envelope: %w", err)
	}
	env.Status = status

	if status == StatusCompleted && s.recorder != nil {
		s.recorder.TryRecord(ctx, env.OrgID, event.RecordRequest{
			Type:     event.TypeSignCompleted,
			Refs:     event.References{EnvelopeID: &env.ID, DocumentID: &env.DocumentID},
			Provider: &env.Provider,
		})
	}

	return &CallbackResult{Outcome: "updated", Envelope: env}, nil
}
