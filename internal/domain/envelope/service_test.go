package envelope_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/repository"
	"github.com/paperstack-io/paperstack/internal/repository/mocks"
)

type recorderSpy struct {
	orgs []string
	reqs []event.RecordRequest
}

func (r *recorderSpy) TryRecord(_ context.Context, orgID string, req event.RecordRequest) {
	r.orgs = append(r.orgs, orgID)
	r.reqs = append(r.reqs, req)
}

func TestApplyCallbackCompletesEnvelope(t *testing.T) {
	ctx := context.Background()

	env := &envelope.Envelope{
		ID:          "env1",
		OrgID:       "org1",
		DocumentID:  "doc1",
		Provider:    "signwell",
		ProviderRef: "ref-1",
		Status:      envelope.StatusSent,
	}

	repo := &mocks.EnvelopeRepository{}
	repo.On("GetByProviderRef", ctx, "signwell", "ref-1").Return(env, nil)
	repo.On("UpdateStatus", ctx, "env1", envelope.StatusCompleted).Return(nil)

	recorder := &recorderSpy{}
	svc := envelope.NewService(repo, recorder, nil)

	result, err := svc.ApplyCallback(ctx, "signwell", "ref-1", envelope.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, "updated", result.Outcome)
	require.Equal(t, envelope.StatusCompleted, result.Envelope.Status)

	// Completion lands in the activity log under the envelope's org.
	require.Equal(t, []string{"org1"}, recorder.orgs)
	require.Equal(t, event.TypeSignCompleted, recorder.reqs[0].Type)
	require.Equal(t, "env1", *recorder.reqs[0].Refs.EnvelopeID)
}

func TestApplyCallbackUnknownRefIsIgnored(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.EnvelopeRepository{}
	repo.On("GetByProviderRef", ctx, "signwell", "ghost").Return(nil, repository.ErrNotFound)

	recorder := &recorderSpy{}
	svc := envelope.NewService(repo, recorder, nil)

	// A stale callback is a successful no-op, not an error; anything
	// else would keep the provider retrying forever.
	result, err := svc.ApplyCallback(ctx, "signwell", "ghost", envelope.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, "ignored", result.Outcome)
	require.Empty(t, recorder.reqs)
	repo.AssertNotCalled(t, "UpdateStatus", ctx, "ghost", envelope.StatusCompleted)
}

func TestApplyCallbackValidation(t *testing.T) {
	ctx := context.Background()
	svc := envelope.NewService(&mocks.EnvelopeRepository{}, nil, nil)

	_, err := svc.ApplyCallback(ctx, "signwell", "ref-1", envelope.Status("torn"))
	require.ErrorIs(t, err, envelope.ErrInvalidStatus)

	_, err = svc.ApplyCallback(ctx, "", "ref-1", envelope.StatusSent)
	require.ErrorIs(t, err, envelope.ErrInvalidInput)
}

func TestApplyCallbackNonCompletionRecordsNothing(t *testing.T) {
	ctx := context.Background()

	env := &envelope.Envelope{ID: "env1", OrgID: "org1", Provider: "signwell", ProviderRef: "ref-1"}

	repo := &mocks.EnvelopeRepository{}
	repo.On("GetByProviderRef", ctx, "signwell", "ref-1").Return(env, nil)
	repo.On("UpdateStatus", ctx, "env1", envelope.StatusDeclined).Return(nil)

	recorder := &recorderSpy{}
	svc := envelope.NewService(repo, recorder, nil)

	result, err := svc.ApplyCallback(ctx, "signwell", "ref-1", envelope.StatusDeclined)
	require.NoError(t, err)
	require.Equal(t, "updated", result.Outcome)
	require.Empty(t, recorder.reqs)
}

func TestApplyCallbackStoreError(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.EnvelopeRepository{}
	repo.On("GetByProviderRef", ctx, "signwell", "ref-1").Return(nil, errors.New("store down"))

	svc := envelope.NewService(repo, nil, nil)
	_, err := svc.ApplyCallback(ctx, "signwell", "ref-1", envelope.StatusSent)
	require.Error(t, err)
}
