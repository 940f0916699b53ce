package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/repository"
)

func TestEnvelopeRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	docs := NewDocumentRepository(db)
	repo := NewEnvelopeRepository(db)

	doc := insertDocument(t, docs, "org1", document.KindContract, "MSA", nil)

	env := &envelope.Envelope{
		ID:          uuid.NewString(),
		DocumentID:  doc.ID,
		Provider:    "signwell",
		ProviderRef: "ref-1",
		Status:      envelope.StatusSent,
	}
	require.NoError(t, repo.Create(ctx, "org1", env))

	got, err := repo.GetByProviderRef(ctx, "signwell", "ref-1")
	require.NoError(t, err)
	require.Equal(t, env.ID, got.ID)
	require.Equal(t, envelope.StatusSent, got.Status)

	require.NoError(t, repo.UpdateStatus(ctx, env.ID, envelope.StatusCompleted))

	got, err = repo.GetByProviderRef(ctx, "signwell", "ref-1")
	require.NoError(t, err)
	require.Equal(t, envelope.StatusCompleted, got.Status)
	require.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestEnvelopeRepository_NotFound(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEnvelopeRepository(db)

	_, err := repo.GetByProviderRef(ctx, "signwell", "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.UpdateStatus(ctx, "nope", envelope.StatusVoided)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEnvelopeRepository_DuplicateProviderRef(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	docs := NewDocumentRepository(db)
	repo := NewEnvelopeRepository(db)

	doc := insertDocument(t, docs, "org1", document.KindContract, "NDA", nil)

	first := &envelope.Envelope{
		ID:          uuid.NewString(),
		DocumentID:  doc.ID,
		Provider:    "signwell",
		ProviderRef: "ref-dup",
		Status:      envelope.StatusSent,
	}
	require.NoError(t, repo.Create(ctx, "org1", first))

	second := &envelope.Envelope{
		ID:          uuid.NewString(),
		DocumentID:  doc.ID,
		Provider:    "signwell",
		ProviderRef: "ref-dup",
		Status:      envelope.StatusSent,
	}
	require.ErrorIs(t, repo.Create(ctx, "org1", second), repository.ErrDuplicate)
}
