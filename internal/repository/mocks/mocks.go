package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/domain/packrun"
)

// EventRepository is a mock event store. It satisfies event.Repository
// and the insights.EventCounter interface.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Insert(ctx context.Context, orgID string, ev *event.Event) error {
	args := m.Called(ctx, orgID, ev)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, orgID string, opts event.ListOptions) ([]event.Event, error) {
	args := m.Called(ctx, orgID, opts)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) CountByTypePrefix(ctx context.Context, orgID, prefix string, since time.Time) (int64, error) {
	args := m.Called(ctx, orgID, prefix, since)
	return args.Get(0).(int64), args.Error(1)
}

// PackRunRepository is a mock pack run store for insights.PackRunSource.
type PackRunRepository struct {
	mock.Mock
}

func (m *PackRunRepository) Insert(ctx context.Context, orgID string, run *packrun.Run) error {
	args := m.Called(ctx, orgID, run)
	return args.Error(0)
}

func (m *PackRunRepository) LatestSuccess(ctx context.Context, orgID string, packType packrun.PackType) (*packrun.Run, error) {
	args := m.Called(ctx, orgID, packType)
	if run, ok := args.Get(0).(*packrun.Run); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

// DocumentRepository is a mock document store for document.Repository
// and insights.DocumentSource.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, orgID string, doc *document.Document) error {
	args := m.Called(ctx, orgID, doc)
	return args.Error(0)
}

func (m *DocumentRepository) RecentByKind(ctx context.Context, orgID string, kind document.Kind, limit int) ([]document.Document, error) {
	args := m.Called(ctx, orgID, kind, limit)
	if list, ok := args.Get(0).([]document.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ShareLinkRepository is a mock for document.ShareLinkRepository.
type ShareLinkRepository struct {
	mock.Mock
}

func (m *ShareLinkRepository) Create(ctx context.Context, orgID string, link *document.ShareLink) error {
	args := m.Called(ctx, orgID, link)
	return args.Error(0)
}

func (m *ShareLinkRepository) GetByToken(ctx context.Context, token string) (*document.ShareLink, error) {
	args := m.Called(ctx, token)
	if link, ok := args.Get(0).(*document.ShareLink); ok {
		return link, args.Error(1)
	}
	return nil, args.Error(1)
}

// EnvelopeRepository is a mock for envelope.Repository.
type EnvelopeRepository struct {
	mock.Mock
}

func (m *EnvelopeRepository) Create(ctx context.Context, orgID string, env *envelope.Envelope) error {
	args := m.Called(ctx, orgID, env)
	return args.Error(0)
}

func (m *EnvelopeRepository) GetByProviderRef(ctx context.Context, provider, providerRef string) (*envelope.Envelope, error) {
	args := m.Called(ctx, provider, providerRef)
	if env, ok := args.Get(0).(*envelope.Envelope); ok {
		return env, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EnvelopeRepository) UpdateStatus(ctx context.Context, id string, status envelope.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
