package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// ErrLinkNotFound is returned when a share token resolves to nothing.
var ErrLinkNotFound = errors.New("share link not found")

// Repository provides persistence operations for documents.
type Repository interface {
	Create(ctx context.Context, orgID string, doc *Document) error
	RecentByKind(ctx context.Context, orgID string, kind Kind, limit int) ([]Document, error)
}

// ShareLinkRepository provides persistence operations for share links.
type ShareLinkRepository interface {
	Create(ctx context.Context, orgID string, link *ShareLink) error
	GetByToken(ctx context.Context, token string) (*ShareLink, error)
}

// Recorder appends activity events best-effort.
type Recorder interface {
	TryRecord(ctx context.Context, orgID string, req event.RecordRequest)
}

// Service handles document and share-link operations.
type Service struct {
	documents Repository
	links     ShareLinkRepository
	recorder  Recorder
	logger    *slog.Logger
}

// NewService creates a new document service.
func NewService(documents Repository, links ShareLinkRepository, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{documents: documents, links: links, recorder: recorder, logger: logger}
}

// CreateShareLink mints a share token for a document and records the
// creation in the activity log.
func (s *Service) CreateShareLink(ctx context.Context, orgID, userID, documentID string) (*ShareLink, error) {
	if orgID == "" || documentID == "" {
		return nil, fmt.Errorf("org and document required")
	}

	link := &ShareLink{
		ID:         uuid.NewString(),
		OrgID:      orgID,
		DocumentID: documentID,
		Token:      uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.links.Create(ctx, orgID, link); err != nil {
		return nil, fmt.Errorf("creating share link: %w", err)
	}

	if s.recorder != nil {
		req := event.RecordRequest{
			Type: event.TypeShareCreated,
			Refs: event.References{DocumentID: &documentID, ShareLinkID: &link.ID},
		}
		if userID != "" {
			req.UserID = &userID
		}
		s.recorder.TryRecord(ctx, orgID, req)
	}
	return link, nil
}

// ResolveShareLink looks up a share token and records the open
// best-effort. The resolution itself never fails because of the log.
func (s *Service) ResolveShareLink(ctx context.Context, token string) (*ShareLink, error) {
	link, err := s.links.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("resolving share link: %w", err)
	}

	if s.recorder != nil {
		s.recorder.TryRecord(ctx, link.OrgID, event.RecordRequest{
			Type: event.TypeShareOpened,
			Refs: event.References{DocumentID: &link.DocumentID, ShareLinkID: &link.ID},
		})
	}
	return link, nil
}
