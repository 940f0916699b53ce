package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paperstack-io/paperstack/internal/domain/document"
	"github.com/paperstack-io/paperstack/internal/domain/envelope"
	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/domain/insights"
	"github.com/paperstack-io/paperstack/internal/repository"
)

// EventService records and lists activity events.
type EventService interface {
	Record(ctx context.Context, orgID string, req event.RecordRequest) (*event.Event, error)
	List(ctx context.Context, orgID string, opts event.ListOptions) (*event.Page, error)
}

// InsightsService assembles dashboard cards.
type InsightsService interface {
	BuildCards(ctx context.Context, orgID string, r insights.Range) []insights.Card
}

// EnvelopeService applies e-signature provider callbacks.
type EnvelopeService interface {
	ApplyCallback(ctx context.Context, provider, providerRef string, status envelope.Status) (*envelope.CallbackResult, error)
}

// ShareService mints and resolves share links.
type ShareService interface {
	CreateShareLink(ctx context.Context, orgID, userID, documentID string) (*document.ShareLink, error)
	ResolveShareLink(ctx context.Context, token string) (*document.ShareLink, error)
}

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Events    EventService
	Insights  InsightsService
	Envelopes EnvelopeService
	Shares    ShareService
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates an HTTP router. All /v1 routes except the provider
// callback and share resolution require the auth middleware.
func NewServer(services Services, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{services: services, logger: logger}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Post("/v1/esign/callback", srv.handleEsignCallback)
	r.Get("/v1/share/{token}", srv.handleShareOpen)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Post("/v1/activity", srv.handleRecordEvent)
		r.Get("/v1/activity", srv.handleListEvents)
		r.Get("/v1/insights/cards", srv.handleInsightsCards)
		r.Post("/v1/share", srv.handleCreateShareLink)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type recordEventRequest struct {
	Type         string           `json:"type"`
	References   event.References `json:"references"`
	Provider     *string          `json:"provider,omitempty"`
	Context      map[string]any   `json:"context,omitempty"`
	Source       string           `json:"source,omitempty"`
	TriggerRoute string           `json:"triggerRoute,omitempty"`
	DurationMs   *int64           `json:"durationMs,omitempty"`
}

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body recordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := event.RecordRequest{
		Type:         event.Type(body.Type),
		Refs:         body.References,
		Provider:     body.Provider,
		Context:      body.Context,
		Source:       body.Source,
		TriggerRoute: body.TriggerRoute,
		DurationMs:   body.DurationMs,
	}
	if id.UserID != "" {
		userID := id.UserID
		req.UserID = &userID
	}

	ev, err := s.services.Events.Record(r.Context(), id.OrgID, req)
	if err != nil {
		if errors.Is(err, event.ErrUnknownType) || errors.Is(err, event.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("record event failed", "org_id", id.OrgID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	opts, err := parseListOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.services.Events.List(r.Context(), id.OrgID, opts)
	if err != nil {
		if errors.Is(err, event.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("list events failed", "org_id", id.OrgID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if page.Events == nil {
		page.Events = []event.Event{}
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleInsightsCards(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rng := insights.ParseRange(r.URL.Query().Get("range"))
	cards := s.services.Insights.BuildCards(r.Context(), id.OrgID, rng)

	writeJSON(w, http.StatusOK, map[string]any{
		"range": rng,
		"cards": cards,
	})
}

type esignCallbackRequest struct {
	Provider    string `json:"provider"`
	EnvelopeRef string `json:"envelope_ref"`
	Status      string `json:"status"`
}

func (s *Server) handleEsignCallback(w http.ResponseWriter, r *http.Request) {
	var body esignCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.services.Envelopes.ApplyCallback(r.Context(), body.Provider, body.EnvelopeRef, envelope.Status(body.Status))
	if err != nil {
		if errors.Is(err, envelope.ErrInvalidStatus) || errors.Is(err, envelope.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("esign callback failed", "provider", body.Provider, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": result.Outcome})
}

type createShareLinkRequest struct {
	DocumentID string `json:"document_id"`
}

func (s *Server) handleCreateShareLink(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body createShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	link, err := s.services.Shares.CreateShareLink(r.Context(), id.OrgID, id.UserID, body.DocumentID)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		s.logger.Error("share link creation failed", "org_id", id.OrgID, "document_id", body.DocumentID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleShareOpen(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	link, err := s.services.Shares.ResolveShareLink(r.Context(), token)
	if err != nil {
		if errors.Is(err, document.ErrLinkNotFound) {
			writeError(w, http.StatusNotFound, "share link not found")
			return
		}
		s.logger.Error("share resolution failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"document_id": link.DocumentID})
}

// parseListOptions translates query parameters into list options. Limit
// is deliberately lenient (the service clamps it); timestamps, cursors
// and the time range are rejected when malformed.
func parseListOptions(r *http.Request) (event.ListOptions, error) {
	q := r.URL.Query()
	var opts event.ListOptions

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("invalid from timestamp")
		}
		opts.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("invalid to timestamp")
		}
		opts.To = &t
	}

	for _, raw := range q["groups"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Groups = append(opts.Groups, event.Group(name))
			}
		}
	}

	if provider := q.Get("provider"); provider != "" {
		opts.Provider = &provider
	}
	opts.Search = q.Get("search")

	if raw := q.Get("cursor"); raw != "" {
		cursor, err := event.ParseCursor(raw)
		if err != nil {
			return opts, err
		}
		opts.Cursor = &cursor
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			opts.Limit = limit
		}
	}

	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
