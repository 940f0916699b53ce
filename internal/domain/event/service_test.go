package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paperstack-io/paperstack/internal/domain/event"
	"github.com/paperstack-io/paperstack/internal/repository/mocks"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}

	var inserted *event.Event
	repo.On("Insert", ctx, "org1", mock.AnythingOfType("*event.Event")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(2).(*event.Event)
		}).
		Return(nil)

	svc := event.NewService(repo, nil)
	duration := int64(1250)
	ev, err := svc.Record(ctx, "org1", event.RecordRequest{
		Type:         event.TypeDocGenerate,
		Source:       "editor",
		TriggerRoute: "/documents/new",
		DurationMs:   &duration,
		Context:      map[string]any{"template": "pitch"},
	})
	require.NoError(t, err)
	require.Same(t, ev, inserted)
	require.Equal(t, event.TypeDocGenerate, ev.Type)
	require.False(t, ev.CreatedAt.IsZero())

	// Source, trigger route and duration fold into the context payload.
	require.JSONEq(t, `{
		"template": "pitch",
		"source": "editor",
		"trigger_route": "/documents/new",
		"duration_ms": 1250
	}`, ev.Context)
}

func TestRecordRejectsUnknownType(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	svc := event.NewService(repo, nil)

	_, err := svc.Record(ctx, "org1", event.RecordRequest{Type: event.Type("not_a_thing")})
	require.ErrorIs(t, err, event.ErrUnknownType)

	_, err = svc.Record(ctx, "", event.RecordRequest{Type: event.TypeAnalyze})
	require.ErrorIs(t, err, event.ErrInvalidInput)

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestTryRecordSwallowsFailures(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	repo.On("Insert", ctx, "org1", mock.Anything).Return(errors.New("db gone"))

	svc := event.NewService(repo, nil)
	// Must not panic or propagate anything.
	svc.TryRecord(ctx, "org1", event.RecordRequest{Type: event.TypeAnalyze})
	repo.AssertExpectations(t)
}

func TestListClampsLimit(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name      string
		requested int
		effective int
	}{
		{"default when omitted", 0, 50},
		{"default when negative", -3, 50},
		{"clamped to maximum", 500, 100},
		{"kept when in range", 25, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mocks.EventRepository{}
			repo.On("List", ctx, "org1", event.ListOptions{Limit: tc.effective}).
				Return([]event.Event{}, nil)

			svc := event.NewService(repo, nil)
			_, err := svc.List(ctx, "org1", event.ListOptions{Limit: tc.requested})
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestListNextCursor(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	full := make([]event.Event, 2)
	for i := range full {
		full[i] = event.Event{
			ID:        int64(10 - i),
			Type:      event.TypeAnalyze,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}

	repo := &mocks.EventRepository{}
	repo.On("List", ctx, "org1", event.ListOptions{Limit: 2}).Return(full, nil)

	svc := event.NewService(repo, nil)
	page, err := svc.List(ctx, "org1", event.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.NotNil(t, page.NextCursor)

	last := full[len(full)-1]
	require.Equal(t, event.EncodeCursor(event.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}), *page.NextCursor)

	// A short page means no further pages.
	repo2 := &mocks.EventRepository{}
	repo2.On("List", ctx, "org1", event.ListOptions{Limit: 50}).Return(full[:1], nil)

	page, err = event.NewService(repo2, nil).List(ctx, "org1", event.ListOptions{})
	require.NoError(t, err)
	require.Nil(t, page.NextCursor)
}

func TestListRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EventRepository{}
	svc := event.NewService(repo, nil)

	from := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err := svc.List(ctx, "org1", event.ListOptions{From: &from, To: &to})
	require.ErrorIs(t, err, event.ErrInvalidRange)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}
