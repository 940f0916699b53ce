package event

import "context"

// Repository provides persistence operations for activity events.
type Repository interface {
	Insert(ctx context.Context, orgID string, ev *Event) error
	List(ctx context.Context, orgID string, opts ListOptions) ([]Event, error)
}
