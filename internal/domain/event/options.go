package event

import "time"

// ListOptions provides filtering options for listing events. From and To
// are inclusive bounds on the creation timestamp; Cursor is an exclusive
// upper bound for reverse-chronological paging.
type ListOptions struct {
	From     *time.Time
	To       *time.Time
	Groups   []Group
	Provider *string
	Search   string
	Cursor   *Cursor
	Limit    int
}
