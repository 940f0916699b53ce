package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor marks the last row a caller has seen. Paging compares
// (created_at, id) lexicographically so rows sharing a timestamp are
// neither skipped nor repeated.
type Cursor struct {
	CreatedAt time.Time
	ID        int64
}

// EncodeCursor renders a cursor as an opaque token.
func EncodeCursor(c Cursor) string {
	return fmt.Sprintf("%d:%d", c.CreatedAt.UnixMicro(), c.ID)
}

// ParseCursor decodes a token produced by EncodeCursor.
func ParseCursor(token string) (Cursor, error) {
	ts, id, ok := strings.Cut(token, ":")
	if !ok {
		return Cursor{}, ErrInvalidCursor
	}
	micros, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{CreatedAt: time.UnixMicro(micros).UTC(), ID: rowID}, nil
}
