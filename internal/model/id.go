package model

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// ErrInvalidID is returned when an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid ID format")

// IDGenerator hands out identities derived from the current time in
// milliseconds, the same shape as the tokens already present in stored data.
// Successive values from one generator are strictly increasing even when the
// clock does not advance between calls.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading the given clock.
// A nil clock means time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns the next numeric identity.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// NextString returns the next identity formatted as a decimal string.
func (g *IDGenerator) NextString() string {
	return strconv.FormatInt(g.Next(), 10)
}

// ParseTodoID parses a numeric to-do ID.
func ParseTodoID(s string) (int64, error) {
	return parseNumericID(s, "to-do")
}

// ParseSubjectID parses a numeric subject ID.
func ParseSubjectID(s string) (int64, error) {
	return parseNumericID(s, "subject")
}

func parseNumericID(s, kind string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid %s ID", ErrInvalidID, s, kind)
	}
	return id, nil
}

// FormatID formats a numeric ID for display and storage lookups.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
