package collection

import (
	"errors"
	"fmt"
)

// Outcome classifies a Verdict.
type Outcome int

const (
	Accepted Outcome = iota
	Rejected
	Warned
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Warned:
		return "warned"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Verdict is the result of a guard. Anything other than Accepted aborts the
// mutation with no state change. Warned marks a harmless no-op, such as
// setting a status the entity already has.
type Verdict struct {
	Outcome Outcome
	Field   string // offending field, if any
	Reason  string
}

// Accept returns an accepting verdict.
func Accept() Verdict {
	return Verdict{Outcome: Accepted}
}

// Reject returns a rejecting verdict for field.
func Reject(field, format string, args ...any) Verdict {
	return Verdict{Outcome: Rejected, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Warn returns a warning verdict.
func Warn(format string, args ...any) Verdict {
	return Verdict{Outcome: Warned, Reason: fmt.Sprintf(format, args...)}
}

// OK reports whether the mutation may proceed.
func (v Verdict) OK() bool {
	return v.Outcome == Accepted
}

// Err returns nil for an accepting verdict and a *RejectionError otherwise.
func (v Verdict) Err() error {
	if v.OK() {
		return nil
	}
	return &RejectionError{Verdict: v}
}

// RejectionError reports a mutation aborted by a guard.
type RejectionError struct {
	Verdict
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Warning reports whether the rejection is only a warning.
func (e *RejectionError) Warning() bool {
	return e.Outcome == Warned
}

// AsRejection unwraps err into a *RejectionError if it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// NotFoundError indicates no entity has the given identity.
type NotFoundError struct {
	Kind string // "course", "classroom", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsDuplicateKey reports whether some element of items other than the one
// identified by excludeID has key value candidate. Comparison is exact.
func IsDuplicateKey[T any](items []T, id, key func(*T) string, candidate, excludeID string) bool {
	for i := range items {
		if excludeID != "" && id(&items[i]) == excludeID {
			continue
		}
		if key(&items[i]) == candidate {
			return true
		}
	}
	return false
}
