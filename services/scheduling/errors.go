package scheduling

import (
	"errors"
	"fmt"

	"slotify/models"
)

// ConflictKind classifies why a candidate window was rejected.
type ConflictKind string

const (
	KindOverlap             ConflictKind = "overlap"
	KindOutsideWorkingHours ConflictKind = "outside_working_hours"
	KindPastDate            ConflictKind = "past_date"
)

// ValidationError rejects malformed input before any computation begins.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ConflictError is a pre-commit rejection of a candidate window. Overlap
// conflicts are recoverable: the caller may retry with forceOverride or
// re-fetch availability. Outside-working-hours and past-date conflicts
// are always fatal, forceOverride included.
type ConflictError struct {
	Kind   ConflictKind    `json:"kind"`
	Date   string          `json:"date"`
	Window models.Interval `json:"window"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: window [%d, %d) on %s", e.Kind, e.Window.Start, e.Window.End, e.Date)
}

func overlapConflict(date string, w models.Interval) error {
	return &ConflictError{Kind: KindOverlap, Date: date, Window: w}
}

func outsideWorkingHours(date string, w models.Interval) error {
	return &ConflictError{Kind: KindOutsideWorkingHours, Date: date, Window: w}
}

func pastDate(date string, w models.Interval) error {
	return &ConflictError{Kind: KindPastDate, Date: date, Window: w}
}

// CommitConflictError means the race was lost at write time: the window
// was free when availability was read but taken by commit. The caller's
// availability view is stale and must be re-fetched; retrying the same
// write is pointless.
type CommitConflictError struct {
	Date   string          `json:"date"`
	Window models.Interval `json:"window"`
}

func (e *CommitConflictError) Error() string {
	return fmt.Sprintf("window [%d, %d) on %s was taken at commit time", e.Window.Start, e.Window.End, e.Date)
}

// IsConflict reports whether err is a pre-commit conflict of the given kind.
func IsConflict(err error, kind ConflictKind) bool {
	var ce *ConflictError
	return errors.As(err, &ce) && ce.Kind == kind
}
