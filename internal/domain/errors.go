package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnreachable       = errors.New("unreachable destination")
	ErrPartialCompletion = errors.New("partial completion")
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrPlanNotFound      = errors.New("plan not found")
)

// InputError identifies the malformed record that rejected a scenario.
// Index is the zero-based position within its section, or -1 for meta fields.
type InputError struct {
	Record string
	Index  int
	ID     int
	Reason string
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid %s: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("invalid %s at index %d (id=%d): %s", e.Record, e.Index, e.ID, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// UnreachableError reports a run that cannot get back to the depot.
type UnreachableError struct {
	Vehicle string
	From    int
	To      int
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("%s: no path from location %d back to depot %d", e.Vehicle, e.From, e.To)
}

func (e *UnreachableError) Unwrap() error { return ErrUnreachable }

// PartialCompletionError is returned alongside a usable report when some
// demand can never be reached from the depot.
type PartialCompletionError struct {
	Unserved []int
	Names    []string
}

func (e *PartialCompletionError) Error() string {
	label := e.Names
	if len(label) == 0 {
		label = make([]string, 0, len(e.Unserved))
		for _, id := range e.Unserved {
			label = append(label, fmt.Sprint(id))
		}
	}
	return fmt.Sprintf("dispatch stopped with unreachable demand at: %s", strings.Join(label, ", "))
}

func (e *PartialCompletionError) Unwrap() error { return ErrPartialCompletion }
