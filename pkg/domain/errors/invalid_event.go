package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidEvent *invalidEventError

type invalidEventError struct {
	EventID string
	Reason  string
}

func (e *invalidEventError) Error() string {
	return fmt.Sprintf("moderation event '%s' is invalid: %s", e.EventID, e.Reason)
}

// NewInvalidEventError marks history the engine cannot safely score around,
// e.g. a moderated event with a non-positive cost.
func NewInvalidEventError(eventID, reason string) error {
	return &invalidEventError{
		EventID: eventID,
		Reason:  reason,
	}
}

func IsInvalidEvent(err error) bool {
	var target *invalidEventError
	return errors.As(err, &target)
}
