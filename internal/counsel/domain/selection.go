package domain

import (
	"errors"
	"fmt"
)

// SelectionStatus is the state of a university in a user's list.
type SelectionStatus string

const (
	StatusShortlisted SelectionStatus = "shortlisted"
	StatusLocked      SelectionStatus = "locked"
)

var ErrInvalidStatus = errors.New("invalid selection status")

// ParseSelectionStatus accepts only the two known statuses.
func ParseSelectionStatus(s string) (SelectionStatus, error) {
	switch SelectionStatus(s) {
	case StatusShortlisted, StatusLocked:
		return SelectionStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s SelectionStatus) String() string { return string(s) }

// Selection is one row of a user's shortlist. UniversityID is an opaque key
// into the static catalog and is not checked against it.
type Selection struct {
	ID           int64
	UserID       int64
	UniversityID string
	Status       SelectionStatus
}
