package domain

import (
	"fmt"
	"strings"
)

// Status enumerates order progression. Pending is the only non-terminal state.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

// ParseStatus matches a status name case-insensitively and rejects anything else.
func ParseStatus(raw string) (Status, error) {
	value := strings.TrimSpace(raw)
	for _, status := range Statuses {
		if strings.EqualFold(value, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Valid reports whether s is one of the known statuses in canonical form.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Rank is the lifecycle position used when sorting by status.
func (s Status) Rank() int {
	for i, status := range Statuses {
		if status == s {
			return i
		}
	}
	return len(Statuses)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}

// MarshalText writes the canonical status name.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return []byte(s), nil
}

// UnmarshalText accepts any casing of a known status.
func (s *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}
