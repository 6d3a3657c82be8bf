package trip

import (
	"fmt"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// Status represents the planning lifecycle state of a trip.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusConfirmed Status = "confirmed"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

var validStatuses = map[Status]struct{}{
	StatusPlanning:  {},
	StatusConfirmed: {},
	StatusOngoing:   {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized trip status.
func (s Status) IsValid() bool {
	_, ok := validStatuses[s]
	return ok
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid trip status: %s", s))
	}
	return status, nil
}
