package order

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

var (
	// ErrInvalidStatus is returned by ParseStatus for text outside the closed status set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrIllegalTransition is returned when the current status is not the
	// predecessor of the requested one.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Status is the production stage of an order. It only moves forward:
//
//	Received ──> InProgress ──> Ready ──> Delivered
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Received
	InProgress
	Ready
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Received:   "Received",
		InProgress: "InProgress",
		Ready:      "Ready",
		Delivered:  "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:   "Received",
		InProgress: "InProgress",
		Ready:      "Ready",
		Delivered:  "Delivered",
	}
}

// ParseStatus maps a status name to its value, ignoring case and surrounding
// whitespace. "Unknown" and anything outside the set fail with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	name := strings.TrimSpace(s)
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%w: %q", ErrInvalidStatus, s))
}

func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether an order in this status belongs to the production queue.
func (s Status) IsActive() bool {
	return s == Received || s == InProgress || s == Ready
}

// HasReached reports whether s is stage or a later stage.
func (s Status) HasReached(stage Status) bool {
	return s.Validate() == nil && s >= stage
}

// Start moves Received to InProgress.
func (s Status) Start() (Status, error) {
	return s.advance(Received, InProgress)
}

// Finish moves InProgress to Ready.
func (s Status) Finish() (Status, error) {
	return s.advance(InProgress, Ready)
}

// Deliver moves Ready to Delivered. Delivered is terminal.
func (s Status) Deliver() (Status, error) {
	return s.advance(Ready, Delivered)
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%w: %s to %s", ErrIllegalTransition, s, to),
		)
	}
	return to, nil
}
