// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the facility service.
const (
	EventBedAllocated  = "bed.allocated"
	EventBedWaitlisted = "bed.waitlisted"
	EventBedReleased   = "bed.released"
	EventStaffDeleted  = "staff.deleted"
	EventBillSettled   = "bill.settled"
)

// FacilityEvent is published after a state change that downstream
// consumers may want to log or act on without calling the API.  Id fields
// are always present since zero is a valid id; the event type says which
// of them apply.  Other fields that do not apply are omitted.
type FacilityEvent struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	PatientID     int     `json:"patient_id"`
	BedID         int     `json:"bed_id"`
	StaffID       int     `json:"staff_id"`
	Amount        float64 `json:"amount,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}

// NewEvent stamps an event of the given type with a fresh id and the
// current UTC time.
func NewEvent(eventType string) FacilityEvent {
	return FacilityEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
