package model

// Bed is a read-only snapshot of one slot in the bed allocation index.
// Beds are created once and never removed; only their availability
// changes after creation.
//
// Fields:
//  ID        – bed number, the ordering key of the index.
//  Available – whether the bed can be handed to a patient.
type Bed struct {
	ID        int  `json:"id"`
	Available bool `json:"available"`
}
