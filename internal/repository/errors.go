// Package repository holds the in-memory structures that back the
// facility: the bed allocation index, the staff directory and the
// billing ledger. The sentinel values below allow higher layers such
// as handlers to distinguish between failure scenarios. Expected
// outcomes like "not found" or "no free bed" are reported through
// return values instead.
package repository

import "errors"

// ErrInvalidArgument is returned when a caller passes a value that
// would break a structure invariant, such as a negative staff id or a
// non-positive initial capacity. Handlers should translate this into
// an HTTP 400 response.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrDuplicateKey is returned when inserting a staff id that is
// already present. The existing record is left untouched. Handlers
// should translate this into an HTTP 409 response.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrEmptyLedger is returned when paying the largest pending bill
// while no bills are pending.
var ErrEmptyLedger = errors.New("no pending bills")
