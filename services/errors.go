// Package services holds the marketplace core: bid submission gating, the
// bid-acceptance transaction, the payment escrow lifecycle and the wallet
// ledger. Sentinel errors below are the shared failure taxonomy; handlers
// translate them into HTTP responses with errors.Is.
package services

import "errors"

// ErrNotFound is returned when an entity reference does not resolve.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller identity does not match the
// owning student or tutor of the entity being operated on. Handlers should
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert collides with existing state, such
// as a tutor bidding twice on the same request. Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when an entity's current status does not
// permit the operation: bidding on an inactive request, accepting a
// non-pending bid, capturing a non-pending payment or releasing a non-paid
// one. Handlers should translate this into an HTTP 400 response.
var ErrInvalidState = errors.New("invalid state")
