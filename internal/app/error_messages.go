// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// devnet handlers and middleware.
//
// All Msg* constants are human-readable message strings written into the
// Message field of rejection bodies. Keeping them in one place keeps the
// wording consistent across routes.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected devnet failure
	// occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgInvalidObjectID is returned when a path parameter is not a hex
	// object id.
	MsgInvalidObjectID = "invalid object id"

	// MsgInvalidEventQuery is returned when the kind, cursor or limit query
	// parameter of an event query is missing or not a number.
	MsgInvalidEventQuery = "invalid event query"

	// MsgIdempotencyKeyMismatch is returned when the Idempotency-Key header
	// disagrees with the key inside the signed intent.
	MsgIdempotencyKeyMismatch = "idempotency key header does not match intent"

	// MsgRequestTokenMismatch is returned when the bearer token differs from
	// the request token carried in the session evidence.
	MsgRequestTokenMismatch = "bearer token does not match session evidence"

	// MsgBlobIntegrityFailed is returned when an uploaded blob does not hash
	// to the reference announced by the client.
	MsgBlobIntegrityFailed = "blob integrity check failed"

	// MsgRouteNotFound is returned for unknown routes and methods.
	MsgRouteNotFound = "route not found"
)
