// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators rejects malformed intents before they reach the ledger.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Usage patterns:
//  1. Build an intent in a service.
//  2. Call Validate with the intent and, optionally, the fields to check.
//  3. Submit only when Validate returns nil.
//
// Safe rule violations detectable without ledger state (threshold range,
// duplicate guardians, beneficiary without period) come back as the
// sentinels of package safe, so callers match one set of errors whether the
// client or the ledger rejected the intent.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
