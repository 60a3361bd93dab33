// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package safe

import "errors"

// Validation errors. They are detected before an intent is submitted.
var (
	// ErrInvalidThreshold is returned when threshold is outside
	// [1, len(guardians)] for a non-empty guardian set, or non-zero for an
	// empty one.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrMissingBeneficiaryPeriod is returned when a beneficiary is set
	// without a positive inactivity period.
	ErrMissingBeneficiaryPeriod = errors.New("beneficiary requires a positive inactivity period")
	// ErrDuplicateGuardian is returned when the guardian list repeats an
	// address.
	ErrDuplicateGuardian = errors.New("duplicate guardian")
	// ErrInvalidCandidate is returned when a recovery vote names no candidate.
	ErrInvalidCandidate = errors.New("invalid recovery candidate")
)

// Authorization errors.
var (
	// ErrUnauthorized is returned when the caller lacks the role the
	// operation requires (owner, beneficiary, cap holder).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAGuardian is returned when a recovery vote comes from an address
	// outside the guardian set.
	ErrNotAGuardian = errors.New("caller is not a guardian")
)

// Timing and lifecycle errors.
var (
	// ErrTooEarly is returned when a deadman claim arrives before
	// last_activity + inactivity_period.
	ErrTooEarly = errors.New("inactivity period has not elapsed")
	// ErrAlreadyClaimed is returned for any mutation of a claimed Safe.
	ErrAlreadyClaimed = errors.New("safe already claimed")
	// ErrNoCap is returned when the Safe no longer escrows its Cap.
	ErrNoCap = errors.New("safe does not hold the cap")
	// ErrSafeDisabled is returned for mutations of a disabled Safe.
	ErrSafeDisabled = errors.New("safe is disabled")
	// ErrCapMismatch is returned when a Cap does not belong to the Vault
	// named in the same intent.
	ErrCapMismatch = errors.New("cap does not match vault")
)

var reasonCodes = map[error]string{
	ErrInvalidThreshold:         "InvalidThreshold",
	ErrMissingBeneficiaryPeriod: "MissingBeneficiaryPeriod",
	ErrDuplicateGuardian:        "DuplicateGuardian",
	ErrInvalidCandidate:         "InvalidCandidate",
	ErrUnauthorized:             "Unauthorized",
	ErrNotAGuardian:             "NotAGuardian",
	ErrTooEarly:                 "TooEarly",
	ErrAlreadyClaimed:           "AlreadyClaimed",
	ErrNoCap:                    "NoCap",
	ErrSafeDisabled:             "SafeDisabled",
	ErrCapMismatch:              "CapMismatch",
}

// ReasonCode returns the wire reason for a protocol error, or "" when err
// is not one.
func ReasonCode(err error) string {
	for sentinel, code := range reasonCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// FromReasonCode maps a wire reason back to its sentinel. It returns nil
// for unknown codes.
func FromReasonCode(code string) error {
	for sentinel, c := range reasonCodes {
		if c == code {
			return sentinel
		}
	}
	return nil
}

// IsValidation reports whether err is rejected before submission.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidThreshold) ||
		errors.Is(err, ErrMissingBeneficiaryPeriod) ||
		errors.Is(err, ErrDuplicateGuardian) ||
		errors.Is(err, ErrInvalidCandidate)
}

// ErrUnsupportedIntent is returned by Apply for non-transition intents.
var ErrUnsupportedIntent = errors.New("unsupported intent")
