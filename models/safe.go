// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"slices"
	"time"
)

// SafeState is the lifecycle position of a Safe.
type SafeState string

const (
	SafeNone           SafeState = "no_safe"
	SafeActive         SafeState = "active"
	SafeDeadmanClaimed SafeState = "deadman_claimed"
	SafeDisabled       SafeState = "disabled"
)

// Deadman configures inactivity inheritance. A nil *Deadman on a Safe means
// no beneficiary is set and the period is ignored.
type Deadman struct {
	Beneficiary      Address       `json:"beneficiary"`
	InactivityPeriod time.Duration `json:"inactivity_period"`
}

// Safe escrows a Vault's Cap and carries recovery and inheritance settings.
//
// Cap is non-nil exactly while the Cap is escrowed here; claim and disable
// move it out, leaving Cap nil.
type Safe struct {
	ID             ObjectID              `json:"id"`
	VaultID        ObjectID              `json:"vault_id"`
	Owner          Address               `json:"owner"`
	Cap            *Cap                  `json:"cap,omitempty"`
	Guardians      []Address             `json:"guardians"`
	Threshold      int                   `json:"threshold"`
	RecoveryVotes  map[Address][]Address `json:"recovery_votes"`
	Deadman        *Deadman              `json:"deadman,omitempty"`
	LastActivity   time.Time             `json:"last_activity"`
	DeadmanClaimed bool                  `json:"deadman_claimed"`
	Disabled       bool                  `json:"disabled"`
	Version        uint64                `json:"version"`
}

// HasCap reports whether the Cap is currently escrowed in the Safe.
func (s *Safe) HasCap() bool {
	return s != nil && s.Cap != nil
}

// State derives the lifecycle state from the Safe's flags.
func (s *Safe) State() SafeState {
	switch {
	case s == nil:
		return SafeNone
	case s.DeadmanClaimed:
		return SafeDeadmanClaimed
	case s.Disabled:
		return SafeDisabled
	default:
		return SafeActive
	}
}

// IsGuardian reports whether addr is in the guardian set.
func (s *Safe) IsGuardian(addr Address) bool {
	return slices.Contains(s.Guardians, addr)
}

// Votes returns how many distinct guardians voted for candidate.
func (s *Safe) Votes(candidate Address) int {
	return len(s.RecoveryVotes[candidate])
}

// ClaimableAt returns the earliest time a beneficiary may claim, and false
// when no beneficiary is configured.
func (s *Safe) ClaimableAt() (time.Time, bool) {
	if s.Deadman == nil {
		return time.Time{}, false
	}
	return s.LastActivity.Add(s.Deadman.InactivityPeriod), true
}

// Clone returns a deep copy so transitions never touch the caller's value.
func (s *Safe) Clone() *Safe {
	if s == nil {
		return nil
	}
	c := *s
	if s.Cap != nil {
		capCopy := *s.Cap
		c.Cap = &capCopy
	}
	if s.Deadman != nil {
		d := *s.Deadman
		c.Deadman = &d
	}
	c.Guardians = slices.Clone(s.Guardians)
	c.RecoveryVotes = make(map[Address][]Address, len(s.RecoveryVotes))
	for k, v := range maps.All(s.RecoveryVotes) {
		c.RecoveryVotes[k] = slices.Clone(v)
	}
	return &c
}
