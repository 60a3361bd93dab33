// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package safe implements the Safe protection rules: capability escrow,
// guardian recovery and deadman inheritance.
//
// Every transition is a pure function of (Safe, caller, now). It works on a
// clone and returns the new value, so a failed call never changes the input.
// The client uses these functions to check preconditions before submitting
// an intent; the devnet ledger uses the same functions to enforce them.
package safe

import (
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// Result is the outcome of a successful transition.
type Result struct {
	Safe   *models.Safe
	Events []models.Event
	// Released is the Cap moved out of escrow by claim or disable. It is
	// already re-homed to its new direct holder.
	Released *models.Cap
}

// Create escrows capToken in a new Safe owned by owner. capToken must currently be
// held directly by owner.
func Create(
	id models.ObjectID,
	owner models.Address,
	capToken *models.Cap,
	guardians []models.Address,
	threshold int,
	deadman *models.Deadman,
	now time.Time,
) (Result, error) {
	if capToken == nil || !capToken.HeldDirectlyBy(owner) {
		return Result{}, ErrUnauthorized
	}
	if err := ValidateGuardians(guardians, threshold); err != nil {
		return Result{}, err
	}
	dm, err := NormalizeDeadman(deadman)
	if err != nil {
		return Result{}, err
	}

	escrowed := *capToken
	escrowed.Holder = models.HeldEscrowed{SafeID: id}

	s := &models.Safe{
		ID:            id,
		VaultID:       capToken.VaultID,
		Owner:         owner,
		Cap:           &escrowed,
		Guardians:     slices.Clone(guardians),
		Threshold:     threshold,
		RecoveryVotes: map[models.Address][]models.Address{},
		Deadman:       dm,
		LastActivity:  now,
		Version:       1,
	}
	return Result{Safe: s, Events: []models.Event{event(s, models.EventSafeCreated, now, func(e *models.Event) {
		e.Owner = owner
	})}}, nil
}

// Heartbeat records owner activity, pushing back the deadman deadline.
func Heartbeat(cur *models.Safe, caller models.Address, now time.Time) (Result, error) {
	if err := mutable(cur); err != nil {
		return Result{}, err
	}
	if caller != cur.Owner {
		return Result{}, ErrUnauthorized
	}

	s := cur.Clone()
	s.LastActivity = now
	s.Version++
	return Result{Safe: s, Events: []models.Event{event(s, models.EventSafeHeartbeat, now, func(e *models.Event) {
		e.Owner = s.Owner
	})}}, nil
}

// ApproveRecovery records guardian's vote for candidate. Once candidate has
// threshold distinct votes the owner changes, every pending vote is
// discarded and LastActivity is reset to now, so the new owner starts a
// fresh inactivity period. A vote that does not execute leaves LastActivity
// alone. Re-submitting a vote that already landed succeeds with no events.
func ApproveRecovery(cur *models.Safe, guardian, candidate models.Address, now time.Time) (Result, error) {
	if err := mutable(cur); err != nil {
		return Result{}, err
	}
	if !cur.IsGuardian(guardian) {
		return Result{}, ErrNotAGuardian
	}
	if candidate.IsZero() {
		return Result{}, ErrInvalidCandidate
	}

	voters := cur.RecoveryVotes[candidate]
	if slices.Contains(voters, guardian) {
		return Result{Safe: cur.Clone()}, nil
	}

	s := cur.Clone()
	s.RecoveryVotes[candidate] = append(s.RecoveryVotes[candidate], guardian)
	s.Version++
	events := []models.Event{event(s, models.EventRecoveryVoteCast, now, func(e *models.Event) {
		e.Guardian = guardian
		e.Candidate = candidate
		e.Votes = len(s.RecoveryVotes[candidate])
	})}

	if s.Threshold > 0 && len(s.RecoveryVotes[candidate]) >= s.Threshold {
		old := s.Owner
		s.Owner = candidate
		s.RecoveryVotes = map[models.Address][]models.Address{}
		s.LastActivity = now
		events = append(events, event(s, models.EventRecoveryExecuted, now, func(e *models.Event) {
			e.OldOwner = old
			e.NewOwner = candidate
		}))
	}
	return Result{Safe: s, Events: events}, nil
}

// Claim hands the escrowed Cap to the beneficiary once the owner has been
// inactive for the configured period.
func Claim(cur *models.Safe, caller models.Address, now time.Time) (Result, error) {
	if cur == nil {
		return Result{}, ErrNoCap
	}
	if cur.Deadman == nil || caller != cur.Deadman.Beneficiary {
		return Result{}, ErrUnauthorized
	}
	if cur.DeadmanClaimed {
		return Result{}, ErrAlreadyClaimed
	}
	if !cur.HasCap() {
		return Result{}, ErrNoCap
	}
	if deadline, _ := cur.ClaimableAt(); now.Before(deadline) {
		return Result{}, ErrTooEarly
	}

	s := cur.Clone()
	released := takeCap(s, caller)
	s.DeadmanClaimed = true
	s.Version++
	return Result{
		Safe:     s,
		Released: released,
		Events: []models.Event{event(s, models.EventDeadmanClaimed, now, func(e *models.Event) {
			e.Beneficiary = caller
			e.PriorOwner = s.Owner
		})},
	}, nil
}

// UpdateDeadman replaces the inheritance settings. A nil deadman, or one
// without a beneficiary, removes inheritance.
func UpdateDeadman(cur *models.Safe, caller models.Address, deadman *models.Deadman, now time.Time) (Result, error) {
	if err := mutable(cur); err != nil {
		return Result{}, err
	}
	if caller != cur.Owner {
		return Result{}, ErrUnauthorized
	}
	dm, err := NormalizeDeadman(deadman)
	if err != nil {
		return Result{}, err
	}

	s := cur.Clone()
	s.Deadman = dm
	s.Version++
	return Result{Safe: s, Events: []models.Event{event(s, models.EventDeadmanUpdated, now, func(e *models.Event) {
		e.Owner = s.Owner
		if dm != nil {
			e.Beneficiary = dm.Beneficiary
		}
	})}}, nil
}

// UpdateGuardians replaces the guardian set. Votes cast by addresses that
// are no longer guardians are dropped. Recovery is not executed here even
// if a remaining candidate now meets a lower threshold; the next vote
// triggers it.
func UpdateGuardians(cur *models.Safe, caller models.Address, guardians []models.Address, threshold int, now time.Time) (Result, error) {
	if err := mutable(cur); err != nil {
		return Result{}, err
	}
	if caller != cur.Owner {
		return Result{}, ErrUnauthorized
	}
	if err := ValidateGuardians(guardians, threshold); err != nil {
		return Result{}, err
	}

	s := cur.Clone()
	s.Guardians = slices.Clone(guardians)
	s.Threshold = threshold
	for candidate, voters := range maps.All(s.RecoveryVotes) {
		kept := slices.DeleteFunc(voters, func(v models.Address) bool { return !s.IsGuardian(v) })
		if len(kept) == 0 {
			delete(s.RecoveryVotes, candidate)
			continue
		}
		s.RecoveryVotes[candidate] = kept
	}
	s.Version++
	return Result{Safe: s, Events: []models.Event{event(s, models.EventGuardiansUpdated, now, func(e *models.Event) {
		e.Owner = s.Owner
	})}}, nil
}

// Disable returns the Cap to the owner's direct holding and retires the
// Safe.
func Disable(cur *models.Safe, caller models.Address, now time.Time) (Result, error) {
	if err := mutable(cur); err != nil {
		return Result{}, err
	}
	if caller != cur.Owner {
		return Result{}, ErrUnauthorized
	}
	if !cur.HasCap() {
		return Result{}, ErrNoCap
	}

	s := cur.Clone()
	released := takeCap(s, s.Owner)
	s.Disabled = true
	s.RecoveryVotes = map[models.Address][]models.Address{}
	s.Version++
	return Result{
		Safe:     s,
		Released: released,
		Events: []models.Event{event(s, models.EventSafeDisabled, now, func(e *models.Event) {
			e.Owner = s.Owner
		})},
	}, nil
}

// mutable rejects transitions on Safes that left the Active state.
func mutable(s *models.Safe) error {
	switch s.State() {
	case models.SafeNone:
		return ErrNoCap
	case models.SafeDeadmanClaimed:
		return ErrAlreadyClaimed
	case models.SafeDisabled:
		return ErrSafeDisabled
	}
	return nil
}

// takeCap moves the Cap out of s and re-homes it to holder. s is left
// without a Cap.
func takeCap(s *models.Safe, holder models.Address) *models.Cap {
	c := s.Cap
	s.Cap = nil
	c.Holder = models.HeldDirect{Owner: holder}
	return c
}

func event(s *models.Safe, kind models.EventKind, now time.Time, fill func(*models.Event)) models.Event {
	e := models.Event{Kind: kind, SafeID: s.ID, VaultID: s.VaultID, Timestamp: now}
	fill(&e)
	return e
}
