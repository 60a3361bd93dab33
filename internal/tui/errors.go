// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/internal/service"
)

// ErrUserQuit is returned when a prompt is closed without an answer.
var ErrUserQuit = errors.New("prompt cancelled")

var humanMessages = []struct {
	err error
	msg string
}{
	{adapter.ErrSignatureDenied, "Signature request refused"},
	{adapter.ErrThresholdNotMet, "Not enough key servers are online, try again later"},
	{adapter.ErrInvalidFormat, "The stored ciphertext is damaged"},
	{crypto.ErrWrongPassphrase, "Wrong passphrase"},
	{service.ErrNoAccess, "This identity has no access to the vault"},
	{service.ErrNoSafe, "The vault has no safe"},
	{safe.ErrTooEarly, "The inactivity period has not elapsed yet"},
	{safe.ErrAlreadyClaimed, "The safe has already been claimed"},
	{safe.ErrNoCap, "The safe no longer holds the capability"},
	{safe.ErrNotAGuardian, "This identity is not a guardian of the safe"},
	{safe.ErrSafeDisabled, "The safe is disabled"},
}

// Humanize turns err into a one-line message for the terminal.
func Humanize(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range humanMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network is down or a collaborator is unreachable"
	}

	return err.Error()
}
