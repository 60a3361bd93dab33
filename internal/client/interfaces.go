// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// Prompter asks the user for decisions the CLI cannot make alone. The
// terminal implementation lives in internal/tui.
type Prompter interface {
	// Approve reports whether req may be signed.
	Approve(ctx context.Context, req models.SignatureRequest) (bool, error)
	// Passphrase reads the keystore passphrase, twice when confirm is set.
	Passphrase(ctx context.Context, confirm bool) (string, error)
}
