// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner   = models.MustAddress("0x01")
	guardA  = models.MustAddress("0x0a")
	guardB  = models.MustAddress("0x0b")
	vaultID = models.MustObjectID("0x7a")
	capID   = models.MustObjectID("0xca")
	safeID  = models.MustObjectID("0x5a")
)

var validItm = models.Item{
	VaultID:  vaultID,
	Name:     "github",
	Category: models.CategoryLogin,
	Nonce:    []byte{1, 2, 3},
	BlobRef:  "b3:00",
}

// ── Dispatch ─────────────────────────────────────────────────────────────────

func TestNewIntentValidator(t *testing.T) {
	require.NotNil(t, NewIntentValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewIntentValidator()
	ctx := context.Background()

	in := models.Intent{Kind: models.IntentSafeHeartbeat, Sender: owner, SafeID: safeID}
	assert.NoError(t, v.Validate(ctx, in))
	assert.NoError(t, v.Validate(ctx, &in))
	assert.NoError(t, v.Validate(ctx, validItm))
	assert.NoError(t, v.Validate(ctx, &validItm))
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, models.Intent{Kind: "vault.delete"}), ErrUnsupportedType)
}

// ── Intents ──────────────────────────────────────────────────────────────────

func TestValidateIntent_ByKind(t *testing.T) {
	item := validItm
	otherVaultItem := validItm
	otherVaultItem.VaultID = models.MustObjectID("0x99")

	tests := []struct {
		name    string
		intent  models.Intent
		wantErr error
	}{
		{
			name:   "vault create",
			intent: models.Intent{Kind: models.IntentVaultCreate, Sender: owner, Name: "personal"},
		},
		{
			name:    "vault create without name",
			intent:  models.Intent{Kind: models.IntentVaultCreate, Sender: owner},
			wantErr: ErrEmptyName,
		},
		{
			name:    "vault create name too long",
			intent:  models.Intent{Kind: models.IntentVaultCreate, Sender: owner, Name: strings.Repeat("x", MaxNameLength+1)},
			wantErr: ErrNameTooLong,
		},
		{
			name:    "missing sender",
			intent:  models.Intent{Kind: models.IntentSafeClaim, SafeID: safeID},
			wantErr: ErrMissingSender,
		},
		{
			name:   "add item",
			intent: models.Intent{Kind: models.IntentVaultAddItem, Sender: owner, VaultID: vaultID, CapID: capID, Item: &item},
		},
		{
			name:    "add item without item",
			intent:  models.Intent{Kind: models.IntentVaultAddItem, Sender: owner, VaultID: vaultID, CapID: capID},
			wantErr: ErrMissingItem,
		},
		{
			name:    "add item for another vault",
			intent:  models.Intent{Kind: models.IntentVaultAddItem, Sender: owner, VaultID: vaultID, CapID: capID, Item: &otherVaultItem},
			wantErr: ErrItemVaultID,
		},
		{
			name:    "add item without cap",
			intent:  models.Intent{Kind: models.IntentVaultAddItem, Sender: owner, VaultID: vaultID, Item: &item},
			wantErr: ErrMissingCapID,
		},
		{
			name: "create safe",
			intent: models.Intent{
				Kind: models.IntentSafeCreate, Sender: owner, VaultID: vaultID, CapID: capID,
				Guardians: []models.Address{guardA, guardB}, Threshold: 2,
				Deadman: &models.Deadman{Beneficiary: guardA, InactivityPeriod: 7 * 24 * time.Hour},
			},
		},
		{
			name: "create safe threshold above guardians",
			intent: models.Intent{
				Kind: models.IntentSafeCreate, Sender: owner, VaultID: vaultID, CapID: capID,
				Guardians: []models.Address{guardA}, Threshold: 2,
			},
			wantErr: safe.ErrInvalidThreshold,
		},
		{
			name: "create safe duplicate guardian",
			intent: models.Intent{
				Kind: models.IntentSafeCreate, Sender: owner, VaultID: vaultID, CapID: capID,
				Guardians: []models.Address{guardA, guardA}, Threshold: 1,
			},
			wantErr: safe.ErrDuplicateGuardian,
		},
		{
			name: "create safe beneficiary without period",
			intent: models.Intent{
				Kind: models.IntentSafeCreate, Sender: owner, VaultID: vaultID, CapID: capID,
				Deadman: &models.Deadman{Beneficiary: guardA},
			},
			wantErr: safe.ErrMissingBeneficiaryPeriod,
		},
		{
			name:    "vote without candidate",
			intent:  models.Intent{Kind: models.IntentSafeApproveRecovery, Sender: guardA, SafeID: safeID},
			wantErr: safe.ErrInvalidCandidate,
		},
		{
			name:    "disable without safe",
			intent:  models.Intent{Kind: models.IntentSafeDisable, Sender: owner},
			wantErr: ErrMissingSafeID,
		},
		{
			name:    "update guardians empty with threshold",
			intent:  models.Intent{Kind: models.IntentSafeUpdateGuardians, Sender: owner, SafeID: safeID, Threshold: 1},
			wantErr: safe.ErrInvalidThreshold,
		},
		{
			name:   "update deadman clears beneficiary",
			intent: models.Intent{Kind: models.IntentSafeUpdateDeadman, Sender: owner, SafeID: safeID},
		},
	}

	v := NewIntentValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.intent)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateIntent_ExplicitFields(t *testing.T) {
	v := NewIntentValidator()
	in := models.Intent{Kind: models.IntentSafeClaim, Sender: owner}

	assert.NoError(t, v.Validate(context.Background(), in, FieldSender))
	assert.ErrorIs(t, v.Validate(context.Background(), in, FieldSafeID), ErrMissingSafeID)
	assert.ErrorIs(t, v.Validate(context.Background(), in, "bogus"), ErrUnknownField)
}

// ── Items ────────────────────────────────────────────────────────────────────

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Item)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Item) {}},
		{name: "no name", mutate: func(i *models.Item) { i.Name = "" }, wantErr: ErrEmptyName},
		{name: "bad category", mutate: func(i *models.Item) { i.Category = "crypto" }, wantErr: ErrInvalidCategory},
		{name: "no nonce", mutate: func(i *models.Item) { i.Nonce = nil }, wantErr: ErrEmptyNonce},
		{name: "no blob", mutate: func(i *models.Item) { i.BlobRef = "" }, wantErr: ErrEmptyBlobRef},
	}

	v := NewIntentValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItm
			tt.mutate(&item)
			err := v.Validate(context.Background(), item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory(models.CategoryNote))
	assert.False(t, IsValidCategory(""))
}

func TestValidateItemInput(t *testing.T) {
	assert.NoError(t, ValidateItemInput("bank", models.CategoryCard))
	assert.ErrorIs(t, ValidateItemInput("", models.CategoryCard), ErrEmptyName)
	assert.ErrorIs(t, ValidateItemInput("bank", "wallet"), ErrInvalidCategory)
}
