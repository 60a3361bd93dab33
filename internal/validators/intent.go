package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-safe-keeper/internal/safe"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// Field names accepted by [IntentValidator.Validate].
const (
	FieldSender    = "sender"
	FieldVaultID   = "vault_id"
	FieldCapID     = "cap_id"
	FieldSafeID    = "safe_id"
	FieldName      = "name"
	FieldItem      = "item"
	FieldCandidate = "candidate"
	FieldGuardians = "guardians"
	FieldDeadman   = "deadman"
)

// MaxNameLength bounds vault and item names.
const MaxNameLength = 256

var allowedCategories = []models.ItemCategory{
	models.CategoryLogin,
	models.CategoryNote,
	models.CategoryCard,
	models.CategoryFile,
}

// fieldsByKind lists what each intent kind must carry.
var fieldsByKind = map[models.IntentKind][]string{
	models.IntentVaultCreate:         {FieldSender, FieldName},
	models.IntentVaultAddItem:        {FieldSender, FieldVaultID, FieldCapID, FieldItem},
	models.IntentSafeCreate:          {FieldSender, FieldVaultID, FieldCapID, FieldGuardians, FieldDeadman},
	models.IntentSafeHeartbeat:       {FieldSender, FieldSafeID},
	models.IntentSafeApproveRecovery: {FieldSender, FieldSafeID, FieldCandidate},
	models.IntentSafeClaim:           {FieldSender, FieldSafeID},
	models.IntentSafeUpdateDeadman:   {FieldSender, FieldSafeID, FieldDeadman},
	models.IntentSafeUpdateGuardians: {FieldSender, FieldSafeID, FieldGuardians},
	models.IntentSafeDisable:         {FieldSender, FieldSafeID},
}

// IntentValidator checks intents field by field. Without explicit fields
// it checks everything the intent's kind requires.
type IntentValidator struct{}

// NewIntentValidator constructs an [IntentValidator].
func NewIntentValidator() Validator {
	return &IntentValidator{}
}

func (v *IntentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Intent:
		return v.validateIntent(ctx, value, fields...)
	case *models.Intent:
		return v.validateIntent(ctx, *value, fields...)

	case models.Item:
		return v.validateItem(value)
	case *models.Item:
		return v.validateItem(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *IntentValidator) validateIntent(ctx context.Context, in models.Intent, fields ...string) error {
	if len(fields) == 0 {
		required, ok := fieldsByKind[in.Kind]
		if !ok {
			return fmt.Errorf("%w: intent kind %q", ErrUnsupportedType, in.Kind)
		}
		fields = required
	}

	for _, f := range fields {
		switch f {
		case FieldSender:
			if in.Sender.IsZero() {
				return ErrMissingSender
			}
		case FieldVaultID:
			if in.VaultID.IsZero() {
				return ErrMissingVaultID
			}
		case FieldCapID:
			if in.CapID.IsZero() {
				return ErrMissingCapID
			}
		case FieldSafeID:
			if in.SafeID.IsZero() {
				return ErrMissingSafeID
			}
		case FieldName:
			if err := validateName(in.Name); err != nil {
				return err
			}
		case FieldItem:
			if in.Item == nil {
				return ErrMissingItem
			}
			if err := v.validateItem(*in.Item); err != nil {
				return err
			}
			if in.Item.VaultID != "" && in.Item.VaultID != in.VaultID {
				return ErrItemVaultID
			}
		case FieldCandidate:
			if in.Candidate.IsZero() {
				return safe.ErrInvalidCandidate
			}
		case FieldGuardians:
			if err := safe.ValidateGuardians(in.Guardians, in.Threshold); err != nil {
				return err
			}
		case FieldDeadman:
			if _, err := safe.NormalizeDeadman(in.Deadman); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *IntentValidator) validateItem(item models.Item) error {
	if err := ValidateItemInput(item.Name, item.Category); err != nil {
		return err
	}
	if len(item.Nonce) == 0 {
		return ErrEmptyNonce
	}
	if item.BlobRef == "" {
		return ErrEmptyBlobRef
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidateItemInput checks user input before anything is sealed.
func ValidateItemInput(name string, category models.ItemCategory) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}
	return nil
}

// IsValidCategory reports whether c is a known item category.
func IsValidCategory(c models.ItemCategory) bool {
	return slices.Contains(allowedCategories, c)
}
