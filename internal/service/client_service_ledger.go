package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/utils"
	"github.com/MKhiriev/go-safe-keeper/internal/validators"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// intentSubmitter stamps, validates, signs and submits intents, then
// forwards the confirmed events to the publisher.
type intentSubmitter struct {
	ledger    adapter.Ledger
	identity  adapter.IdentityProvider
	validator validators.Validator
	publisher adapter.EventPublisher
	ids       *utils.UUIDGenerator
}

func newIntentSubmitter(
	ledger adapter.Ledger,
	identity adapter.IdentityProvider,
	validator validators.Validator,
	publisher adapter.EventPublisher,
) *intentSubmitter {
	return &intentSubmitter{
		ledger:    ledger,
		identity:  identity,
		validator: validator,
		publisher: publisher,
		ids:       utils.NewUUIDGenerator(),
	}
}

// conflictResubmits bounds how often an intent rejected with
// [adapter.ErrVersionConflict] is re-signed under a fresh idempotency key.
const conflictResubmits = 2

// submit fills Sender and IdempotencyKey. Validation errors are returned
// before the identity is asked to sign anything. A version conflict means
// the ledger evaluated the intent against a newer object, so the intent is
// signed again as a new submission instead of resending the same bytes.
func (s *intentSubmitter) submit(ctx context.Context, in models.Intent) (models.Confirmation, error) {
	log := logger.FromContext(ctx)

	if s.identity == nil {
		return models.Confirmation{}, ErrNoIdentity
	}
	in.Sender = s.identity.Address()
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = s.ids.Generate()
	}

	if err := s.validator.Validate(ctx, in); err != nil {
		log.Debug().Err(err).Str("func", "intentSubmitter.submit").Str("intent", string(in.Kind)).Msg("intent rejected by validation")
		return models.Confirmation{}, err
	}

	for attempt := 0; ; attempt++ {
		conf, err := s.signAndSubmit(ctx, in)
		if errors.Is(err, adapter.ErrVersionConflict) && attempt < conflictResubmits {
			log.Debug().Err(err).Str("func", "intentSubmitter.submit").
				Str("intent", string(in.Kind)).
				Int("attempt", attempt+1).
				Msg("resubmitting intent after version conflict")
			in.IdempotencyKey = s.ids.Generate()
			continue
		}
		if err != nil {
			return models.Confirmation{}, err
		}

		if s.publisher != nil && len(conf.Events) > 0 {
			if pubErr := s.publisher.Publish(ctx, conf.Events...); pubErr != nil {
				// the intent is already final on the ledger
				log.Warn().Err(pubErr).Str("func", "intentSubmitter.submit").Msg("error publishing events")
			}
		}

		log.Info().Str("func", "intentSubmitter.submit").
			Str("intent", string(in.Kind)).
			Str("digest", conf.Digest).
			Int("events", len(conf.Events)).
			Msg("intent confirmed")
		return conf, nil
	}
}

func (s *intentSubmitter) signAndSubmit(ctx context.Context, in models.Intent) (models.Confirmation, error) {
	payload, err := crypto.Marshal(in)
	if err != nil {
		return models.Confirmation{}, fmt.Errorf("encode intent: %w", err)
	}
	sig, err := s.identity.RequestSignature(ctx, models.SignatureRequest{
		Purpose: models.PurposeTransaction,
		Payload: payload,
		Summary: describeIntent(in),
	})
	if err != nil {
		return models.Confirmation{}, err
	}

	conf, err := s.ledger.Submit(ctx, models.SignedIntent{
		Intent:    in,
		PublicKey: s.identity.PublicKey(),
		Signature: sig,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "intentSubmitter.signAndSubmit").
			Str("intent", string(in.Kind)).
			Str("idempotency_key", in.IdempotencyKey).
			Msg("ledger rejected intent")
		return models.Confirmation{}, err
	}
	return conf, nil
}

// describeIntent renders the line shown in the signature prompt.
func describeIntent(in models.Intent) string {
	var b strings.Builder
	b.WriteString(string(in.Kind))
	if in.VaultID != "" {
		fmt.Fprintf(&b, " vault=%s", in.VaultID.Short())
	}
	if in.SafeID != "" {
		fmt.Fprintf(&b, " safe=%s", in.SafeID.Short())
	}
	if in.Name != "" {
		fmt.Fprintf(&b, " name=%q", in.Name)
	}
	if in.Item != nil {
		fmt.Fprintf(&b, " item=%q", in.Item.Name)
	}
	if in.Candidate != "" {
		fmt.Fprintf(&b, " candidate=%s", in.Candidate.Short())
	}
	if in.Kind == models.IntentSafeCreate || in.Kind == models.IntentSafeUpdateGuardians {
		fmt.Fprintf(&b, " guardians=%d threshold=%d", len(in.Guardians), in.Threshold)
	}
	if in.Deadman != nil {
		fmt.Fprintf(&b, " beneficiary=%s after=%s", in.Deadman.Beneficiary.Short(), in.Deadman.InactivityPeriod)
	}
	return b.String()
}

// ── ledger reads ─────────────────────────────────────────────────────────────

func getVault(ctx context.Context, ledger adapter.Ledger, id models.ObjectID) (models.Vault, error) {
	obj, err := ledger.GetObject(ctx, id)
	if err != nil {
		return models.Vault{}, err
	}
	if obj.Vault == nil {
		return models.Vault{}, fmt.Errorf("%w: %s is %q", ErrUnexpectedObject, id, obj.Kind)
	}
	return *obj.Vault, nil
}

func getCap(ctx context.Context, ledger adapter.Ledger, id models.ObjectID) (models.Cap, error) {
	obj, err := ledger.GetObject(ctx, id)
	if err != nil {
		return models.Cap{}, err
	}
	if obj.Cap == nil {
		return models.Cap{}, fmt.Errorf("%w: %s is %q", ErrUnexpectedObject, id, obj.Kind)
	}
	return *obj.Cap, nil
}

func getSafe(ctx context.Context, ledger adapter.Ledger, id models.ObjectID) (*models.Safe, error) {
	obj, err := ledger.GetObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj.Safe == nil {
		return nil, fmt.Errorf("%w: %s is %q", ErrUnexpectedObject, id, obj.Kind)
	}
	return obj.Safe, nil
}

func getItem(ctx context.Context, ledger adapter.Ledger, id models.ObjectID) (models.Item, error) {
	obj, err := ledger.GetObject(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	if obj.Item == nil {
		return models.Item{}, fmt.Errorf("%w: %s is %q", ErrUnexpectedObject, id, obj.Kind)
	}
	return *obj.Item, nil
}
