// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/models"
	"golang.org/x/sync/singleflight"
)

type sessionManager struct {
	sessions store.SessionStore
	identity adapter.IdentityProvider
	keyChain crypto.KeyChainService
	clock    clock.Clock

	scope string
	ttl   time.Duration

	// mint collapses concurrent prompts for the same identity and scope.
	mint singleflight.Group
}

// NewSessionManager returns a [SessionManager] caching keys in sessions.
func NewSessionManager(
	sessions store.SessionStore,
	identity adapter.IdentityProvider,
	keyChain crypto.KeyChainService,
	clk clock.Clock,
	scope string,
	ttl time.Duration,
) SessionManager {
	return &sessionManager{
		sessions: sessions,
		identity: identity,
		keyChain: keyChain,
		clock:    clk,
		scope:    scope,
		ttl:      ttl,
	}
}

func (m *sessionManager) Session(ctx context.Context) (models.SessionKey, error) {
	if m.identity == nil {
		return models.SessionKey{}, ErrNoIdentity
	}
	address := m.identity.Address()

	if key, ok := m.cached(ctx, address); ok {
		return key, nil
	}

	// The shared prompt outlives the caller that started it. Each caller
	// stops waiting when its own ctx is done.
	mintCtx := context.WithoutCancel(ctx)
	ch := m.mint.DoChan(m.scope+"|"+address.String(), func() (any, error) {
		// a concurrent caller may have stored a key while we waited
		if key, ok := m.cached(mintCtx, address); ok {
			return key, nil
		}
		return m.mintSession(mintCtx, address)
	})

	select {
	case <-ctx.Done():
		return models.SessionKey{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.SessionKey{}, res.Err
		}
		if res.Shared {
			logger.FromContext(ctx).Debug().Str("func", "sessionManager.Session").Msg("joined in-flight session prompt")
		}
		return res.Val.(models.SessionKey), nil
	}
}

func (m *sessionManager) Invalidate(ctx context.Context) error {
	if m.identity == nil {
		return ErrNoIdentity
	}
	return m.sessions.Delete(ctx, m.identity.Address(), m.scope)
}

// cached returns the stored key if it is still valid for address. An
// invalid stored key is deleted.
func (m *sessionManager) cached(ctx context.Context, address models.Address) (models.SessionKey, bool) {
	log := logger.FromContext(ctx)

	key, err := m.sessions.Get(ctx, address, m.scope)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Warn().Err(err).Str("func", "sessionManager.cached").Msg("session cache read failed")
		}
		return models.SessionKey{}, false
	}

	if key.ValidFor(address, m.clock.Now()) {
		return key, true
	}

	if err = m.sessions.Delete(ctx, address, m.scope); err != nil {
		log.Warn().Err(err).Str("func", "sessionManager.cached").Msg("error dropping expired session key")
	}
	return models.SessionKey{}, false
}

func (m *sessionManager) mintSession(ctx context.Context, address models.Address) (models.SessionKey, error) {
	log := logger.FromContext(ctx).With().Str("address", address.String()).Str("scope", m.scope).Logger()

	sessionPub, sessionPriv, err := m.keyChain.NewSessionKeyPair()
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("generate session key pair: %w", err)
	}

	created := m.clock.Now()
	challenge, err := m.keyChain.EncodeChallenge(models.SessionChallenge{
		Scope:         m.scope,
		Address:       address,
		SessionPublic: sessionPub,
		CreatedAtMs:   created.UnixMilli(),
		TTLMs:         m.ttl.Milliseconds(),
	})
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("encode session challenge: %w", err)
	}

	signature, err := m.identity.RequestSignature(ctx, models.SignatureRequest{
		Purpose: models.PurposeSession,
		Payload: challenge,
		Summary: fmt.Sprintf("Allow %q to decrypt vault items as %s for %s", m.scope, address.Short(), m.ttl),
	})
	if err != nil {
		log.Info().Err(err).Str("func", "sessionManager.mintSession").Msg("session signature not granted")
		return models.SessionKey{}, err
	}

	// CreatedAt carries millisecond precision, matching the signed challenge.
	key := models.SessionKey{
		Address:         address,
		Scope:           m.scope,
		CreatedAt:       time.UnixMilli(created.UnixMilli()).UTC(),
		TTL:             m.ttl,
		Challenge:       challenge,
		SignedChallenge: signature,
		IdentityKey:     m.identity.PublicKey(),
		SessionPublic:   sessionPub,
		SessionPrivate:  sessionPriv,
	}

	// the prompt may have outlived the key or the identity
	if key.ValidFor(m.identity.Address(), m.clock.Now()) {
		if err = m.sessions.Put(ctx, key); err != nil {
			log.Warn().Err(err).Str("func", "sessionManager.mintSession").Msg("error caching session key")
		}
	}

	log.Info().Str("func", "sessionManager.mintSession").Time("expires_at", key.ExpiresAt()).Msg("session key minted")
	return key, nil
}
