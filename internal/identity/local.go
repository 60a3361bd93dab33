package identity

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

// Approver decides whether a signature request may be signed. It may
// block on a human.
type Approver interface {
	Approve(ctx context.Context, req models.SignatureRequest) (bool, error)
}

// AutoApprover approves everything. Use it only against a devnet.
type AutoApprover struct{}

func (AutoApprover) Approve(context.Context, models.SignatureRequest) (bool, error) {
	return true, nil
}

// LocalIdentity signs with a key held in memory after asking its
// [Approver]. Prompts are serialized: one terminal, one question at a
// time.
type LocalIdentity struct {
	priv     ed25519.PrivateKey
	pub      ed25519.PublicKey
	address  models.Address
	approver Approver

	mu sync.Mutex
}

var _ adapter.IdentityProvider = (*LocalIdentity)(nil)

func NewLocalIdentity(priv ed25519.PrivateKey, approver Approver) *LocalIdentity {
	pub := priv.Public().(ed25519.PublicKey)
	if approver == nil {
		approver = AutoApprover{}
	}
	return &LocalIdentity{
		priv:     priv,
		pub:      pub,
		address:  crypto.AddressFromPublicKey(pub),
		approver: approver,
	}
}

func (i *LocalIdentity) Address() models.Address { return i.address }

func (i *LocalIdentity) PublicKey() ed25519.PublicKey { return i.pub }

// SessionCacheKey returns the key sealing this identity's session keys in
// a shared cache.
func (i *LocalIdentity) SessionCacheKey() []byte { return crypto.SessionCacheKey(i.priv) }

// RequestSignature returns adapter.ErrSignatureDenied when the approver
// refuses.
func (i *LocalIdentity) RequestSignature(ctx context.Context, req models.SignatureRequest) ([]byte, error) {
	log := logger.FromContext(ctx).With().
		Str("address", i.address.String()).
		Str("purpose", string(req.Purpose)).
		Logger()

	i.mu.Lock()
	defer i.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ok, err := i.approver.Approve(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*LocalIdentity.RequestSignature").Msg("approval prompt failed")
		return nil, err
	}
	if !ok {
		log.Info().Str("func", "*LocalIdentity.RequestSignature").Msg("signature denied")
		return nil, adapter.ErrSignatureDenied
	}
	return ed25519.Sign(i.priv, req.Payload), nil
}
