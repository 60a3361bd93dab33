package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/clock"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/internal/store"
	"github.com/MKhiriev/go-safe-keeper/internal/validators"
	"github.com/MKhiriev/go-safe-keeper/models"
	"golang.org/x/sync/errgroup"
)

// listConcurrency bounds parallel item reads in ListItems.
const listConcurrency = 4

type vaultService struct {
	submitter *intentSubmitter
	ledger    adapter.Ledger
	keys      adapter.ThresholdService
	blobs     adapter.BlobStore
	access    AccessResolver
	pairings  store.PairingRepository
	keyChain  crypto.KeyChainService
	clock     clock.Clock

	threshold int
}

func newVaultService(
	submitter *intentSubmitter,
	keys adapter.ThresholdService,
	blobs adapter.BlobStore,
	access AccessResolver,
	pairings store.PairingRepository,
	keyChain crypto.KeyChainService,
	clk clock.Clock,
	threshold int,
) *vaultService {
	return &vaultService{
		submitter: submitter,
		ledger:    submitter.ledger,
		keys:      keys,
		blobs:     blobs,
		access:    access,
		pairings:  pairings,
		keyChain:  keyChain,
		clock:     clk,
		threshold: threshold,
	}
}

// CreateVault mints a Vault and its Cap, held directly by the identity.
func (s *vaultService) CreateVault(ctx context.Context, name string) (models.Pairing, error) {
	conf, err := s.submitter.submit(ctx, models.Intent{Kind: models.IntentVaultCreate, Name: name})
	if err != nil {
		return models.Pairing{}, err
	}

	vaultID, ok := conf.CreatedID(models.ObjectVault)
	if !ok {
		return models.Pairing{}, fmt.Errorf("%w: vault", ErrMissingCreatedObject)
	}
	capID, ok := conf.CreatedID(models.ObjectCap)
	if !ok {
		return models.Pairing{}, fmt.Errorf("%w: cap", ErrMissingCreatedObject)
	}

	p := models.Pairing{
		Address:   s.submitter.identity.Address(),
		VaultID:   vaultID,
		CapID:     capID,
		UpdatedAt: s.clock.Now(),
	}
	if err = s.pairings.Save(ctx, p); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "vaultService.CreateVault").Msg("error caching pairing")
	}
	return p, nil
}

// AddItem seals the plaintext under a fresh policy id, stores the
// ciphertext and records the item on the ledger. Only the blob reference
// and the nonce reach the ledger.
func (s *vaultService) AddItem(ctx context.Context, vaultID models.ObjectID, in NewItem) (models.Item, error) {
	log := logger.FromContext(ctx).With().Str("vault_id", vaultID.String()).Logger()

	if err := validators.ValidateItemInput(in.Name, in.Category); err != nil {
		return models.Item{}, err
	}

	route, err := s.access.ResolveAccess(ctx, vaultID)
	if err != nil {
		return models.Item{}, err
	}

	nonce, err := s.keyChain.GenerateNonce()
	if err != nil {
		return models.Item{}, err
	}
	packed, err := s.keyChain.Compress(in.Plaintext)
	if err != nil {
		return models.Item{}, fmt.Errorf("compress item: %w", err)
	}

	ciphertext, err := s.keys.Encrypt(ctx, models.EncryptRequest{
		PolicyID:  s.keyChain.PolicyID(vaultID, nonce),
		Plaintext: packed,
		Threshold: s.threshold,
	})
	if err != nil {
		log.Err(err).Str("func", "vaultService.AddItem").Msg("error sealing item")
		return models.Item{}, fmt.Errorf("seal item: %w", err)
	}

	ref, err := s.blobs.Put(ctx, ciphertext)
	if err != nil {
		log.Err(err).Str("func", "vaultService.AddItem").Msg("error storing ciphertext")
		return models.Item{}, fmt.Errorf("store ciphertext: %w", err)
	}

	item := models.Item{
		VaultID:   vaultID,
		Name:      in.Name,
		Category:  in.Category,
		Nonce:     nonce,
		BlobRef:   ref,
		CreatedAt: s.clock.Now(),
	}
	conf, err := s.submitter.submit(ctx, models.Intent{
		Kind:    models.IntentVaultAddItem,
		VaultID: vaultID,
		CapID:   route.CapID,
		SafeID:  route.SafeID,
		Item:    &item,
	})
	if err != nil {
		return models.Item{}, err
	}

	itemID, ok := conf.CreatedID(models.ObjectItem)
	if !ok {
		return models.Item{}, fmt.Errorf("%w: item", ErrMissingCreatedObject)
	}
	item.ID = itemID
	return item, nil
}

func (s *vaultService) GetVault(ctx context.Context, vaultID models.ObjectID) (models.Vault, error) {
	return getVault(ctx, s.ledger, vaultID)
}

// ListItems reads item metadata from the ledger. Nothing is decrypted.
func (s *vaultService) ListItems(ctx context.Context, vaultID models.ObjectID) ([]models.Item, error) {
	vault, err := getVault(ctx, s.ledger, vaultID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, len(vault.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, id := range vault.Items {
		g.Go(func() error {
			item, err := getItem(gctx, s.ledger, id)
			if err != nil {
				return fmt.Errorf("read item %s: %w", id, err)
			}
			items[i] = item
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "vaultService.ListItems").Str("vault_id", vaultID.String()).Msg("error listing items")
		return nil, err
	}
	return items, nil
}
