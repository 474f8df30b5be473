package assetregistry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rwamarket/auctiond/internal/core/ports"
)

var (
	// ErrAssetNotFound ...
	ErrAssetNotFound = errors.New("asset not found in registry")
	// ErrAssetAlreadyExists ...
	ErrAssetAlreadyExists = errors.New("asset already registered")
	// ErrAssetLocked is thrown when locking an asset that is already
	// transfer-locked.
	ErrAssetLocked = errors.New("asset is transfer-locked")
	// ErrAssetNotLocked is thrown when unlocking an asset that carries no
	// transfer-lock.
	ErrAssetNotLocked = errors.New("asset is not transfer-locked")
	// ErrUnauthorizedMinter is thrown when anybody but the registry authority
	// mints or re-appraises an asset.
	ErrUnauthorizedMinter = errors.New("caller is not the registry authority")
	// ErrInvalidMetadata ...
	ErrInvalidMetadata = errors.New("invalid asset metadata")
)

// Asset categories accepted by the registry.
const (
	CategoryDigitalArt  = "digital_art"
	CategorySpirits     = "spirits"
	CategoryTCGCards    = "tcg_cards"
	CategorySportsCards = "sports_cards"
	CategoryWatches     = "watches"
)

const (
	maxNameLen      = 64
	maxURILen       = 200
	maxConditionLen = 32
)

var categories = map[string]struct{}{
	CategoryDigitalArt:  {},
	CategorySpirits:     {},
	CategoryTCGCards:    {},
	CategorySportsCards: {},
	CategoryWatches:     {},
}

// Metadata describes a tokenized asset: its provenance record and latest
// appraisal.
type Metadata struct {
	Name           string
	Category       string
	URI            string
	AppraisedValue uint64
	Condition      string
	MintedAt       time.Time
	AppraisedAt    time.Time
}

type asset struct {
	owner    string
	lockedBy string
	metadata Metadata
}

// Service is an in-process asset registry implementing ports.AssetRegistry,
// with authority-only minting and appraisal updates. It stands in for the
// on-chain registry in development and tests.
type Service struct {
	authority string

	lock   sync.RWMutex
	assets map[string]*asset
}

// NewService returns a registry whose mint and appraisal operations only the
// given authority can perform.
func NewService(authority string) *Service {
	return &Service{
		authority: authority,
		assets:    make(map[string]*asset),
	}
}

// Mint registers a new tokenized asset owned by the given identity. Only the
// registry authority can mint.
func (s *Service) Mint(
	caller, assetRef, owner string, metadata Metadata,
) error {
	if caller != s.authority {
		return ErrUnauthorizedMinter
	}
	if err := validateMetadata(metadata); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.assets[assetRef]; ok {
		return ErrAssetAlreadyExists
	}

	now := time.Now()
	metadata.MintedAt = now
	metadata.AppraisedAt = now
	s.assets[assetRef] = &asset{owner: owner, metadata: metadata}
	return nil
}

// UpdateAppraisal records a new appraised value. Only the registry authority
// can re-appraise.
func (s *Service) UpdateAppraisal(
	caller, assetRef string, appraisedValue uint64,
) error {
	if caller != s.authority {
		return ErrUnauthorizedMinter
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return ErrAssetNotFound
	}

	a.metadata.AppraisedValue = appraisedValue
	a.metadata.AppraisedAt = time.Now()
	return nil
}

// MetadataOf returns the metadata of an asset.
func (s *Service) MetadataOf(assetRef string) (*Metadata, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return nil, ErrAssetNotFound
	}

	metadata := a.metadata
	return &metadata, nil
}

func (s *Service) OwnerOf(_ context.Context, assetRef string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return "", ErrAssetNotFound
	}
	return a.owner, nil
}

func (s *Service) Lock(_ context.Context, assetRef, auctionId string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return ErrAssetNotFound
	}
	if a.lockedBy != "" {
		return ErrAssetLocked
	}

	a.lockedBy = auctionId
	return nil
}

func (s *Service) Unlock(_ context.Context, assetRef string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return ErrAssetNotFound
	}
	if a.lockedBy == "" {
		return ErrAssetNotLocked
	}

	a.lockedBy = ""
	return nil
}

func (s *Service) Transfer(_ context.Context, assetRef, newOwner string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	a, ok := s.assets[assetRef]
	if !ok {
		return ErrAssetNotFound
	}

	a.owner = newOwner
	a.lockedBy = ""
	return nil
}

func validateMetadata(metadata Metadata) error {
	if metadata.Name == "" || len(metadata.Name) > maxNameLen {
		return ErrInvalidMetadata
	}
	if len(metadata.URI) > maxURILen {
		return ErrInvalidMetadata
	}
	if len(metadata.Condition) > maxConditionLen {
		return ErrInvalidMetadata
	}
	if _, ok := categories[metadata.Category]; !ok {
		return ErrInvalidMetadata
	}
	return nil
}

// interface guard
var _ ports.AssetRegistry = (*Service)(nil)
