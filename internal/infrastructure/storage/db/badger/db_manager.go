package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
)

type contextKey string

// txKey is the context key carrying the badger transaction every repository
// call inside RunTransaction operates on.
const txKey contextKey = "tx"

// RepoManager is the badger implementation of ports.RepoManager. Auction and
// escrow records live in the same store, so one badger transaction covers
// every state change of an operation.
type RepoManager struct {
	store             *badgerhold.Store
	auctionRepository domain.AuctionRepository
	escrowRepository  domain.EscrowRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
func NewRepoManager(dbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening auction db: %w", err)
	}

	return &RepoManager{
		store:             store,
		auctionRepository: newAuctionRepositoryImpl(store),
		escrowRepository:  newEscrowRepositoryImpl(store),
	}, nil
}

func (d *RepoManager) AuctionRepository() domain.AuctionRepository {
	return d.auctionRepository
}

func (d *RepoManager) EscrowRepository() domain.EscrowRepository {
	return d.escrowRepository
}

// RunTransaction executes the handler inside a single badger transaction,
// committed only if the handler returns no error.
func (d *RepoManager) RunTransaction(
	ctx context.Context, readOnly bool,
	handler func(ctx context.Context) error,
) error {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	if err := handler(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	if readOnly {
		return nil
	}
	return tx.Commit()
}

func (d *RepoManager) Close() {
	// nolint:errcheck
	d.store.Close()
}

// JSONEncode is a custom JSON based encoder for badger.
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger.
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}

func txFromContext(ctx context.Context) (*badger.Txn, bool) {
	tx, ok := ctx.Value(txKey).(*badger.Txn)
	return tx, ok
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
