package ports

import (
	"context"

	"github.com/rwamarket/auctiond/internal/core/domain"
)

// RepoManager aggregates the repositories of the engine behind a single
// transactional boundary.
type RepoManager interface {
	AuctionRepository() domain.AuctionRepository
	EscrowRepository() domain.EscrowRepository

	// RunTransaction executes the handler inside a single atomic commit: every
	// repository call made with the returned context either fully applies or
	// fully fails.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) error,
	) error

	Close()
}
