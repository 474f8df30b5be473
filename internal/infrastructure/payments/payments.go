package payments

import (
	"context"
	"errors"
	"sync"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/core/ports"
)

var (
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Service is an in-process balance ledger implementing ports.PaymentService.
// Balances are tracked in base units per (identity, currency) pair. It stands
// in for the on-chain token program in development and tests.
type Service struct {
	lock     sync.Mutex
	balances map[domain.Currency]map[string]uint64
}

// NewService returns an empty payment ledger.
func NewService() *Service {
	return &Service{
		balances: make(map[domain.Currency]map[string]uint64),
	}
}

// Credit mints the given amount to an identity. Used to fund accounts in
// development and tests.
func (s *Service) Credit(identity string, amount uint64, currency domain.Currency) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.balanceMap(currency)[identity] += amount
}

func (s *Service) BalanceOf(
	_ context.Context, identity string, currency domain.Currency,
) (uint64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.balanceMap(currency)[identity], nil
}

func (s *Service) Transfer(
	_ context.Context, from, to string, amount uint64, currency domain.Currency,
) error {
	if amount == 0 {
		return ErrInvalidAmount
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	balances := s.balanceMap(currency)
	if balances[from] < amount {
		return ErrInsufficientBalance
	}

	balances[from] -= amount
	balances[to] += amount
	return nil
}

func (s *Service) balanceMap(currency domain.Currency) map[string]uint64 {
	balances, ok := s.balances[currency]
	if !ok {
		balances = make(map[string]uint64)
		s.balances[currency] = balances
	}
	return balances
}

// interface guard
var _ ports.PaymentService = (*Service)(nil)
