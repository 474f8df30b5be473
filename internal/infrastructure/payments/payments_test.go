package payments_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rwamarket/auctiond/internal/core/domain"
	"github.com/rwamarket/auctiond/internal/infrastructure/payments"
)

var ctx = context.Background()

func TestTransfer(t *testing.T) {
	t.Parallel()

	svc := payments.NewService()
	svc.Credit("alice", 1000, domain.CurrencyUSDC)

	require.NoError(t, svc.Transfer(ctx, "alice", "bob", 300, domain.CurrencyUSDC))

	balance, err := svc.BalanceOf(ctx, "alice", domain.CurrencyUSDC)
	require.NoError(t, err)
	require.Equal(t, uint64(700), balance)
	balance, err = svc.BalanceOf(ctx, "bob", domain.CurrencyUSDC)
	require.NoError(t, err)
	require.Equal(t, uint64(300), balance)
}

func TestFailingTransfer(t *testing.T) {
	t.Parallel()

	svc := payments.NewService()
	svc.Credit("alice", 100, domain.CurrencyUSDC)

	err := svc.Transfer(ctx, "alice", "bob", 200, domain.CurrencyUSDC)
	require.EqualError(t, err, payments.ErrInsufficientBalance.Error())

	err = svc.Transfer(ctx, "alice", "bob", 0, domain.CurrencyUSDC)
	require.EqualError(t, err, payments.ErrInvalidAmount.Error())

	// balances are tracked per currency
	err = svc.Transfer(ctx, "alice", "bob", 50, domain.CurrencyUSD1)
	require.EqualError(t, err, payments.ErrInsufficientBalance.Error())

	balance, err := svc.BalanceOf(ctx, "alice", domain.CurrencyUSDC)
	require.NoError(t, err)
	require.Equal(t, uint64(100), balance)
}
