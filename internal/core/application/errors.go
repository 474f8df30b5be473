package application

import "errors"

var (
	// ErrMissingTreasury ...
	ErrMissingTreasury = errors.New("missing treasury identity")
	// ErrMissingEscrowAccount ...
	ErrMissingEscrowAccount = errors.New("missing escrow account identity")
	// ErrMissingCurrencies ...
	ErrMissingCurrencies = errors.New("missing accepted currency set")
)
