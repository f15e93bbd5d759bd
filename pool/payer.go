package pool

import (
	"context"

	"cosmossdk.io/math"

	"github.com/omnipool-labs/clmm-core/types"
)

// Payer is the pool's inverted-control payment surface: the caller of
// Mint, Swap, and Flash supplies one, and the pool invokes the
// relevant callback method expecting the owed tokens to have landed in
// the pool's balance by the time the callback returns. BalanceOf is
// used to snapshot and diff balances around each callback.
type Payer interface {
	BalanceOf(ctx context.Context, asset types.Asset) (math.Int, error)
	MintCallback(ctx context.Context, amount0Owed, amount1Owed math.Int, data []byte) error
	SwapCallback(ctx context.Context, amount0Delta, amount1Delta math.Int, data []byte) error
	FlashCallback(ctx context.Context, fee0, fee1 math.Int, data []byte) error

	// Transfer pushes amount of asset from the pool's external balance
	// to recipient. The pool calls this for the leg it owes the trader
	// before invoking SwapCallback/FlashCallback, matching the
	// pool-pays-first half of the payment protocol — the ERC-20
	// transfer body itself stays the host's concern (out of scope per
	// §1), but the push needs a seam on Payer since the core has no
	// token contract reference of its own.
	Transfer(ctx context.Context, recipient string, asset types.Asset, amount math.Int) error
}

// requireBalanceIncrease snapshots asset's balance, invokes fn (the
// caller-supplied callback), and fails with UnderpaidError unless the
// post-callback balance increased by at least required.
func requireBalanceIncrease(ctx context.Context, payer Payer, asset types.Asset, operation string, required math.Int, fn func() error) error {
	before, err := payer.BalanceOf(ctx, asset)
	if err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	after, err := payer.BalanceOf(ctx, asset)
	if err != nil {
		return err
	}
	delta := after.Sub(before)
	if delta.LT(required) {
		return types.UnderpaidError{Asset: asset, Operation: operation, Required: required, Delta: delta}
	}
	return nil
}

// requireBalancesIncrease is requireBalanceIncrease for both assets at
// once, snapshotting before a single callback invocation and verifying
// each asset's balance separately afterward — used by Mint, whose
// single callback can be required to pay on both legs at once.
func requireBalancesIncrease(ctx context.Context, payer Payer, required0, required1 math.Int, operation0, operation1 string, fn func() error) error {
	before0, err := payer.BalanceOf(ctx, types.Asset0)
	if err != nil {
		return err
	}
	before1, err := payer.BalanceOf(ctx, types.Asset1)
	if err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	after0, err := payer.BalanceOf(ctx, types.Asset0)
	if err != nil {
		return err
	}
	after1, err := payer.BalanceOf(ctx, types.Asset1)
	if err != nil {
		return err
	}
	delta0 := after0.Sub(before0)
	if delta0.LT(required0) {
		return types.UnderpaidError{Asset: types.Asset0, Operation: operation0, Required: required0, Delta: delta0}
	}
	delta1 := after1.Sub(before1)
	if delta1.LT(required1) {
		return types.UnderpaidError{Asset: types.Asset1, Operation: operation1, Required: required1, Delta: delta1}
	}
	return nil
}
