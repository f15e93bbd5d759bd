package pool_test

import (
	"context"

	"cosmossdk.io/math"

	"github.com/omnipool-labs/clmm-core/types"
)

// fakePayer is a minimal in-memory Payer: it tracks only the pool's own
// balance of each asset (the value BalanceOf reports) and, by default,
// repays exactly what each callback is told it owes — mirroring a
// well-behaved router. Tests that need an underpayment override one of
// the *Fn hooks.
type fakePayer struct {
	balance0, balance1 math.Int
	sent0, sent1       math.Int

	mintCallbackFn  func(ctx context.Context, amount0Owed, amount1Owed math.Int, data []byte) error
	swapCallbackFn  func(ctx context.Context, amount0Delta, amount1Delta math.Int, data []byte) error
	flashCallbackFn func(ctx context.Context, fee0, fee1 math.Int, data []byte) error
}

func newFakePayer() *fakePayer {
	return &fakePayer{
		balance0: math.ZeroInt(),
		balance1: math.ZeroInt(),
		sent0:    math.ZeroInt(),
		sent1:    math.ZeroInt(),
	}
}

func (f *fakePayer) BalanceOf(_ context.Context, asset types.Asset) (math.Int, error) {
	if asset == types.Asset0 {
		return f.balance0, nil
	}
	return f.balance1, nil
}

func (f *fakePayer) Transfer(_ context.Context, _ string, asset types.Asset, amount math.Int) error {
	if asset == types.Asset0 {
		f.balance0 = f.balance0.Sub(amount)
		f.sent0 = f.sent0.Add(amount)
	} else {
		f.balance1 = f.balance1.Sub(amount)
		f.sent1 = f.sent1.Add(amount)
	}
	return nil
}

func (f *fakePayer) MintCallback(ctx context.Context, amount0Owed, amount1Owed math.Int, data []byte) error {
	if f.mintCallbackFn != nil {
		return f.mintCallbackFn(ctx, amount0Owed, amount1Owed, data)
	}
	f.balance0 = f.balance0.Add(amount0Owed)
	f.balance1 = f.balance1.Add(amount1Owed)
	return nil
}

func (f *fakePayer) SwapCallback(ctx context.Context, amount0Delta, amount1Delta math.Int, data []byte) error {
	if f.swapCallbackFn != nil {
		return f.swapCallbackFn(ctx, amount0Delta, amount1Delta, data)
	}
	if amount0Delta.IsPositive() {
		f.balance0 = f.balance0.Add(amount0Delta)
	}
	if amount1Delta.IsPositive() {
		f.balance1 = f.balance1.Add(amount1Delta)
	}
	return nil
}

func (f *fakePayer) FlashCallback(ctx context.Context, fee0, fee1 math.Int, data []byte) error {
	if f.flashCallbackFn != nil {
		return f.flashCallbackFn(ctx, fee0, fee1, data)
	}
	f.balance0 = f.balance0.Add(f.sent0).Add(fee0)
	f.balance1 = f.balance1.Add(f.sent1).Add(fee1)
	f.sent0, f.sent1 = math.ZeroInt(), math.ZeroInt()
	return nil
}
