package pool

import (
	"context"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// Flash lends amount0/amount1 to recipient for the duration of a single
// callback, requiring repayment plus a fee proportional to the pool's
// configured swap fee.
func (p *Pool) Flash(ctx context.Context, payer Payer, recipient string, amount0, amount1 math.Int, data []byte) (paid0, paid1 math.Int, evt types.FlashEvent, err error) {
	if err := p.requireInitialized(); err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}
	if err := p.lock(); err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}
	defer p.unlock()

	if p.Liquidity.IsZero() {
		return math.Int{}, math.Int{}, types.FlashEvent{}, types.ZeroLiquidityError{}
	}

	fee0 := flashFee(amount0, p.Config.Fee)
	fee1 := flashFee(amount1, p.Config.Fee)

	before0, err := payer.BalanceOf(ctx, types.Asset0)
	if err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}
	before1, err := payer.BalanceOf(ctx, types.Asset1)
	if err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}

	if amount0.IsPositive() {
		if err := payer.Transfer(ctx, recipient, types.Asset0, amount0); err != nil {
			return math.Int{}, math.Int{}, types.FlashEvent{}, err
		}
	}
	if amount1.IsPositive() {
		if err := payer.Transfer(ctx, recipient, types.Asset1, amount1); err != nil {
			return math.Int{}, math.Int{}, types.FlashEvent{}, err
		}
	}

	if err := payer.FlashCallback(ctx, fee0, fee1, data); err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}

	after0, err := payer.BalanceOf(ctx, types.Asset0)
	if err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}
	after1, err := payer.BalanceOf(ctx, types.Asset1)
	if err != nil {
		return math.Int{}, math.Int{}, types.FlashEvent{}, err
	}

	paid0 = after0.Sub(before0)
	if paid0.LT(fee0) {
		return math.Int{}, math.Int{}, types.FlashEvent{}, types.UnderpaidError{Asset: types.Asset0, Operation: "flash0", Required: fee0, Delta: paid0}
	}
	paid1 = after1.Sub(before1)
	if paid1.LT(fee1) {
		return math.Int{}, math.Int{}, types.FlashEvent{}, types.UnderpaidError{Asset: types.Asset1, Operation: "flash1", Required: fee1, Delta: paid1}
	}

	if !p.Liquidity.IsZero() {
		feeProtocol0 := p.Slot0.FeeProtocol.Denominator(true)
		feeProtocol1 := p.Slot0.FeeProtocol.Denominator(false)

		p.creditFlashFee(types.Asset0, paid0, feeProtocol0)
		p.creditFlashFee(types.Asset1, paid1, feeProtocol1)
	}

	p.Logger.Debug("flash", "recipient", recipient, "amount0", amount0.String(), "amount1", amount1.String())

	evt = types.FlashEvent{
		Recipient: recipient, Amount0: amount0.String(), Amount1: amount1.String(),
		Paid0: paid0.String(), Paid1: paid1.String(),
	}
	return paid0, paid1, evt, nil
}

// flashFee computes ceil(amount * fee / 1_000_000); a zero amount owes
// no fee regardless of the pool's fee rate.
func flashFee(amount math.Int, feePips uint32) math.Int {
	if amount.IsZero() {
		return math.ZeroInt()
	}
	amountU := uint256.MustFromBig(amount.BigInt())
	feeU := uint256.NewInt(uint64(feePips))
	denom := uint256.NewInt(uint64(types.FeeDenominator))

	product := new(uint256.Int).Mul(amountU, feeU)
	q := new(uint256.Int).Div(product, denom)
	r := new(uint256.Int).Mod(product, denom)
	if !r.IsZero() {
		q = new(uint256.Int).AddUint64(q, 1)
	}
	return math.NewIntFromBigInt(q.ToBig())
}

func (p *Pool) creditFlashFee(asset types.Asset, paid math.Int, feeProtocolDenominator uint8) {
	if paid.IsZero() {
		return
	}
	paidU := uint256.MustFromBig(paid.BigInt())

	var protocolFeeU *uint256.Int
	if feeProtocolDenominator != 0 {
		protocolFeeU = new(uint256.Int).Div(paidU, uint256.NewInt(uint64(feeProtocolDenominator)))
	} else {
		protocolFeeU = new(uint256.Int)
	}

	lpFee := new(uint256.Int).Sub(paidU, protocolFeeU)
	growth := wrappingMulDivQ128(lpFee, p.Liquidity)

	if asset == types.Asset0 {
		p.FeeGrowthGlobal0X128 = new(uint256.Int).Add(p.FeeGrowthGlobal0X128, growth)
		p.ProtocolFees0 = new(uint256.Int).Add(p.ProtocolFees0, protocolFeeU)
	} else {
		p.FeeGrowthGlobal1X128 = new(uint256.Int).Add(p.FeeGrowthGlobal1X128, growth)
		p.ProtocolFees1 = new(uint256.Int).Add(p.ProtocolFees1, protocolFeeU)
	}
}
