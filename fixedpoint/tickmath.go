package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// ratioConstants holds 1/sqrt(1.0001^(2^i)) for i in [0, 19], expressed as
// UQ128.128 fixed-point hex literals, plus a UQ128.128 "1" at index 1 and
// a rounding mask at the last index.
var ratioConstants = [22]*uint256.Int{
	mustFromHex("0xfffcb933bd6fad37aa2d162d1a594001"),
	mustFromHex("0x100000000000000000000000000000000"),
	mustFromHex("0xfff97272373d413259a46990580e213a"),
	mustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc"),
	mustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0"),
	mustFromHex("0xffcb9843d60f6159c9db58835c926644"),
	mustFromHex("0xff973b41fa98c081472e6896dfb254c0"),
	mustFromHex("0xff2ea16466c96a3843ec78b326b52861"),
	mustFromHex("0xfe5dee046a99a2a811c461f1969c3053"),
	mustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4"),
	mustFromHex("0xf987a7253ac413176f2b074cf7815e54"),
	mustFromHex("0xf3392b0822b70005940c7a398e4b70f3"),
	mustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9"),
	mustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	mustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5"),
	mustFromHex("0x70d869a156d2a1b890bb3df62baf32f7"),
	mustFromHex("0x31be135f97d08fd981231505542fcfa6"),
	mustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9"),
	mustFromHex("0x5d6af8dedb81196699c329225ee604"),
	mustFromHex("0x2216e584f5fa1ea926041bedfe98"),
	mustFromHex("0x48a170391f7dc42444e8fa2"),
	mustFromHex("0xffffffff"),
}

var maxUint256 = new(uint256.Int).Not(uint256.NewInt(0))

func mustFromHex(s string) *uint256.Int {
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		panic("fixedpoint: bad hex literal " + s)
	}
	return uint256.MustFromBig(n)
}

// GetSqrtRatioAtTick computes sqrt(1.0001^tick) * 2^96 as a Q64.96 value.
func GetSqrtRatioAtTick(tick int32) (*uint256.Int, error) {
	if tick < types.MinTick || tick > types.MaxTick {
		return nil, types.InvalidTickError{Tick: tick}
	}

	absTick := tick
	if tick < 0 {
		absTick = -tick
	}

	var ratio *uint256.Int
	if absTick&0x1 != 0 {
		ratio = new(uint256.Int).Set(ratioConstants[0])
	} else {
		ratio = new(uint256.Int).Set(ratioConstants[1])
	}
	for i := 2; i < 21; i++ {
		if absTick&(1<<(i-1)) != 0 {
			ratio.Mul(ratio, ratioConstants[i])
			ratio.Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio = new(uint256.Int).Div(maxUint256, ratio)
	}

	// Downshift from Q128.128 to Q64.96, rounding up.
	rem := new(uint256.Int).And(ratio, ratioConstants[21])
	ratio.Rsh(ratio, 32)
	if !rem.IsZero() {
		ratio = new(uint256.Int).AddUint64(ratio, 1)
	}
	return ratio, nil
}

// GetTickAtSqrtRatio returns the greatest tick such that
// GetSqrtRatioAtTick(tick) <= sqrtPriceX96, found by binary search over
// the valid tick range.
func GetTickAtSqrtRatio(sqrtPriceX96 *uint256.Int) (int32, error) {
	if sqrtPriceX96.Lt(types.MinSqrtRatio) || sqrtPriceX96.Cmp(types.MaxSqrtRatio) > 0 {
		return 0, types.InvalidSqrtPriceLimitError{SqrtPriceLimitX96: sqrtPriceX96.Hex()}
	}

	low, high := types.MinTick, types.MaxTick
	var tick int32
	for low <= high {
		mid := low + (high-low)/2
		ratioAtMid, err := GetSqrtRatioAtTick(mid)
		if err != nil {
			return 0, err
		}
		if ratioAtMid.Cmp(sqrtPriceX96) <= 0 {
			tick = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return tick, nil
}
