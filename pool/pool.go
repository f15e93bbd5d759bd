package pool

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/fixedpoint"
	"github.com/omnipool-labs/clmm-core/oracle"
	"github.com/omnipool-labs/clmm-core/position"
	"github.com/omnipool-labs/clmm-core/tick"
	"github.com/omnipool-labs/clmm-core/tickbitmap"
	"github.com/omnipool-labs/clmm-core/types"
)

// positionKey identifies a position by owner and tick range, mirroring
// the teacher's composite store keys.
type positionKey struct {
	owner     string
	lowerTick int32
	upperTick int32
}

// Pool is the concentrated-liquidity engine for a single token pair. It
// is a plain value owned by the host (per the design notes' "no
// process-wide state" rule); every mutating method takes and returns
// through it directly rather than through any package-level registry.
type Pool struct {
	Config Config

	Slot0 types.Slot0

	// Liquidity is the currently in-range active liquidity, i.e. the sum
	// of liquidityNet over every initialized tick at or below the
	// current tick.
	Liquidity *uint256.Int

	FeeGrowthGlobal0X128 *uint256.Int
	FeeGrowthGlobal1X128 *uint256.Int

	ProtocolFees0 *uint256.Int
	ProtocolFees1 *uint256.Int

	Ticks     map[int32]*tick.Info
	Bitmap    *tickbitmap.Map
	Positions map[positionKey]*position.Position
	Oracle    *oracle.Ring

	// Clock returns the current wall-clock time, truncated to the
	// oracle's modulo-2^32 seconds resolution. Defaults to time.Now;
	// tests substitute a fixed or stepped clock.
	Clock func() time.Time

	Logger log.Logger

	locked bool
}

// NewPool constructs an uninitialized pool: Initialize must be called
// before any other operation will succeed.
func NewPool(cfg Config, logger log.Logger) *Pool {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Pool{
		Config:               cfg,
		Liquidity:            new(uint256.Int),
		FeeGrowthGlobal0X128: new(uint256.Int),
		FeeGrowthGlobal1X128: new(uint256.Int),
		ProtocolFees0:        new(uint256.Int),
		ProtocolFees1:        new(uint256.Int),
		Ticks:                make(map[int32]*tick.Info),
		Bitmap:               tickbitmap.New(),
		Positions:            make(map[positionKey]*position.Position),
		Oracle:               oracle.NewRing(),
		Clock:                time.Now,
		Logger:               logger.With("module", "clmm-core", "pair", cfg.Token0+"/"+cfg.Token1),
	}
}

func (p *Pool) now() uint32 {
	return uint32(p.Clock().Unix())
}

// lock acquires the reentrancy flag, failing LOK if it is already held
// by an outer call still in flight (i.e. a callback re-entering the
// pool).
func (p *Pool) lock() error {
	if p.locked {
		return types.LockedError{}
	}
	p.locked = true
	p.Slot0.Unlocked = false
	return nil
}

func (p *Pool) unlock() {
	p.locked = false
	p.Slot0.Unlocked = true
}

// requireInitialized fails any operation besides Initialize itself if
// the pool has not yet been seeded with a starting price.
func (p *Pool) requireInitialized() error {
	if p.Slot0.SqrtPriceX96 == nil {
		return types.ErrInvariant.Wrap("pool is not initialized")
	}
	return nil
}

// Initialize seeds the pool's starting price and oracle. It is the one
// operation allowed to run before the reentrancy lock exists, and may
// only be called once.
func (p *Pool) Initialize(sqrtPriceX96 *uint256.Int) (types.InitializeEvent, error) {
	if p.Slot0.SqrtPriceX96 != nil {
		return types.InitializeEvent{}, types.AlreadyInitializedError{}
	}

	startTick, err := fixedpoint.GetTickAtSqrtRatio(sqrtPriceX96)
	if err != nil {
		return types.InitializeEvent{}, err
	}

	cardinality, cardinalityNext := p.Oracle.Initialize(p.now())

	p.Slot0 = types.Slot0{
		SqrtPriceX96:               new(uint256.Int).Set(sqrtPriceX96),
		Tick:                       startTick,
		ObservationIndex:           0,
		ObservationCardinality:     cardinality,
		ObservationCardinalityNext: cardinalityNext,
		FeeProtocol:                0,
		Unlocked:                   true,
	}

	p.Logger.Info("initialized pool", "sqrtPriceX96", sqrtPriceX96.String(), "tick", startTick)

	return types.InitializeEvent{SqrtPriceX96: new(uint256.Int).Set(sqrtPriceX96), Tick: startTick}, nil
}

func liquidityAsUint256(l math.Int) (*uint256.Int, error) {
	if l.IsNegative() {
		return nil, types.ErrArithmetic.Wrap("liquidity must not be negative")
	}
	return uint256.MustFromBig(l.BigInt()), nil
}

func liquidityAsInt(l *uint256.Int) math.Int {
	return math.NewIntFromBigInt(l.ToBig())
}
