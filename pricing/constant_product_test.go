// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) sdkmath.LegacyDec {
	t.Helper()
	d, err := sdkmath.LegacyNewDecFromStr(s)
	require.NoError(t, err)
	return d
}

func TestSwapExactIntegers(t *testing.T) {
	require := require.New(t)

	// Pool at (1,000,000, 1,000,000), 0.3% LP commission, no owner leg.
	result, err := Swap(
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(10_000),
		dec(t, "0.003"),
		ZeroCommission(),
	)
	require.NoError(err)
	require.Equal(sdkmath.NewInt(9_872), result.ReturnAmount)
	require.Equal(sdkmath.NewInt(99), result.SpreadAmount)
	require.Equal(sdkmath.NewInt(29), result.LPCommission)
	require.True(result.OwnerCommission.IsZero())
	require.Equal(sdkmath.NewInt(29), result.CommissionAmount())
	require.Equal(sdkmath.NewInt(9_901), result.ReturnBeforeCommission())
}

func TestSwapCommissionSplit(t *testing.T) {
	require := require.New(t)

	result, err := Swap(
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(10_000),
		dec(t, "0.002"),
		dec(t, "0.001"),
	)
	require.NoError(err)
	// Gross return 9,901: floor splits of 0.2% and 0.1%.
	require.Equal(sdkmath.NewInt(19), result.LPCommission)
	require.Equal(sdkmath.NewInt(9), result.OwnerCommission)
	require.Equal(sdkmath.NewInt(9_873), result.ReturnAmount)
}

func TestSwapRejectsZeroAndEmpty(t *testing.T) {
	require := require.New(t)

	_, err := Swap(sdkmath.NewInt(1), sdkmath.NewInt(1), sdkmath.ZeroInt(), ZeroCommission(), ZeroCommission())
	require.ErrorIs(err, ErrInvalidZeroAmount)

	_, err = Swap(sdkmath.ZeroInt(), sdkmath.NewInt(1), sdkmath.NewInt(1), ZeroCommission(), ZeroCommission())
	require.ErrorIs(err, ErrEmptyPool)
}

func TestSwapConstantProductMonotonic(t *testing.T) {
	require := require.New(t)

	offerPool := sdkmath.NewInt(1_000_000)
	askPool := sdkmath.NewInt(1_000_000)
	before := offerPool.Mul(askPool)
	for _, offer := range []int64{777, 10_000, 500_000, 1_999_999} {
		result, err := Swap(offerPool, askPool, sdkmath.NewInt(offer), dec(t, "0.003"), ZeroCommission())
		require.NoError(err)
		// Only the net return and the owner leg leave the pool.
		after := offerPool.Add(sdkmath.NewInt(offer)).
			Mul(askPool.Sub(result.ReturnAmount).Sub(result.OwnerCommission))
		require.True(after.GTE(before), "offer %d shrank k", offer)
	}
}

func TestReverseSwapIsExactInverse(t *testing.T) {
	require := require.New(t)

	offerPool := sdkmath.NewInt(1_000_000)
	askPool := sdkmath.NewInt(1_000_000)
	lp := dec(t, "0.003")

	reverse, err := ReverseSwap(offerPool, askPool, sdkmath.NewInt(9_872), lp, ZeroCommission())
	require.NoError(err)
	require.Equal(sdkmath.NewInt(10_000), reverse.OfferAmount)

	// Round trip: simulating the solved offer reproduces the ask up to
	// integer rounding.
	for _, ask := range []int64{100, 9_872, 55_555, 300_000} {
		reverse, err := ReverseSwap(offerPool, askPool, sdkmath.NewInt(ask), lp, ZeroCommission())
		require.NoError(err)
		forward, err := Swap(offerPool, askPool, reverse.OfferAmount, lp, ZeroCommission())
		require.NoError(err)
		diff := forward.ReturnAmount.Sub(sdkmath.NewInt(ask)).Abs()
		require.True(diff.LTE(sdkmath.NewInt(1)), "ask %d: got %s", ask, forward.ReturnAmount)
	}
}

func TestReverseSwapRejectsExcessiveAsk(t *testing.T) {
	_, err := ReverseSwap(
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
		ZeroCommission(),
		ZeroCommission(),
	)
	require.ErrorIs(t, err, ErrExcessiveAsk)
}

func TestInitialShares(t *testing.T) {
	require := require.New(t)

	share, err := InitialShares(sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000))
	require.NoError(err)
	require.Equal(sdkmath.NewInt(1_000_000), share)

	// Non-square product floors.
	share, err = InitialShares(sdkmath.NewInt(2), sdkmath.NewInt(4))
	require.NoError(err)
	require.Equal(sdkmath.NewInt(2), share)

	_, err = InitialShares(sdkmath.ZeroInt(), sdkmath.NewInt(4))
	require.ErrorIs(err, ErrInvalidZeroAmount)
}

func TestProportionalShares(t *testing.T) {
	require := require.New(t)

	share, err := ProportionalShares(
		sdkmath.NewInt(500_000), sdkmath.NewInt(500_000),
		sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
	)
	require.NoError(err)
	require.Equal(sdkmath.NewInt(500_000), share)

	// Lopsided deposits mint at the worse ratio.
	share, err = ProportionalShares(
		sdkmath.NewInt(500_000), sdkmath.NewInt(100_000),
		sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
	)
	require.NoError(err)
	require.Equal(sdkmath.NewInt(100_000), share)

	_, err = ProportionalShares(
		sdkmath.ZeroInt(), sdkmath.NewInt(100),
		sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000),
		sdkmath.NewInt(1_000_000),
	)
	require.ErrorIs(err, ErrInsufficientShares)
}

func TestWithdrawAmount(t *testing.T) {
	require := require.New(t)

	out := WithdrawAmount(sdkmath.NewInt(1_000_000), sdkmath.NewInt(250_000), sdkmath.NewInt(1_000_000))
	require.Equal(sdkmath.NewInt(250_000), out)

	// Floors in the pool's favor.
	out = WithdrawAmount(sdkmath.NewInt(100), sdkmath.NewInt(1), sdkmath.NewInt(3))
	require.Equal(sdkmath.NewInt(33), out)
}

func TestAssertMaxSpread(t *testing.T) {
	require := require.New(t)

	maxSpread := dec(t, "0.005")

	// 99 / (9901 + 99) = 0.0099 > 0.005.
	err := AssertMaxSpread(nil, &maxSpread, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99))
	require.ErrorIs(err, ErrSpreadExceeded)

	loose := dec(t, "0.01")
	require.NoError(AssertMaxSpread(nil, &loose, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99)))

	// Without a limit nothing is checked.
	require.NoError(AssertMaxSpread(nil, nil, sdkmath.NewInt(10_000), sdkmath.NewInt(1), sdkmath.NewInt(9_999)))
}

func TestAssertMaxSpreadWithBeliefPrice(t *testing.T) {
	require := require.New(t)

	belief := dec(t, "1.0")
	maxSpread := dec(t, "0.005")

	// Expected 10,000 at the believed price; got 9,901 gross, shortfall
	// ratio 0.0099.
	err := AssertMaxSpread(&belief, &maxSpread, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99))
	require.ErrorIs(err, ErrSpreadExceeded)

	generous := dec(t, "0.02")
	require.NoError(AssertMaxSpread(&belief, &generous, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99)))
}

func TestAssertMaxSpreadRejectsNonPositiveBeliefPrice(t *testing.T) {
	require := require.New(t)

	maxSpread := dec(t, "0.005")

	zero := sdkmath.LegacyZeroDec()
	err := AssertMaxSpread(&zero, &maxSpread, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99))
	require.ErrorIs(err, ErrInvalidBeliefPrice)

	negative := dec(t, "-1.0")
	err = AssertMaxSpread(&negative, &maxSpread, sdkmath.NewInt(10_000), sdkmath.NewInt(9_901), sdkmath.NewInt(99))
	require.ErrorIs(err, ErrInvalidBeliefPrice)
}

func TestAssertSlippageTolerance(t *testing.T) {
	require := require.New(t)

	tolerance := dec(t, "0.01")

	// Deposit matches the pool ratio exactly.
	require.NoError(AssertSlippageTolerance(&tolerance,
		[2]sdkmath.Int{sdkmath.NewInt(100_000), sdkmath.NewInt(100_000)},
		[2]sdkmath.Int{sdkmath.NewInt(1_100_000), sdkmath.NewInt(1_100_000)},
	))

	// 10% off against a 1% tolerance.
	err := AssertSlippageTolerance(&tolerance,
		[2]sdkmath.Int{sdkmath.NewInt(110_000), sdkmath.NewInt(100_000)},
		[2]sdkmath.Int{sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000)},
	)
	require.ErrorIs(err, ErrSlippageExceeded)

	// Symmetric in direction.
	err = AssertSlippageTolerance(&tolerance,
		[2]sdkmath.Int{sdkmath.NewInt(100_000), sdkmath.NewInt(110_000)},
		[2]sdkmath.Int{sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000)},
	)
	require.ErrorIs(err, ErrSlippageExceeded)

	require.NoError(AssertSlippageTolerance(nil,
		[2]sdkmath.Int{sdkmath.NewInt(110_000), sdkmath.NewInt(100_000)},
		[2]sdkmath.Int{sdkmath.NewInt(1_000_000), sdkmath.NewInt(1_000_000)},
	))
}

func TestValidateCommissions(t *testing.T) {
	require := require.New(t)

	require.NoError(ValidateCommissions(dec(t, "0.003"), ZeroCommission()))
	require.NoError(ValidateCommissions(dec(t, "0.5"), dec(t, "0.499")))

	require.ErrorIs(ValidateCommissions(dec(t, "1.0"), ZeroCommission()), ErrInvalidCommission)
	require.ErrorIs(ValidateCommissions(dec(t, "0.5"), dec(t, "0.5")), ErrInvalidCommission)
	require.ErrorIs(ValidateCommissions(dec(t, "-0.1"), ZeroCommission()), ErrInvalidCommission)
}
