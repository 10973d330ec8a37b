// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pricing implements the constant-product math shared by the
// pair engine's execute path and its simulation queries. Everything here
// is pure: callers pass live reserves in and apply the results. All
// divisions floor; intermediates that can exceed 128 bits (such as the
// reserve product) run on big.Int.
package pricing

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// DefaultCommission is the liquidity-provider commission applied to
// pairs created without an explicit rate: 0.3%.
func DefaultCommission() sdkmath.LegacyDec {
	return sdkmath.LegacyMustNewDecFromStr("0.003")
}

// ZeroCommission is the rate for a disabled commission leg.
func ZeroCommission() sdkmath.LegacyDec {
	return sdkmath.LegacyZeroDec()
}

// SwapResult is the outcome of pricing one swap. ReturnAmount is net of
// both commissions; the owner commission leaves the pool while the LP
// commission stays behind and accrues to share holders.
type SwapResult struct {
	ReturnAmount    sdkmath.Int
	SpreadAmount    sdkmath.Int
	LPCommission    sdkmath.Int
	OwnerCommission sdkmath.Int
}

// CommissionAmount is the total fee charged on the swap.
func (r SwapResult) CommissionAmount() sdkmath.Int {
	return r.LPCommission.Add(r.OwnerCommission)
}

// ReturnBeforeCommission is the gross constant-product return.
func (r SwapResult) ReturnBeforeCommission() sdkmath.Int {
	return r.ReturnAmount.Add(r.LPCommission).Add(r.OwnerCommission)
}

// Swap prices offerAmount against the given reserves:
//
//	return = ask_pool - floor(offer_pool * ask_pool / (offer_pool + offer))
//
// Spread is the shortfall against ideal linear-price execution;
// commissions are deducted from the gross return.
func Swap(offerPool, askPool, offerAmount sdkmath.Int, lpRate, ownerRate sdkmath.LegacyDec) (SwapResult, error) {
	if offerAmount.IsZero() {
		return SwapResult{}, ErrInvalidZeroAmount
	}
	if offerPool.IsZero() || askPool.IsZero() {
		return SwapResult{}, ErrEmptyPool
	}

	cp := new(big.Int).Mul(offerPool.BigInt(), askPool.BigInt())
	denom := new(big.Int).Add(offerPool.BigInt(), offerAmount.BigInt())
	keep := new(big.Int).Quo(cp, denom)
	grossReturn := sdkmath.NewIntFromBigInt(new(big.Int).Sub(askPool.BigInt(), keep))

	ideal := new(big.Int).Mul(offerAmount.BigInt(), askPool.BigInt())
	ideal.Quo(ideal, offerPool.BigInt())
	spread := sdkmath.NewIntFromBigInt(ideal).Sub(grossReturn)
	if spread.IsNegative() {
		spread = sdkmath.ZeroInt()
	}

	lpCommission := lpRate.MulInt(grossReturn).TruncateInt()
	ownerCommission := ownerRate.MulInt(grossReturn).TruncateInt()

	return SwapResult{
		ReturnAmount:    grossReturn.Sub(lpCommission).Sub(ownerCommission),
		SpreadAmount:    spread,
		LPCommission:    lpCommission,
		OwnerCommission: ownerCommission,
	}, nil
}

// ReverseResult is the outcome of solving a swap backwards.
type ReverseResult struct {
	OfferAmount     sdkmath.Int
	SpreadAmount    sdkmath.Int
	LPCommission    sdkmath.Int
	OwnerCommission sdkmath.Int
}

func (r ReverseResult) CommissionAmount() sdkmath.Int {
	return r.LPCommission.Add(r.OwnerCommission)
}

// ReverseSwap solves for the offer required to net askAmount after
// commissions. It is the algebraic inverse of Swap:
//
//	gross  = floor(ask / (1 - lp_rate - owner_rate))
//	offer  = floor(offer_pool * ask_pool / (ask_pool - gross)) - offer_pool
//
// so simulating the returned offer reproduces askAmount up to integer
// rounding.
func ReverseSwap(offerPool, askPool, askAmount sdkmath.Int, lpRate, ownerRate sdkmath.LegacyDec) (ReverseResult, error) {
	if askAmount.IsZero() {
		return ReverseResult{}, ErrInvalidZeroAmount
	}
	if offerPool.IsZero() || askPool.IsZero() {
		return ReverseResult{}, ErrEmptyPool
	}
	oneMinusCommission := sdkmath.LegacyOneDec().Sub(lpRate).Sub(ownerRate)
	if !oneMinusCommission.IsPositive() {
		return ReverseResult{}, ErrInvalidCommission
	}

	gross := sdkmath.LegacyNewDecFromInt(askAmount).Quo(oneMinusCommission).TruncateInt()
	if gross.GTE(askPool) {
		return ReverseResult{}, ErrExcessiveAsk
	}

	cp := new(big.Int).Mul(offerPool.BigInt(), askPool.BigInt())
	denom := new(big.Int).Sub(askPool.BigInt(), gross.BigInt())
	offer := sdkmath.NewIntFromBigInt(new(big.Int).Quo(cp, denom)).Sub(offerPool)
	if offer.IsNegative() {
		offer = sdkmath.ZeroInt()
	}

	ideal := new(big.Int).Mul(offer.BigInt(), askPool.BigInt())
	ideal.Quo(ideal, offerPool.BigInt())
	spread := sdkmath.NewIntFromBigInt(ideal).Sub(gross)
	if spread.IsNegative() {
		spread = sdkmath.ZeroInt()
	}

	return ReverseResult{
		OfferAmount:     offer,
		SpreadAmount:    spread,
		LPCommission:    lpRate.MulInt(gross).TruncateInt(),
		OwnerCommission: ownerRate.MulInt(gross).TruncateInt(),
	}, nil
}

// InitialShares is the liquidity minted for the first deposit:
// floor(sqrt(amount0 * amount1)). The deposited ratio establishes the
// initial price.
func InitialShares(amount0, amount1 sdkmath.Int) (sdkmath.Int, error) {
	if amount0.IsZero() || amount1.IsZero() {
		return sdkmath.Int{}, ErrInvalidZeroAmount
	}
	product := new(big.Int).Mul(amount0.BigInt(), amount1.BigInt())
	return sdkmath.NewIntFromBigInt(product.Sqrt(product)), nil
}

// ProportionalShares is the liquidity minted for a deposit into a
// non-empty pool, priced at the current ratio:
// min(amount_i * total_share / pool_i). Rounding always favors the pool.
func ProportionalShares(amount0, amount1, pool0, pool1, totalShare sdkmath.Int) (sdkmath.Int, error) {
	if pool0.IsZero() || pool1.IsZero() {
		return sdkmath.Int{}, ErrEmptyPool
	}
	share0 := new(big.Int).Mul(amount0.BigInt(), totalShare.BigInt())
	share0.Quo(share0, pool0.BigInt())
	share1 := new(big.Int).Mul(amount1.BigInt(), totalShare.BigInt())
	share1.Quo(share1, pool1.BigInt())
	if share0.Cmp(share1) > 0 {
		share0 = share1
	}
	share := sdkmath.NewIntFromBigInt(share0)
	if share.IsZero() {
		return sdkmath.Int{}, ErrInsufficientShares
	}
	return share, nil
}

// WithdrawAmount is one side's proportional payout for burning share
// out of totalShare: floor(pool * share / total_share).
func WithdrawAmount(pool, share, totalShare sdkmath.Int) sdkmath.Int {
	out := new(big.Int).Mul(pool.BigInt(), share.BigInt())
	out.Quo(out, totalShare.BigInt())
	return sdkmath.NewIntFromBigInt(out)
}

// AssertMaxSpread enforces the caller's spread limit. Without a belief
// price the realized spread is compared against the ideal gross return;
// with one, the gross return is compared against the return expected at
// the believed price. Both bases are pre-commission. A belief price must
// be positive.
func AssertMaxSpread(beliefPrice, maxSpread *sdkmath.LegacyDec, offerAmount, grossReturn, spreadAmount sdkmath.Int) error {
	if maxSpread == nil {
		return nil
	}
	if beliefPrice != nil {
		if !beliefPrice.IsPositive() {
			return ErrInvalidBeliefPrice
		}
		expected := sdkmath.LegacyNewDecFromInt(offerAmount).Quo(*beliefPrice).TruncateInt()
		shortfall := expected.Sub(grossReturn)
		if shortfall.IsPositive() &&
			sdkmath.LegacyNewDecFromInt(shortfall).Quo(sdkmath.LegacyNewDecFromInt(expected)).GT(*maxSpread) {
			return ErrSpreadExceeded
		}
		return nil
	}
	ideal := grossReturn.Add(spreadAmount)
	if ideal.IsZero() {
		return nil
	}
	if sdkmath.LegacyNewDecFromInt(spreadAmount).Quo(sdkmath.LegacyNewDecFromInt(ideal)).GT(*maxSpread) {
		return ErrSpreadExceeded
	}
	return nil
}

// AssertSlippageTolerance rejects deposits whose ratio deviates from the
// pool ratio by more than tolerance. Pools are the post-deposit
// balances, the reference point for what the deposit actually bought.
func AssertSlippageTolerance(tolerance *sdkmath.LegacyDec, deposits [2]sdkmath.Int, pools [2]sdkmath.Int) error {
	if tolerance == nil {
		return nil
	}
	if deposits[0].IsZero() || deposits[1].IsZero() || pools[0].IsZero() || pools[1].IsZero() {
		return ErrInvalidZeroAmount
	}
	oneMinusTolerance := sdkmath.LegacyOneDec().Sub(*tolerance)
	depositRatio := sdkmath.LegacyNewDecFromInt(deposits[0]).Quo(sdkmath.LegacyNewDecFromInt(deposits[1]))
	poolRatio := sdkmath.LegacyNewDecFromInt(pools[0]).Quo(sdkmath.LegacyNewDecFromInt(pools[1]))
	if depositRatio.Mul(oneMinusTolerance).GT(poolRatio) ||
		poolRatio.Mul(oneMinusTolerance).GT(depositRatio) {
		return ErrSlippageExceeded
	}
	return nil
}

// ValidateCommissions checks each rate lies in [0,1) and the combined
// rate stays below 1.
func ValidateCommissions(lpRate, ownerRate sdkmath.LegacyDec) error {
	one := sdkmath.LegacyOneDec()
	if lpRate.IsNegative() || ownerRate.IsNegative() || lpRate.GTE(one) || ownerRate.GTE(one) {
		return ErrInvalidCommission
	}
	if lpRate.Add(ownerRate).GTE(one) {
		return ErrInvalidCommission
	}
	return nil
}
