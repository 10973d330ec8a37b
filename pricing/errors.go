// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "errors"

var (
	ErrInvalidZeroAmount  = errors.New("invalid zero amount")
	ErrEmptyPool          = errors.New("pool reserves are empty")
	ErrInvalidCommission  = errors.New("invalid commission")
	ErrInvalidBeliefPrice = errors.New("invalid belief price")
	ErrSpreadExceeded     = errors.New("max spread exceeded")
	ErrSlippageExceeded   = errors.New("slippage tolerance exceeded")
	ErrInsufficientShares = errors.New("insufficient liquidity minted")
	ErrExcessiveAsk       = errors.New("ask amount exceeds pool")
)
