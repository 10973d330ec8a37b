// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import "errors"

var (
	ErrInvalidAssetInfo    = errors.New("asset info must be exactly one of native or token")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAmountOverflow      = errors.New("amount exceeds 128-bit range")
	ErrFundsMismatch       = errors.New("stated amount does not match attached funds")
	ErrExternalQueryFailed = errors.New("external query failed")
)
