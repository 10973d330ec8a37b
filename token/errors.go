// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import "errors"

var (
	ErrUnknownMsg            = errors.New("unknown message variant")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidZeroAmount     = errors.New("invalid zero amount")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrNoMinter              = errors.New("minting is not enabled")
	ErrNotWhitelisted        = errors.New("address is not a whitelist member")
)
