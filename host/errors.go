// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "errors"

var (
	ErrCodeNotFound      = errors.New("code id not registered")
	ErrContractNotFound  = errors.New("contract not found")
	ErrUnknownMsg        = errors.New("unknown message variant")
	ErrUnknownReply      = errors.New("unknown reply id")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidCoins      = errors.New("invalid coins")
	ErrContractPanic     = errors.New("contract panicked")
)
