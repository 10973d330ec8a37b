// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pair

import "errors"

var (
	ErrUnknownMsg     = errors.New("unknown message variant")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUninitialized  = errors.New("liquidity token not linked yet")
	ErrAlreadyLinked  = errors.New("liquidity token already linked")
	ErrAssetMismatch  = errors.New("asset does not belong to the pair")
	ErrDuplicateAsset = errors.New("pair assets must differ")
)
