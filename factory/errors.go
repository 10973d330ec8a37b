// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import "errors"

var (
	ErrUnknownMsg        = errors.New("unknown message variant")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrDuplicateAsset    = errors.New("pair assets must differ")
	ErrPairAlreadyExists = errors.New("pair already exists")
	ErrPairNotFound      = errors.New("pair not found")
)
