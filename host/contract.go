// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// Querier exposes synchronous cross-contract reads. Queries observe the
// in-flight state of the current transaction.
type Querier interface {
	QueryBalance(ctx context.Context, addr Address, denom string) (sdkmath.Int, error)
	QuerySmart(ctx context.Context, contract Address, req []byte) ([]byte, error)
}

// Deps is the explicit state handle passed into every mutating entry
// point: the contract's own namespaced store plus a querier over the
// whole app.
type Deps struct {
	Store   Store
	Querier Querier
}

// ReadStore is the read-only view handed to Query entry points.
type ReadStore interface {
	Immutable

	Iterate(ctx context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error
}

// QueryDeps is the read-only counterpart used by Query entry points.
type QueryDeps struct {
	Store   ReadStore
	Querier Querier
}

// Contract is one registered code. Messages are raw JSON; each contract
// dispatches over its own closed set of variants.
type Contract interface {
	Instantiate(ctx context.Context, deps Deps, env Env, info MsgInfo, msg []byte) (*Response, error)
	Execute(ctx context.Context, deps Deps, env Env, info MsgInfo, msg []byte) (*Response, error)
	Query(ctx context.Context, deps QueryDeps, env Env, msg []byte) ([]byte, error)
	Reply(ctx context.Context, deps Deps, env Env, reply Reply) (*Response, error)
}
