// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"context"
	"encoding/json"
	"errors"

	sdkmath "cosmossdk.io/math"
	"github.com/ava-labs/avalanchego/database"

	"github.com/tswaplabs/tswap/host"
)

// tokenInfo is the persistent contract config plus running supply.
type tokenInfo struct {
	Name           string        `json:"name"`
	Symbol         string        `json:"symbol"`
	Decimals       uint8         `json:"decimals"`
	TotalSupply    sdkmath.Int   `json:"total_supply"`
	Minter         *host.Address `json:"minter,omitempty"`
	WhitelistGroup *host.Address `json:"whitelist_group,omitempty"`
}

var (
	tokenInfoKey    = []byte("token_info")
	balancePrefix   = []byte("balance/")
	allowancePrefix = []byte("allowance/")
)

func balanceKey(addr host.Address) []byte {
	return append(append([]byte{}, balancePrefix...), addr...)
}

func allowanceKey(owner, spender host.Address) []byte {
	k := append(append([]byte{}, allowancePrefix...), owner...)
	k = append(k, '/')
	return append(k, spender...)
}

func getTokenInfo(ctx context.Context, store host.Immutable) (tokenInfo, error) {
	raw, err := store.GetValue(ctx, tokenInfoKey)
	if err != nil {
		return tokenInfo{}, err
	}
	var info tokenInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return tokenInfo{}, err
	}
	return info, nil
}

func setTokenInfo(ctx context.Context, store host.Mutable, info tokenInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return store.Insert(ctx, tokenInfoKey, raw)
}

func getAmount(ctx context.Context, store host.Immutable, key []byte) (sdkmath.Int, error) {
	raw, err := store.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return sdkmath.ZeroInt(), nil
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	var amount sdkmath.Int
	if err := amount.Unmarshal(raw); err != nil {
		return sdkmath.Int{}, err
	}
	return amount, nil
}

func setAmount(ctx context.Context, store host.Mutable, key []byte, amount sdkmath.Int) error {
	if amount.IsZero() {
		return store.Remove(ctx, key)
	}
	raw, err := amount.Marshal()
	if err != nil {
		return err
	}
	return store.Insert(ctx, key, raw)
}
