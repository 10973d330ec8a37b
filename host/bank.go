// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	sdkmath "cosmossdk.io/math"
)

// Native balances live directly in app state under bankPrefix, keyed by
// address then denom.

func bankBalanceKey(addr Address, denom string) []byte {
	k := make([]byte, 0, 1+len(addr)+1+len(denom))
	k = append(k, bankPrefix)
	k = append(k, addr...)
	k = append(k, keySeparator)
	return append(k, denom...)
}

func getBankBalance(ctx context.Context, im Immutable, addr Address, denom string) (sdkmath.Int, error) {
	v, err := im.GetValue(ctx, bankBalanceKey(addr, denom))
	if errors.Is(err, database.ErrNotFound) {
		return sdkmath.ZeroInt(), nil
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	var balance sdkmath.Int
	if err := balance.Unmarshal(v); err != nil {
		return sdkmath.Int{}, err
	}
	return balance, nil
}

func setBankBalance(ctx context.Context, mu Mutable, addr Address, denom string, balance sdkmath.Int) error {
	v, err := balance.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, bankBalanceKey(addr, denom), v)
}

func bankSend(ctx context.Context, mu Mutable, from Address, to Address, amount Coins) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	for _, c := range amount {
		fromBalance, err := getBankBalance(ctx, mu, from, c.Denom)
		if err != nil {
			return err
		}
		if fromBalance.LT(c.Amount) {
			return ErrInsufficientFunds
		}
		toBalance, err := getBankBalance(ctx, mu, to, c.Denom)
		if err != nil {
			return err
		}
		if err := setBankBalance(ctx, mu, from, c.Denom, fromBalance.Sub(c.Amount)); err != nil {
			return err
		}
		if err := setBankBalance(ctx, mu, to, c.Denom, toBalance.Add(c.Amount)); err != nil {
			return err
		}
	}
	return nil
}
