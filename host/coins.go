// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	sdkmath "cosmossdk.io/math"
)

// Coin is an amount of a single native denomination. Amounts marshal as
// decimal strings so JSON clients never see raw integers.
type Coin struct {
	Denom  string      `json:"denom"`
	Amount sdkmath.Int `json:"amount"`
}

func NewCoin(denom string, amount sdkmath.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

func NewInt64Coin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: sdkmath.NewInt(amount)}
}

type Coins []Coin

// AmountOf returns the attached amount of denom, zero if absent.
func (cs Coins) AmountOf(denom string) sdkmath.Int {
	for _, c := range cs {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return sdkmath.ZeroInt()
}

func (cs Coins) Validate() error {
	seen := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		if c.Denom == "" || c.Amount.IsNil() || c.Amount.IsNegative() {
			return ErrInvalidCoins
		}
		if _, ok := seen[c.Denom]; ok {
			return ErrInvalidCoins
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}
