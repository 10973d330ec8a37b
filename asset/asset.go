// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/host"
)

// Info identifies one side of a trading pair: either a native
// denomination or a custodial token contract. Exactly one field is set.
// The JSON shape matches the wire format used by token clients:
// {"native":"utgd"} or {"token":"tswap1..."}.
type Info struct {
	Native string       `json:"native,omitempty"`
	Token  host.Address `json:"token,omitempty"`
}

func NativeInfo(denom string) Info {
	return Info{Native: denom}
}

func TokenInfo(contract host.Address) Info {
	return Info{Token: contract}
}

func (i Info) IsNative() bool {
	return i.Native != ""
}

func (i Info) Validate() error {
	if (i.Native == "") == (i.Token == "") {
		return ErrInvalidAssetInfo
	}
	return nil
}

func (i Info) Equal(other Info) bool {
	return i.Native == other.Native && i.Token == other.Token
}

func (i Info) String() string {
	if i.IsNative() {
		return i.Native
	}
	return i.Token.String()
}

// orderKey is the total-order key: variant tag first, then identifier.
// Used both for canonical pair keys and registry ordering.
func (i Info) orderKey() []byte {
	if i.IsNative() {
		return append([]byte{0x00}, i.Native...)
	}
	return append([]byte{0x01}, i.Token...)
}

// Compare imposes a total order over asset infos.
func Compare(a Info, b Info) int {
	return bytes.Compare(a.orderKey(), b.orderKey())
}

// PairKey canonicalizes an unordered pair of asset infos into a
// registry key: the two order keys, lesser first, length-delimited so
// distinct pairs can never collide. PairKey([A,B]) == PairKey([B,A]).
func PairKey(infos [2]Info) []byte {
	lo, hi := infos[0].orderKey(), infos[1].orderKey()
	if bytes.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	k := make([]byte, 0, 1+len(lo)+len(hi))
	k = append(k, byte(len(lo)))
	k = append(k, lo...)
	return append(k, hi...)
}

// QueryBalance reads the live holding of this asset for holder: the bank
// ledger for natives, a balance query against the token contract
// otherwise.
func (i Info) QueryBalance(ctx context.Context, querier host.Querier, holder host.Address) (sdkmath.Int, error) {
	if i.IsNative() {
		balance, err := querier.QueryBalance(ctx, holder, i.Native)
		if err != nil {
			return sdkmath.Int{}, fmt.Errorf("%w: %s", ErrExternalQueryFailed, err)
		}
		return balance, nil
	}
	req, err := json.Marshal(map[string]any{
		"balance": map[string]any{"address": holder},
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	raw, err := querier.QuerySmart(ctx, i.Token, req)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s", ErrExternalQueryFailed, err)
	}
	var resp struct {
		Balance sdkmath.Int `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s", ErrExternalQueryFailed, err)
	}
	return resp.Balance, nil
}

// Asset pairs an Info with an amount.
type Asset struct {
	Info   Info        `json:"info"`
	Amount sdkmath.Int `json:"amount"`
}

func (a Asset) Validate() error {
	if err := a.Info.Validate(); err != nil {
		return err
	}
	return ValidateAmount(a.Amount)
}

// TransferMsg builds the directive moving this asset from the emitting
// contract to recipient.
func (a Asset) TransferMsg(recipient host.Address) (host.Msg, error) {
	if a.Info.IsNative() {
		return host.Msg{BankSend: &host.BankSendMsg{
			ToAddress: recipient,
			Amount:    host.Coins{host.NewCoin(a.Info.Native, a.Amount)},
		}}, nil
	}
	inner, err := json.Marshal(map[string]any{
		"transfer": map[string]any{
			"recipient": recipient,
			"amount":    a.Amount,
		},
	})
	if err != nil {
		return host.Msg{}, err
	}
	return host.Msg{Execute: &host.ExecuteContractMsg{
		Contract: a.Info.Token,
		Msg:      inner,
	}}, nil
}

// TransferFromMsg builds the directive pulling this asset from owner to
// recipient via a pre-approved allowance. Only valid for token assets;
// native deposits arrive as attached funds instead.
func (a Asset) TransferFromMsg(owner host.Address, recipient host.Address) (host.Msg, error) {
	if a.Info.IsNative() {
		return host.Msg{}, ErrInvalidAssetInfo
	}
	inner, err := json.Marshal(map[string]any{
		"transfer_from": map[string]any{
			"owner":     owner,
			"recipient": recipient,
			"amount":    a.Amount,
		},
	})
	if err != nil {
		return host.Msg{}, err
	}
	return host.Msg{Execute: &host.ExecuteContractMsg{
		Contract: a.Info.Token,
		Msg:      inner,
	}}, nil
}

// AssertSentFunds checks that, for a native asset, the stated amount
// matches the funds actually attached to the call.
func (a Asset) AssertSentFunds(info host.MsgInfo) error {
	if !a.Info.IsNative() {
		return nil
	}
	if !info.Funds.AmountOf(a.Info.Native).Equal(a.Amount) {
		return ErrFundsMismatch
	}
	return nil
}

var maxUint128 = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// ValidateAmount bounds message amounts to the unsigned 128-bit range.
func ValidateAmount(amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount
	}
	if amount.GT(maxUint128) {
		return ErrAmountOverflow
	}
	return nil
}
