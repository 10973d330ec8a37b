// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"encoding/json"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/host"
)

type InstantiateMsg struct {
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	Decimals        uint8         `json:"decimals"`
	InitialBalances []InitialCoin `json:"initial_balances"`
	Mint            *MinterInfo   `json:"mint,omitempty"`
	WhitelistGroup  *host.Address `json:"whitelist_group,omitempty"`
}

type InitialCoin struct {
	Address host.Address `json:"address"`
	Amount  sdkmath.Int  `json:"amount"`
}

type MinterInfo struct {
	Minter host.Address `json:"minter"`
}

// ExecuteMsg is the closed variant set; exactly one field is set.
type ExecuteMsg struct {
	Transfer          *TransferMsg        `json:"transfer,omitempty"`
	Send              *SendMsg            `json:"send,omitempty"`
	TransferFrom      *TransferFromMsg    `json:"transfer_from,omitempty"`
	Mint              *MintMsg            `json:"mint,omitempty"`
	Burn              *BurnMsg            `json:"burn,omitempty"`
	BurnFrom          *BurnFromMsg        `json:"burn_from,omitempty"`
	IncreaseAllowance *ChangeAllowanceMsg `json:"increase_allowance,omitempty"`
	DecreaseAllowance *ChangeAllowanceMsg `json:"decrease_allowance,omitempty"`
}

type TransferMsg struct {
	Recipient host.Address `json:"recipient"`
	Amount    sdkmath.Int  `json:"amount"`
}

// SendMsg moves tokens to a contract and invokes its receive hook with
// the embedded message.
type SendMsg struct {
	Contract host.Address    `json:"contract"`
	Amount   sdkmath.Int     `json:"amount"`
	Msg      json.RawMessage `json:"msg"`
}

type TransferFromMsg struct {
	Owner     host.Address `json:"owner"`
	Recipient host.Address `json:"recipient"`
	Amount    sdkmath.Int  `json:"amount"`
}

type MintMsg struct {
	Recipient host.Address `json:"recipient"`
	Amount    sdkmath.Int  `json:"amount"`
}

type BurnMsg struct {
	Amount sdkmath.Int `json:"amount"`
}

type BurnFromMsg struct {
	Owner  host.Address `json:"owner"`
	Amount sdkmath.Int  `json:"amount"`
}

type ChangeAllowanceMsg struct {
	Spender host.Address `json:"spender"`
	Amount  sdkmath.Int  `json:"amount"`
}

// ReceiveMsg is the hook delivered to the recipient contract of a Send.
type ReceiveMsg struct {
	Sender host.Address    `json:"sender"`
	Amount sdkmath.Int     `json:"amount"`
	Msg    json.RawMessage `json:"msg"`
}

// ReceiveEnvelope wraps ReceiveMsg the way recipients expect it on the
// wire: {"receive":{...}}.
type ReceiveEnvelope struct {
	Receive ReceiveMsg `json:"receive"`
}

type QueryMsg struct {
	Balance   *BalanceQuery   `json:"balance,omitempty"`
	TokenInfo *struct{}       `json:"token_info,omitempty"`
	Allowance *AllowanceQuery `json:"allowance,omitempty"`
	Minter    *struct{}       `json:"minter,omitempty"`
}

type BalanceQuery struct {
	Address host.Address `json:"address"`
}

type AllowanceQuery struct {
	Owner   host.Address `json:"owner"`
	Spender host.Address `json:"spender"`
}

type BalanceResponse struct {
	Balance sdkmath.Int `json:"balance"`
}

type TokenInfoResponse struct {
	Name        string      `json:"name"`
	Symbol      string      `json:"symbol"`
	Decimals    uint8       `json:"decimals"`
	TotalSupply sdkmath.Int `json:"total_supply"`
}

type AllowanceResponse struct {
	Allowance sdkmath.Int `json:"allowance"`
}

type MinterResponse struct {
	Minter host.Address `json:"minter"`
}
