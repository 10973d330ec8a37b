// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token implements the custodial token contract: transferable
// balances with allowances, an optional minter, a send hook for paying
// into contracts, and an optional whitelist gate that defers membership
// checks to an external group contract.
package token

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/whitelist"
)

type Contract struct{}

var _ host.Contract = (*Contract)(nil)

func (*Contract) Instantiate(ctx context.Context, deps host.Deps, _ host.Env, _ host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg InstantiateMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}

	total := sdkmath.ZeroInt()
	for _, coin := range msg.InitialBalances {
		if err := asset.ValidateAmount(coin.Amount); err != nil {
			return nil, err
		}
		current, err := getAmount(ctx, deps.Store, balanceKey(coin.Address))
		if err != nil {
			return nil, err
		}
		if err := setAmount(ctx, deps.Store, balanceKey(coin.Address), current.Add(coin.Amount)); err != nil {
			return nil, err
		}
		total = total.Add(coin.Amount)
	}

	info := tokenInfo{
		Name:        msg.Name,
		Symbol:      msg.Symbol,
		Decimals:    msg.Decimals,
		TotalSupply: total,
	}
	if msg.Mint != nil {
		minter := msg.Mint.Minter
		info.Minter = &minter
	}
	if msg.WhitelistGroup != nil {
		group := *msg.WhitelistGroup
		info.WhitelistGroup = &group
	}
	if err := setTokenInfo(ctx, deps.Store, info); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (c *Contract) Execute(ctx context.Context, deps host.Deps, env host.Env, info host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg ExecuteMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	switch {
	case msg.Transfer != nil:
		return c.transfer(ctx, deps, info.Sender, msg.Transfer.Recipient, msg.Transfer.Amount)
	case msg.Send != nil:
		return c.send(ctx, deps, info.Sender, msg.Send)
	case msg.TransferFrom != nil:
		return c.transferFrom(ctx, deps, info.Sender, msg.TransferFrom)
	case msg.Mint != nil:
		return c.mint(ctx, deps, info.Sender, msg.Mint)
	case msg.Burn != nil:
		return c.burn(ctx, deps, info.Sender, info.Sender, msg.Burn.Amount)
	case msg.BurnFrom != nil:
		return c.burnFrom(ctx, deps, info.Sender, msg.BurnFrom)
	case msg.IncreaseAllowance != nil:
		return c.changeAllowance(ctx, deps, info.Sender, msg.IncreaseAllowance, true)
	case msg.DecreaseAllowance != nil:
		return c.changeAllowance(ctx, deps, info.Sender, msg.DecreaseAllowance, false)
	default:
		return nil, ErrUnknownMsg
	}
}

func (c *Contract) transfer(ctx context.Context, deps host.Deps, sender, recipient host.Address, amount sdkmath.Int) (*host.Response, error) {
	if err := c.assertWhitelisted(ctx, deps, sender, recipient); err != nil {
		return nil, err
	}
	if err := moveBalance(ctx, deps.Store, sender, recipient, amount); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (c *Contract) send(ctx context.Context, deps host.Deps, sender host.Address, msg *SendMsg) (*host.Response, error) {
	if err := c.assertWhitelisted(ctx, deps, sender, msg.Contract); err != nil {
		return nil, err
	}
	if err := moveBalance(ctx, deps.Store, sender, msg.Contract, msg.Amount); err != nil {
		return nil, err
	}
	hook, err := json.Marshal(ReceiveEnvelope{Receive: ReceiveMsg{
		Sender: sender,
		Amount: msg.Amount,
		Msg:    msg.Msg,
	}})
	if err != nil {
		return nil, err
	}
	resp := &host.Response{}
	return resp.AddMessage(host.Msg{Execute: &host.ExecuteContractMsg{
		Contract: msg.Contract,
		Msg:      hook,
	}}), nil
}

func (c *Contract) transferFrom(ctx context.Context, deps host.Deps, spender host.Address, msg *TransferFromMsg) (*host.Response, error) {
	if err := c.assertWhitelisted(ctx, deps, msg.Owner, msg.Recipient); err != nil {
		return nil, err
	}
	if err := spendAllowance(ctx, deps.Store, msg.Owner, spender, msg.Amount); err != nil {
		return nil, err
	}
	if err := moveBalance(ctx, deps.Store, msg.Owner, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (c *Contract) mint(ctx context.Context, deps host.Deps, sender host.Address, msg *MintMsg) (*host.Response, error) {
	if err := asset.ValidateAmount(msg.Amount); err != nil {
		return nil, err
	}
	if msg.Amount.IsZero() {
		return nil, ErrInvalidZeroAmount
	}
	info, err := getTokenInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if info.Minter == nil {
		return nil, ErrNoMinter
	}
	if *info.Minter != sender {
		return nil, ErrUnauthorized
	}
	if err := c.assertWhitelisted(ctx, deps, msg.Recipient); err != nil {
		return nil, err
	}
	balance, err := getAmount(ctx, deps.Store, balanceKey(msg.Recipient))
	if err != nil {
		return nil, err
	}
	if err := setAmount(ctx, deps.Store, balanceKey(msg.Recipient), balance.Add(msg.Amount)); err != nil {
		return nil, err
	}
	info.TotalSupply = info.TotalSupply.Add(msg.Amount)
	if err := setTokenInfo(ctx, deps.Store, info); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (c *Contract) burn(ctx context.Context, deps host.Deps, _ host.Address, owner host.Address, amount sdkmath.Int) (*host.Response, error) {
	if err := asset.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrInvalidZeroAmount
	}
	if err := c.assertWhitelisted(ctx, deps, owner); err != nil {
		return nil, err
	}
	balance, err := getAmount(ctx, deps.Store, balanceKey(owner))
	if err != nil {
		return nil, err
	}
	if balance.LT(amount) {
		return nil, fmt.Errorf("%w: balance %s, burning %s", ErrInsufficientFunds, balance, amount)
	}
	if err := setAmount(ctx, deps.Store, balanceKey(owner), balance.Sub(amount)); err != nil {
		return nil, err
	}
	info, err := getTokenInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	info.TotalSupply = info.TotalSupply.Sub(amount)
	if err := setTokenInfo(ctx, deps.Store, info); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (c *Contract) burnFrom(ctx context.Context, deps host.Deps, spender host.Address, msg *BurnFromMsg) (*host.Response, error) {
	if err := spendAllowance(ctx, deps.Store, msg.Owner, spender, msg.Amount); err != nil {
		return nil, err
	}
	return c.burn(ctx, deps, spender, msg.Owner, msg.Amount)
}

func (c *Contract) changeAllowance(ctx context.Context, deps host.Deps, owner host.Address, msg *ChangeAllowanceMsg, increase bool) (*host.Response, error) {
	if err := asset.ValidateAmount(msg.Amount); err != nil {
		return nil, err
	}
	if owner == msg.Spender {
		return nil, ErrUnauthorized
	}
	key := allowanceKey(owner, msg.Spender)
	current, err := getAmount(ctx, deps.Store, key)
	if err != nil {
		return nil, err
	}
	if increase {
		current = current.Add(msg.Amount)
	} else {
		current = current.Sub(msg.Amount)
		if current.IsNegative() {
			current = sdkmath.ZeroInt()
		}
	}
	if err := setAmount(ctx, deps.Store, key, current); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

// assertWhitelisted checks each address against the configured group.
// Tokens without a group admit everyone.
func (*Contract) assertWhitelisted(ctx context.Context, deps host.Deps, addrs ...host.Address) error {
	info, err := getTokenInfo(ctx, deps.Store)
	if err != nil {
		return err
	}
	if info.WhitelistGroup == nil {
		return nil
	}
	for _, addr := range addrs {
		ok, err := whitelist.IsMember(ctx, deps.Querier, *info.WhitelistGroup, addr)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotWhitelisted, addr)
		}
	}
	return nil
}

func moveBalance(ctx context.Context, store host.Store, from, to host.Address, amount sdkmath.Int) error {
	if err := asset.ValidateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return ErrInvalidZeroAmount
	}
	fromBalance, err := getAmount(ctx, store, balanceKey(from))
	if err != nil {
		return err
	}
	if fromBalance.LT(amount) {
		return fmt.Errorf("%w: balance %s, sending %s", ErrInsufficientFunds, fromBalance, amount)
	}
	if err := setAmount(ctx, store, balanceKey(from), fromBalance.Sub(amount)); err != nil {
		return err
	}
	toBalance, err := getAmount(ctx, store, balanceKey(to))
	if err != nil {
		return err
	}
	return setAmount(ctx, store, balanceKey(to), toBalance.Add(amount))
}

func spendAllowance(ctx context.Context, store host.Store, owner, spender host.Address, amount sdkmath.Int) error {
	key := allowanceKey(owner, spender)
	allowance, err := getAmount(ctx, store, key)
	if err != nil {
		return err
	}
	if allowance.LT(amount) {
		return fmt.Errorf("%w: allowance %s, spending %s", ErrInsufficientAllowance, allowance, amount)
	}
	return setAmount(ctx, store, key, allowance.Sub(amount))
}

func (*Contract) Query(ctx context.Context, deps host.QueryDeps, _ host.Env, rawMsg []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	switch {
	case msg.Balance != nil:
		balance, err := getAmount(ctx, deps.Store, balanceKey(msg.Balance.Address))
		if err != nil {
			return nil, err
		}
		return json.Marshal(BalanceResponse{Balance: balance})
	case msg.TokenInfo != nil:
		info, err := getTokenInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		return json.Marshal(TokenInfoResponse{
			Name:        info.Name,
			Symbol:      info.Symbol,
			Decimals:    info.Decimals,
			TotalSupply: info.TotalSupply,
		})
	case msg.Allowance != nil:
		allowance, err := getAmount(ctx, deps.Store, allowanceKey(msg.Allowance.Owner, msg.Allowance.Spender))
		if err != nil {
			return nil, err
		}
		return json.Marshal(AllowanceResponse{Allowance: allowance})
	case msg.Minter != nil:
		info, err := getTokenInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		if info.Minter == nil {
			return nil, ErrNoMinter
		}
		return json.Marshal(MinterResponse{Minter: *info.Minter})
	default:
		return nil, ErrUnknownMsg
	}
}

func (*Contract) Reply(context.Context, host.Deps, host.Env, host.Reply) (*host.Response, error) {
	return nil, host.ErrUnknownReply
}
