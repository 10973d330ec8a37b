// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tswaptest wires a complete in-memory exchange app for tests:
// all four contract codes registered, with helpers for the multi-step
// flows (factory-driven pair creation, allowances, hook sends) that
// scenario tests repeat.
package tswaptest

import (
	"context"
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/factory"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/token"
	"github.com/tswaplabs/tswap/whitelist"
)

// Stable code ids used by every suite.
const (
	WhitelistCodeID uint64 = 1
	TokenCodeID     uint64 = 2
	PairCodeID      uint64 = 3
	FactoryCodeID   uint64 = 4
)

type Suite struct {
	T   *testing.T
	App *host.App
	Ctx context.Context
}

func New(t *testing.T) *Suite {
	app := host.NewApp(nil)
	app.RegisterCode(WhitelistCodeID, &whitelist.Contract{})
	app.RegisterCode(TokenCodeID, &token.Contract{})
	app.RegisterCode(PairCodeID, &pair.Contract{})
	app.RegisterCode(FactoryCodeID, &factory.Contract{})
	return &Suite{
		T:   t,
		App: app,
		Ctx: context.Background(),
	}
}

// Fund credits native coins to addr.
func (s *Suite) Fund(addr host.Address, coins ...host.Coin) {
	require.NoError(s.T, s.App.FundAccount(s.Ctx, addr, coins))
}

// Instantiate creates a contract and fails the test on error.
func (s *Suite) Instantiate(sender host.Address, codeID uint64, msg any, label string) host.Address {
	raw, err := json.Marshal(msg)
	require.NoError(s.T, err)
	addr, err := s.App.Instantiate(s.Ctx, sender, codeID, raw, nil, label)
	require.NoError(s.T, err)
	return addr
}

// Execute runs a contract call and fails the test on error.
func (s *Suite) Execute(sender host.Address, contract host.Address, msg any, funds ...host.Coin) []byte {
	data, err := s.TryExecute(sender, contract, msg, funds...)
	require.NoError(s.T, err)
	return data
}

// TryExecute runs a contract call and returns its error for assertion.
func (s *Suite) TryExecute(sender host.Address, contract host.Address, msg any, funds ...host.Coin) ([]byte, error) {
	raw, err := json.Marshal(msg)
	require.NoError(s.T, err)
	return s.App.Execute(s.Ctx, sender, contract, raw, funds)
}

// Query runs a smart query and decodes the response into out.
func (s *Suite) Query(contract host.Address, msg any, out any) {
	raw, err := json.Marshal(msg)
	require.NoError(s.T, err)
	resp, err := s.App.Query(s.Ctx, contract, raw)
	require.NoError(s.T, err)
	require.NoError(s.T, json.Unmarshal(resp, out))
}

// TryQuery runs a smart query and returns its error for assertion.
func (s *Suite) TryQuery(contract host.Address, msg any) ([]byte, error) {
	raw, err := json.Marshal(msg)
	require.NoError(s.T, err)
	return s.App.Query(s.Ctx, contract, raw)
}

// CreateFactory instantiates a factory owned by sender with the
// standard code ids.
func (s *Suite) CreateFactory(sender host.Address, defaultCommission *sdkmath.LegacyDec) host.Address {
	return s.Instantiate(sender, FactoryCodeID, factory.InstantiateMsg{
		PairCodeID:        PairCodeID,
		TokenCodeID:       TokenCodeID,
		DefaultCommission: defaultCommission,
	}, "tswap factory")
}

// CreateToken instantiates a plain custodial token with the given
// initial holders.
func (s *Suite) CreateToken(sender host.Address, symbol string, balances ...token.InitialCoin) host.Address {
	return s.Instantiate(sender, TokenCodeID, token.InstantiateMsg{
		Name:            symbol + " test token",
		Symbol:          symbol,
		Decimals:        6,
		InitialBalances: balances,
	}, symbol)
}

// CreatePair creates a pair through the factory and returns its registry
// entry with both addresses populated.
func (s *Suite) CreatePair(sender host.Address, factoryAddr host.Address, infos [2]asset.Info) factory.PairEntry {
	s.Execute(sender, factoryAddr, factory.ExecuteMsg{
		CreatePair: &factory.CreatePairMsg{AssetInfos: infos},
	})
	var entry factory.PairEntry
	s.Query(factoryAddr, factory.QueryMsg{Pair: &factory.PairQuery{AssetInfos: infos}}, &entry)
	require.False(s.T, entry.ContractAddr.Empty())
	require.False(s.T, entry.LiquidityToken.Empty())
	return entry
}

// TokenBalance reads holder's balance on a custodial token.
func (s *Suite) TokenBalance(tokenAddr, holder host.Address) sdkmath.Int {
	var resp token.BalanceResponse
	s.Query(tokenAddr, token.QueryMsg{Balance: &token.BalanceQuery{Address: holder}}, &resp)
	return resp.Balance
}

// NativeBalance reads holder's bank balance.
func (s *Suite) NativeBalance(holder host.Address, denom string) sdkmath.Int {
	balance, err := s.App.Balance(s.Ctx, holder, denom)
	require.NoError(s.T, err)
	return balance
}

// IncreaseAllowance lets spender pull owner's tokens.
func (s *Suite) IncreaseAllowance(owner, tokenAddr, spender host.Address, amount sdkmath.Int) {
	s.Execute(owner, tokenAddr, token.ExecuteMsg{
		IncreaseAllowance: &token.ChangeAllowanceMsg{Spender: spender, Amount: amount},
	})
}

// SendWithHook moves sender's tokens to a contract together with an
// embedded instruction.
func (s *Suite) SendWithHook(sender, tokenAddr, contract host.Address, amount sdkmath.Int, hook any) ([]byte, error) {
	raw, err := json.Marshal(hook)
	require.NoError(s.T, err)
	return s.TryExecute(sender, tokenAddr, token.ExecuteMsg{
		Send: &token.SendMsg{Contract: contract, Amount: amount, Msg: raw},
	})
}

// Pool reads a pair's reserves and share supply.
func (s *Suite) Pool(pairAddr host.Address) pair.PoolResponse {
	var resp pair.PoolResponse
	s.Query(pairAddr, pair.QueryMsg{Pool: &struct{}{}}, &resp)
	return resp
}

// Simulate prices a swap read-only.
func (s *Suite) Simulate(pairAddr host.Address, offer asset.Asset) pair.SimulationResponse {
	var resp pair.SimulationResponse
	s.Query(pairAddr, pair.QueryMsg{Simulation: &pair.SimulationQuery{OfferAsset: offer}}, &resp)
	return resp
}

// ReverseSimulate solves a swap backwards read-only.
func (s *Suite) ReverseSimulate(pairAddr host.Address, ask asset.Asset) pair.ReverseSimulationResponse {
	var resp pair.ReverseSimulationResponse
	s.Query(pairAddr, pair.QueryMsg{ReverseSimulation: &pair.ReverseSimulationQuery{AskAsset: ask}}, &resp)
	return resp
}
