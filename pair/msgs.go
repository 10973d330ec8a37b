// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pair

import (
	"encoding/json"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
)

type InstantiateMsg struct {
	AssetInfos          [2]asset.Info     `json:"asset_infos"`
	TokenCodeID         uint64            `json:"token_code_id"`
	Owner               host.Address      `json:"owner"`
	CommissionCollector host.Address      `json:"commission_collector"`
	LPCommission        sdkmath.LegacyDec `json:"lp_commission"`
	OwnerCommission     sdkmath.LegacyDec `json:"owner_commission"`
}

// ExecuteMsg is the closed variant set; exactly one field is set. Swaps
// offering a custodial token and all withdrawals arrive through Receive
// instead of their direct variants.
type ExecuteMsg struct {
	ProvideLiquidity *ProvideLiquidityMsg `json:"provide_liquidity,omitempty"`
	Swap             *SwapMsg             `json:"swap,omitempty"`
	Receive          *ReceiveMsg          `json:"receive,omitempty"`
	UpdateConfig     *UpdateConfigMsg     `json:"update_config,omitempty"`
}

type ProvideLiquidityMsg struct {
	Assets            [2]asset.Asset     `json:"assets"`
	SlippageTolerance *sdkmath.LegacyDec `json:"slippage_tolerance,omitempty"`
}

type SwapMsg struct {
	OfferAsset  asset.Asset        `json:"offer_asset"`
	BeliefPrice *sdkmath.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *sdkmath.LegacyDec `json:"max_spread,omitempty"`
	To          *host.Address      `json:"to,omitempty"`
}

// ReceiveMsg is the token send hook: the sending token contract is
// info.Sender, the original holder is Sender.
type ReceiveMsg struct {
	Sender host.Address    `json:"sender"`
	Amount sdkmath.Int     `json:"amount"`
	Msg    json.RawMessage `json:"msg"`
}

// HookMsg is the instruction embedded in a token send. Exactly one field
// is set.
type HookMsg struct {
	Swap              *SwapHookMsg `json:"swap,omitempty"`
	WithdrawLiquidity *struct{}    `json:"withdraw_liquidity,omitempty"`
}

type SwapHookMsg struct {
	BeliefPrice *sdkmath.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *sdkmath.LegacyDec `json:"max_spread,omitempty"`
	To          *host.Address      `json:"to,omitempty"`
}

type UpdateConfigMsg struct {
	Owner               *host.Address      `json:"owner,omitempty"`
	CommissionCollector *host.Address      `json:"commission_collector,omitempty"`
	LPCommission        *sdkmath.LegacyDec `json:"lp_commission,omitempty"`
	OwnerCommission     *sdkmath.LegacyDec `json:"owner_commission,omitempty"`
}

type QueryMsg struct {
	Pair              *struct{}               `json:"pair,omitempty"`
	Pool              *struct{}               `json:"pool,omitempty"`
	Simulation        *SimulationQuery        `json:"simulation,omitempty"`
	ReverseSimulation *ReverseSimulationQuery `json:"reverse_simulation,omitempty"`
}

type SimulationQuery struct {
	OfferAsset asset.Asset `json:"offer_asset"`
}

type ReverseSimulationQuery struct {
	AskAsset asset.Asset `json:"ask_asset"`
}

// PairResponse mirrors the stored pair config; it doubles as the factory
// registry entry shape.
type PairResponse struct {
	AssetInfos          [2]asset.Info     `json:"asset_infos"`
	ContractAddr        host.Address      `json:"contract_addr"`
	LiquidityToken      host.Address      `json:"liquidity_token"`
	Owner               host.Address      `json:"owner"`
	CommissionCollector host.Address      `json:"commission_collector"`
	LPCommission        sdkmath.LegacyDec `json:"lp_commission"`
	OwnerCommission     sdkmath.LegacyDec `json:"owner_commission"`
}

type PoolResponse struct {
	Assets     [2]asset.Asset `json:"assets"`
	TotalShare sdkmath.Int    `json:"total_share"`
}

type SimulationResponse struct {
	ReturnAmount     sdkmath.Int `json:"return_amount"`
	SpreadAmount     sdkmath.Int `json:"spread_amount"`
	CommissionAmount sdkmath.Int `json:"commission_amount"`
}

type ReverseSimulationResponse struct {
	OfferAmount      sdkmath.Int `json:"offer_amount"`
	SpreadAmount     sdkmath.Int `json:"spread_amount"`
	CommissionAmount sdkmath.Int `json:"commission_amount"`
}

// ProvideResult is returned as response data from ProvideLiquidity.
type ProvideResult struct {
	Share sdkmath.Int `json:"share"`
}

// WithdrawResult is returned as response data from a withdrawal.
type WithdrawResult struct {
	RefundAssets [2]asset.Asset `json:"refund_assets"`
}
