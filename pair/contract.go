// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pair implements the exchange engine for one asset pair:
// constant-product swaps, liquidity provision and withdrawal against a
// sub-instantiated liquidity share token, and the simulation queries
// that replicate swap pricing read-only.
package pair

import (
	"context"
	"encoding/json"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pricing"
	"github.com/tswaplabs/tswap/token"
)

const (
	liquidityTokenReplyID uint64 = 1

	liquidityTokenLabel   = "tswap liquidity token"
	liquidityTokenName    = "tswap liquidity token"
	liquidityTokenSymbol  = "uLP"
	liquidityTokenDecimal = 6
)

type Contract struct{}

var _ host.Contract = (*Contract)(nil)

func (*Contract) Instantiate(ctx context.Context, deps host.Deps, env host.Env, _ host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg InstantiateMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	for _, ai := range msg.AssetInfos {
		if err := ai.Validate(); err != nil {
			return nil, err
		}
	}
	if msg.AssetInfos[0].Equal(msg.AssetInfos[1]) {
		return nil, ErrDuplicateAsset
	}
	if err := pricing.ValidateCommissions(msg.LPCommission, msg.OwnerCommission); err != nil {
		return nil, err
	}

	if err := setPairInfo(ctx, deps.Store, pairInfo{
		AssetInfos:          msg.AssetInfos,
		ContractAddr:        env.Contract,
		Owner:               msg.Owner,
		CommissionCollector: msg.CommissionCollector,
		LPCommission:        msg.LPCommission,
		OwnerCommission:     msg.OwnerCommission,
	}); err != nil {
		return nil, err
	}

	tokenMsg, err := json.Marshal(token.InstantiateMsg{
		Name:            liquidityTokenName,
		Symbol:          liquidityTokenSymbol,
		Decimals:        liquidityTokenDecimal,
		InitialBalances: []token.InitialCoin{},
		Mint:            &token.MinterInfo{Minter: env.Contract},
	})
	if err != nil {
		return nil, err
	}
	resp := &host.Response{}
	return resp.AddSubMsg(host.ReplyOnSuccess(liquidityTokenReplyID, host.Msg{
		Instantiate: &host.InstantiateMsg{
			CodeID: msg.TokenCodeID,
			Msg:    tokenMsg,
			Label:  liquidityTokenLabel,
		},
	})), nil
}

// Reply links the freshly instantiated liquidity token. The transition
// out of the unlinked state happens exactly once.
func (*Contract) Reply(ctx context.Context, deps host.Deps, _ host.Env, reply host.Reply) (*host.Response, error) {
	if reply.ID != liquidityTokenReplyID || reply.Ok == nil {
		return nil, host.ErrUnknownReply
	}
	info, err := getPairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if !info.LiquidityToken.Empty() {
		return nil, ErrAlreadyLinked
	}
	info.LiquidityToken = reply.Ok.ContractAddress
	if err := setPairInfo(ctx, deps.Store, info); err != nil {
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
	case msg.ProvideLiquidity != nil:
		return c.provideLiquidity(ctx, deps, env, info, msg.ProvideLiquidity)
	case msg.Swap != nil:
		// The linked-state gate comes before any argument checks.
		pinfo, err := activePairInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		// Direct swaps only carry native offers; custodial offers must
		// arrive through the token's send hook so the funds precede the
		// instruction.
		if !msg.Swap.OfferAsset.Info.IsNative() {
			return nil, ErrUnauthorized
		}
		if err := msg.Swap.OfferAsset.AssertSentFunds(info); err != nil {
			return nil, err
		}
		return c.swap(ctx, deps, pinfo, info.Sender, msg.Swap.OfferAsset, msg.Swap.BeliefPrice, msg.Swap.MaxSpread, msg.Swap.To)
	case msg.Receive != nil:
		return c.receive(ctx, deps, info.Sender, msg.Receive)
	case msg.UpdateConfig != nil:
		return c.updateConfig(ctx, deps, info.Sender, msg.UpdateConfig)
	default:
		return nil, ErrUnknownMsg
	}
}

// receive dispatches a token send hook. info.Sender of the outer call is
// the token contract that moved the funds; the embedded sender is the
// original holder.
func (c *Contract) receive(ctx context.Context, deps host.Deps, tokenContract host.Address, recv *ReceiveMsg) (*host.Response, error) {
	var hook HookMsg
	if err := json.Unmarshal(recv.Msg, &hook); err != nil {
		return nil, err
	}
	switch {
	case hook.Swap != nil:
		info, err := activePairInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		offerInfo := asset.TokenInfo(tokenContract)
		if !offerInfo.Equal(info.AssetInfos[0]) && !offerInfo.Equal(info.AssetInfos[1]) {
			return nil, ErrUnauthorized
		}
		offer := asset.Asset{Info: offerInfo, Amount: recv.Amount}
		return c.swap(ctx, deps, info, recv.Sender, offer, hook.Swap.BeliefPrice, hook.Swap.MaxSpread, hook.Swap.To)
	case hook.WithdrawLiquidity != nil:
		return c.withdrawLiquidity(ctx, deps, tokenContract, recv.Sender, recv.Amount)
	default:
		return nil, ErrUnknownMsg
	}
}

func (*Contract) provideLiquidity(ctx context.Context, deps host.Deps, env host.Env, msgInfo host.MsgInfo, msg *ProvideLiquidityMsg) (*host.Response, error) {
	info, err := activePairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	for _, a := range msg.Assets {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if err := a.AssertSentFunds(msgInfo); err != nil {
			return nil, err
		}
	}

	// Align the provided assets to the configured order.
	var deposits [2]sdkmath.Int
	matched := [2]bool{}
	for _, a := range msg.Assets {
		hit := false
		for i, ai := range info.AssetInfos {
			if a.Info.Equal(ai) && !matched[i] {
				deposits[i] = a.Amount
				matched[i] = true
				hit = true
				break
			}
		}
		if !hit {
			return nil, ErrAssetMismatch
		}
	}

	// Reserves before this deposit: attached native funds are already
	// credited, so back them out; custodial pulls run after pricing.
	pools, err := queryPools(ctx, deps.Querier, info)
	if err != nil {
		return nil, err
	}
	for i, ai := range info.AssetInfos {
		if ai.IsNative() {
			pools[i] = pools[i].Sub(deposits[i])
		}
	}

	resp := &host.Response{}
	for i, ai := range info.AssetInfos {
		if ai.IsNative() || deposits[i].IsZero() {
			continue
		}
		pull, err := asset.Asset{Info: ai, Amount: deposits[i]}.TransferFromMsg(msgInfo.Sender, env.Contract)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(pull)
	}

	totalShare, err := queryTotalShare(ctx, deps.Querier, info.LiquidityToken)
	if err != nil {
		return nil, err
	}

	var share sdkmath.Int
	if totalShare.IsZero() {
		share, err = pricing.InitialShares(deposits[0], deposits[1])
	} else {
		if err := pricing.AssertSlippageTolerance(msg.SlippageTolerance, deposits,
			[2]sdkmath.Int{pools[0].Add(deposits[0]), pools[1].Add(deposits[1])}); err != nil {
			return nil, err
		}
		share, err = pricing.ProportionalShares(deposits[0], deposits[1], pools[0], pools[1], totalShare)
	}
	if err != nil {
		return nil, err
	}

	mint, err := json.Marshal(token.ExecuteMsg{Mint: &token.MintMsg{
		Recipient: msgInfo.Sender,
		Amount:    share,
	}})
	if err != nil {
		return nil, err
	}
	resp.AddMessage(host.Msg{Execute: &host.ExecuteContractMsg{
		Contract: info.LiquidityToken,
		Msg:      mint,
	}})
	resp.Data, err = json.Marshal(ProvideResult{Share: share})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (*Contract) swap(ctx context.Context, deps host.Deps, info pairInfo, sender host.Address, offer asset.Asset, beliefPrice, maxSpread *sdkmath.LegacyDec, to *host.Address) (*host.Response, error) {
	if err := asset.ValidateAmount(offer.Amount); err != nil {
		return nil, err
	}

	offerIdx := -1
	for i, ai := range info.AssetInfos {
		if offer.Info.Equal(ai) {
			offerIdx = i
			break
		}
	}
	if offerIdx < 0 {
		return nil, ErrAssetMismatch
	}
	askIdx := 1 - offerIdx
	askInfo := info.AssetInfos[askIdx]

	// The offered amount has already arrived (attached funds or a token
	// transfer preceding the hook); price against the reserves without it.
	pools, err := queryPools(ctx, deps.Querier, info)
	if err != nil {
		return nil, err
	}
	offerPool := pools[offerIdx].Sub(offer.Amount)
	askPool := pools[askIdx]

	result, err := pricing.Swap(offerPool, askPool, offer.Amount, info.LPCommission, info.OwnerCommission)
	if err != nil {
		return nil, err
	}
	if err := pricing.AssertMaxSpread(beliefPrice, maxSpread, offer.Amount,
		result.ReturnBeforeCommission(), result.SpreadAmount); err != nil {
		return nil, err
	}

	receiver := sender
	if to != nil {
		receiver = *to
	}
	resp := &host.Response{}
	if result.ReturnAmount.IsPositive() {
		pay, err := asset.Asset{Info: askInfo, Amount: result.ReturnAmount}.TransferMsg(receiver)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(pay)
	}
	if result.OwnerCommission.IsPositive() {
		collect, err := asset.Asset{Info: askInfo, Amount: result.OwnerCommission}.TransferMsg(info.CommissionCollector)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(collect)
	}
	resp.Data, err = json.Marshal(SimulationResponse{
		ReturnAmount:     result.ReturnAmount,
		SpreadAmount:     result.SpreadAmount,
		CommissionAmount: result.CommissionAmount(),
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// withdrawLiquidity redeems share tokens the pair just received through
// the liquidity token's send hook: it burns them and refunds both
// reserves proportionally.
func (*Contract) withdrawLiquidity(ctx context.Context, deps host.Deps, tokenContract, withdrawer host.Address, amount sdkmath.Int) (*host.Response, error) {
	info, err := activePairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if tokenContract != info.LiquidityToken {
		return nil, ErrUnauthorized
	}
	if err := asset.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, pricing.ErrInvalidZeroAmount
	}

	totalShare, err := queryTotalShare(ctx, deps.Querier, info.LiquidityToken)
	if err != nil {
		return nil, err
	}
	pools, err := queryPools(ctx, deps.Querier, info)
	if err != nil {
		return nil, err
	}

	var refunds [2]asset.Asset
	for i := range pools {
		refunds[i] = asset.Asset{
			Info:   info.AssetInfos[i],
			Amount: pricing.WithdrawAmount(pools[i], amount, totalShare),
		}
	}

	burn, err := json.Marshal(token.ExecuteMsg{Burn: &token.BurnMsg{Amount: amount}})
	if err != nil {
		return nil, err
	}
	resp := &host.Response{}
	resp.AddMessage(host.Msg{Execute: &host.ExecuteContractMsg{
		Contract: info.LiquidityToken,
		Msg:      burn,
	}})
	for _, refund := range refunds {
		if refund.Amount.IsZero() {
			continue
		}
		pay, err := refund.TransferMsg(withdrawer)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(pay)
	}
	resp.Data, err = json.Marshal(WithdrawResult{RefundAssets: refunds})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (*Contract) updateConfig(ctx context.Context, deps host.Deps, sender host.Address, msg *UpdateConfigMsg) (*host.Response, error) {
	info, err := getPairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if sender != info.Owner {
		return nil, ErrUnauthorized
	}
	if msg.Owner != nil {
		info.Owner = *msg.Owner
	}
	if msg.CommissionCollector != nil {
		info.CommissionCollector = *msg.CommissionCollector
	}
	if msg.LPCommission != nil {
		info.LPCommission = *msg.LPCommission
	}
	if msg.OwnerCommission != nil {
		info.OwnerCommission = *msg.OwnerCommission
	}
	if err := pricing.ValidateCommissions(info.LPCommission, info.OwnerCommission); err != nil {
		return nil, err
	}
	if err := setPairInfo(ctx, deps.Store, info); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (*Contract) Query(ctx context.Context, deps host.QueryDeps, _ host.Env, rawMsg []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	switch {
	case msg.Pair != nil:
		info, err := getPairInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		return json.Marshal(pairResponse(info))
	case msg.Pool != nil:
		info, err := activePairInfo(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		pools, err := queryPools(ctx, deps.Querier, info)
		if err != nil {
			return nil, err
		}
		totalShare, err := queryTotalShare(ctx, deps.Querier, info.LiquidityToken)
		if err != nil {
			return nil, err
		}
		return json.Marshal(PoolResponse{
			Assets: [2]asset.Asset{
				{Info: info.AssetInfos[0], Amount: pools[0]},
				{Info: info.AssetInfos[1], Amount: pools[1]},
			},
			TotalShare: totalShare,
		})
	case msg.Simulation != nil:
		return simulate(ctx, deps, msg.Simulation.OfferAsset)
	case msg.ReverseSimulation != nil:
		return reverseSimulate(ctx, deps, msg.ReverseSimulation.AskAsset)
	default:
		return nil, ErrUnknownMsg
	}
}

// simulate replicates swap pricing against the current reserves, before
// any incoming transfer.
func simulate(ctx context.Context, deps host.QueryDeps, offer asset.Asset) ([]byte, error) {
	info, err := activePairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	offerIdx := -1
	for i, ai := range info.AssetInfos {
		if offer.Info.Equal(ai) {
			offerIdx = i
			break
		}
	}
	if offerIdx < 0 {
		return nil, ErrAssetMismatch
	}
	pools, err := queryPools(ctx, deps.Querier, info)
	if err != nil {
		return nil, err
	}
	result, err := pricing.Swap(pools[offerIdx], pools[1-offerIdx], offer.Amount, info.LPCommission, info.OwnerCommission)
	if err != nil {
		return nil, err
	}
	return json.Marshal(SimulationResponse{
		ReturnAmount:     result.ReturnAmount,
		SpreadAmount:     result.SpreadAmount,
		CommissionAmount: result.CommissionAmount(),
	})
}

func reverseSimulate(ctx context.Context, deps host.QueryDeps, ask asset.Asset) ([]byte, error) {
	info, err := activePairInfo(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	askIdx := -1
	for i, ai := range info.AssetInfos {
		if ask.Info.Equal(ai) {
			askIdx = i
			break
		}
	}
	if askIdx < 0 {
		return nil, ErrAssetMismatch
	}
	pools, err := queryPools(ctx, deps.Querier, info)
	if err != nil {
		return nil, err
	}
	result, err := pricing.ReverseSwap(pools[1-askIdx], pools[askIdx], ask.Amount, info.LPCommission, info.OwnerCommission)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ReverseSimulationResponse{
		OfferAmount:      result.OfferAmount,
		SpreadAmount:     result.SpreadAmount,
		CommissionAmount: result.CommissionAmount(),
	})
}

func pairResponse(info pairInfo) PairResponse {
	return PairResponse{
		AssetInfos:          info.AssetInfos,
		ContractAddr:        info.ContractAddr,
		LiquidityToken:      info.LiquidityToken,
		Owner:               info.Owner,
		CommissionCollector: info.CommissionCollector,
		LPCommission:        info.LPCommission,
		OwnerCommission:     info.OwnerCommission,
	}
}
