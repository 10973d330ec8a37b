// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pair

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
)

// pairInfo is the persistent pair config. LiquidityToken stays empty
// until the linking reply arrives; every operation gates on it.
type pairInfo struct {
	AssetInfos          [2]asset.Info     `json:"asset_infos"`
	ContractAddr        host.Address      `json:"contract_addr"`
	LiquidityToken      host.Address      `json:"liquidity_token"`
	Owner               host.Address      `json:"owner"`
	CommissionCollector host.Address      `json:"commission_collector"`
	LPCommission        sdkmath.LegacyDec `json:"lp_commission"`
	OwnerCommission     sdkmath.LegacyDec `json:"owner_commission"`
}

var pairInfoKey = []byte("pair_info")

func getPairInfo(ctx context.Context, store host.Immutable) (pairInfo, error) {
	raw, err := store.GetValue(ctx, pairInfoKey)
	if err != nil {
		return pairInfo{}, err
	}
	var info pairInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return pairInfo{}, err
	}
	return info, nil
}

func setPairInfo(ctx context.Context, store host.Mutable, info pairInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return store.Insert(ctx, pairInfoKey, raw)
}

// activePairInfo loads the config and refuses to serve before the
// liquidity token is linked.
func activePairInfo(ctx context.Context, store host.Immutable) (pairInfo, error) {
	info, err := getPairInfo(ctx, store)
	if err != nil {
		return pairInfo{}, err
	}
	if info.LiquidityToken.Empty() {
		return pairInfo{}, ErrUninitialized
	}
	return info, nil
}

// queryPools reads the live reserves for both configured assets.
func queryPools(ctx context.Context, querier host.Querier, info pairInfo) ([2]sdkmath.Int, error) {
	var pools [2]sdkmath.Int
	for i, ai := range info.AssetInfos {
		balance, err := ai.QueryBalance(ctx, querier, info.ContractAddr)
		if err != nil {
			return pools, err
		}
		pools[i] = balance
	}
	return pools, nil
}

// queryTotalShare reads the liquidity token's current supply.
func queryTotalShare(ctx context.Context, querier host.Querier, liquidityToken host.Address) (sdkmath.Int, error) {
	req, err := json.Marshal(map[string]any{"token_info": map[string]any{}})
	if err != nil {
		return sdkmath.Int{}, err
	}
	raw, err := querier.QuerySmart(ctx, liquidityToken, req)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s", asset.ErrExternalQueryFailed, err)
	}
	var resp struct {
		TotalSupply sdkmath.Int `json:"total_supply"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return sdkmath.Int{}, fmt.Errorf("%w: %s", asset.ErrExternalQueryFailed, err)
	}
	return resp.TotalSupply, nil
}
