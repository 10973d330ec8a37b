// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
)

type InstantiateMsg struct {
	PairCodeID        uint64             `json:"pair_code_id"`
	TokenCodeID       uint64             `json:"token_code_id"`
	DefaultCommission *sdkmath.LegacyDec `json:"default_commission,omitempty"`
}

// ExecuteMsg is the closed variant set; exactly one field is set.
type ExecuteMsg struct {
	CreatePair   *CreatePairMsg   `json:"create_pair,omitempty"`
	UpdateConfig *UpdateConfigMsg `json:"update_config,omitempty"`
}

type CreatePairMsg struct {
	AssetInfos [2]asset.Info `json:"asset_infos"`
}

type UpdateConfigMsg struct {
	Owner             *host.Address      `json:"owner,omitempty"`
	PairCodeID        *uint64            `json:"pair_code_id,omitempty"`
	TokenCodeID       *uint64            `json:"token_code_id,omitempty"`
	DefaultCommission *sdkmath.LegacyDec `json:"default_commission,omitempty"`
	MigrateAdmin      *host.Address      `json:"migrate_admin,omitempty"`
}

type QueryMsg struct {
	Config *struct{}   `json:"config,omitempty"`
	Pair   *PairQuery  `json:"pair,omitempty"`
	Pairs  *PairsQuery `json:"pairs,omitempty"`
}

type PairQuery struct {
	AssetInfos [2]asset.Info `json:"asset_infos"`
}

type PairsQuery struct {
	StartAfter *[2]asset.Info `json:"start_after,omitempty"`
	Limit      *uint32        `json:"limit,omitempty"`
}

type ConfigResponse struct {
	Owner             host.Address      `json:"owner"`
	PairCodeID        uint64            `json:"pair_code_id"`
	TokenCodeID       uint64            `json:"token_code_id"`
	DefaultCommission sdkmath.LegacyDec `json:"default_commission"`
	MigrateAdmin      host.Address      `json:"migrate_admin,omitempty"`
}

// PairEntry is one registry record: where the pair lives and which token
// carries its shares.
type PairEntry struct {
	AssetInfos     [2]asset.Info `json:"asset_infos"`
	ContractAddr   host.Address  `json:"contract_addr"`
	LiquidityToken host.Address  `json:"liquidity_token"`
}

type PairsResponse struct {
	Pairs []PairEntry `json:"pairs"`
}
