// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"

	sdkmath "cosmossdk.io/math"
	"github.com/ava-labs/avalanchego/database"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
)

// config is the persistent factory state.
type config struct {
	Owner             host.Address      `json:"owner"`
	PairCodeID        uint64            `json:"pair_code_id"`
	TokenCodeID       uint64            `json:"token_code_id"`
	DefaultCommission sdkmath.LegacyDec `json:"default_commission"`
	MigrateAdmin      host.Address      `json:"migrate_admin,omitempty"`
}

// pendingPair marks an in-flight pair creation between CreatePair and
// its linking reply.
type pendingPair struct {
	AssetInfos [2]asset.Info `json:"asset_infos"`
}

var (
	configKey     = []byte("config")
	pendingSeqKey = []byte("pending_seq")
	pairPrefix    = []byte("pair/")
	pendingPrefix = []byte("pending/")
)

func pairKey(infos [2]asset.Info) []byte {
	return append(append([]byte{}, pairPrefix...), asset.PairKey(infos)...)
}

func pendingKey(id uint64) []byte {
	k := append([]byte{}, pendingPrefix...)
	return binary.BigEndian.AppendUint64(k, id)
}

func getConfig(ctx context.Context, store host.Immutable) (config, error) {
	raw, err := store.GetValue(ctx, configKey)
	if err != nil {
		return config{}, err
	}
	var cfg config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func setConfig(ctx context.Context, store host.Mutable, cfg config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return store.Insert(ctx, configKey, raw)
}

// nextPendingID allocates a fresh correlation id for a sub-instantiation.
func nextPendingID(ctx context.Context, store host.Mutable) (uint64, error) {
	var id uint64
	raw, err := store.GetValue(ctx, pendingSeqKey)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return 0, err
	}
	if err == nil {
		id = binary.BigEndian.Uint64(raw)
	}
	if err := store.Insert(ctx, pendingSeqKey, binary.BigEndian.AppendUint64(nil, id+1)); err != nil {
		return 0, err
	}
	return id, nil
}

func getPending(ctx context.Context, store host.Immutable, id uint64) (pendingPair, error) {
	raw, err := store.GetValue(ctx, pendingKey(id))
	if err != nil {
		return pendingPair{}, err
	}
	var p pendingPair
	if err := json.Unmarshal(raw, &p); err != nil {
		return pendingPair{}, err
	}
	return p, nil
}

func setPending(ctx context.Context, store host.Mutable, id uint64, p pendingPair) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return store.Insert(ctx, pendingKey(id), raw)
}

func getPairEntry(ctx context.Context, store host.Immutable, infos [2]asset.Info) (PairEntry, error) {
	raw, err := store.GetValue(ctx, pairKey(infos))
	if errors.Is(err, database.ErrNotFound) {
		return PairEntry{}, ErrPairNotFound
	}
	if err != nil {
		return PairEntry{}, err
	}
	var entry PairEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return PairEntry{}, err
	}
	return entry, nil
}

func setPairEntry(ctx context.Context, store host.Mutable, entry PairEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return store.Insert(ctx, pairKey(entry.AssetInfos), raw)
}
