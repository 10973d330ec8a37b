// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package factory implements the pair registry: it spawns pair engines
// on demand, indexes them by the unordered asset pair, and serves
// paginated listings for discovery.
package factory

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/pricing"
)

const (
	pairLabel = "tswap pair"

	defaultPageLimit = 10
	maxPageLimit     = 30
)

type Contract struct{}

var _ host.Contract = (*Contract)(nil)

func (*Contract) Instantiate(ctx context.Context, deps host.Deps, _ host.Env, info host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg InstantiateMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	commission := pricing.DefaultCommission()
	if msg.DefaultCommission != nil {
		if err := pricing.ValidateCommissions(*msg.DefaultCommission, pricing.ZeroCommission()); err != nil {
			return nil, err
		}
		commission = *msg.DefaultCommission
	}
	if err := setConfig(ctx, deps.Store, config{
		Owner:             info.Sender,
		PairCodeID:        msg.PairCodeID,
		TokenCodeID:       msg.TokenCodeID,
		DefaultCommission: commission,
	}); err != nil {
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
	case msg.CreatePair != nil:
		return c.createPair(ctx, deps, env, msg.CreatePair)
	case msg.UpdateConfig != nil:
		return c.updateConfig(ctx, deps, info.Sender, msg.UpdateConfig)
	default:
		return nil, ErrUnknownMsg
	}
}

func (*Contract) createPair(ctx context.Context, deps host.Deps, env host.Env, msg *CreatePairMsg) (*host.Response, error) {
	for _, ai := range msg.AssetInfos {
		if err := ai.Validate(); err != nil {
			return nil, err
		}
	}
	if msg.AssetInfos[0].Equal(msg.AssetInfos[1]) {
		return nil, ErrDuplicateAsset
	}
	if _, err := getPairEntry(ctx, deps.Store, msg.AssetInfos); err == nil {
		return nil, ErrPairAlreadyExists
	} else if !errors.Is(err, ErrPairNotFound) {
		return nil, err
	}

	cfg, err := getConfig(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	id, err := nextPendingID(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if err := setPending(ctx, deps.Store, id, pendingPair{AssetInfos: msg.AssetInfos}); err != nil {
		return nil, err
	}

	// The factory owns the pairs it creates and collects their owner
	// commission; the default commission is all LP.
	pairMsg, err := json.Marshal(pair.InstantiateMsg{
		AssetInfos:          msg.AssetInfos,
		TokenCodeID:         cfg.TokenCodeID,
		Owner:               env.Contract,
		CommissionCollector: cfg.Owner,
		LPCommission:        cfg.DefaultCommission,
		OwnerCommission:     pricing.ZeroCommission(),
	})
	if err != nil {
		return nil, err
	}
	resp := &host.Response{}
	return resp.AddSubMsg(host.ReplyOnSuccess(id, host.Msg{
		Instantiate: &host.InstantiateMsg{
			CodeID: cfg.PairCodeID,
			Msg:    pairMsg,
			Label:  pairLabel,
		},
	})), nil
}

// Reply finalizes a pair creation: the pending record keyed by the
// correlation id becomes a registry entry pointing at the new contract
// and its liquidity token. A failed sub-instantiation unwinds the whole
// transaction, pending record included.
func (*Contract) Reply(ctx context.Context, deps host.Deps, _ host.Env, reply host.Reply) (*host.Response, error) {
	if reply.Ok == nil {
		return nil, host.ErrUnknownReply
	}
	pending, err := getPending(ctx, deps.Store, reply.ID)
	if err != nil {
		return nil, err
	}

	// The pair's own reply chain has already linked its liquidity token.
	req, err := json.Marshal(pair.QueryMsg{Pair: &struct{}{}})
	if err != nil {
		return nil, err
	}
	raw, err := deps.Querier.QuerySmart(ctx, reply.Ok.ContractAddress, req)
	if err != nil {
		return nil, err
	}
	var created pair.PairResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}

	if err := setPairEntry(ctx, deps.Store, PairEntry{
		AssetInfos:     pending.AssetInfos,
		ContractAddr:   reply.Ok.ContractAddress,
		LiquidityToken: created.LiquidityToken,
	}); err != nil {
		return nil, err
	}
	if err := deps.Store.Remove(ctx, pendingKey(reply.ID)); err != nil {
		return nil, err
	}
	return &host.Response{}, nil
}

func (*Contract) updateConfig(ctx context.Context, deps host.Deps, sender host.Address, msg *UpdateConfigMsg) (*host.Response, error) {
	cfg, err := getConfig(ctx, deps.Store)
	if err != nil {
		return nil, err
	}
	if sender != cfg.Owner {
		return nil, ErrUnauthorized
	}
	if msg.Owner != nil {
		cfg.Owner = *msg.Owner
	}
	if msg.PairCodeID != nil {
		cfg.PairCodeID = *msg.PairCodeID
	}
	if msg.TokenCodeID != nil {
		cfg.TokenCodeID = *msg.TokenCodeID
	}
	if msg.DefaultCommission != nil {
		if err := pricing.ValidateCommissions(*msg.DefaultCommission, pricing.ZeroCommission()); err != nil {
			return nil, err
		}
		cfg.DefaultCommission = *msg.DefaultCommission
	}
	if msg.MigrateAdmin != nil {
		cfg.MigrateAdmin = *msg.MigrateAdmin
	}
	if err := setConfig(ctx, deps.Store, cfg); err != nil {
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
	case msg.Config != nil:
		cfg, err := getConfig(ctx, deps.Store)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ConfigResponse{
			Owner:             cfg.Owner,
			PairCodeID:        cfg.PairCodeID,
			TokenCodeID:       cfg.TokenCodeID,
			DefaultCommission: cfg.DefaultCommission,
			MigrateAdmin:      cfg.MigrateAdmin,
		})
	case msg.Pair != nil:
		entry, err := getPairEntry(ctx, deps.Store, msg.Pair.AssetInfos)
		if err != nil {
			return nil, err
		}
		return json.Marshal(entry)
	case msg.Pairs != nil:
		return queryPairs(ctx, deps.Store, msg.Pairs)
	default:
		return nil, ErrUnknownMsg
	}
}

// queryPairs pages the registry in canonical key order, exclusive of
// start_after.
func queryPairs(ctx context.Context, store host.ReadStore, q *PairsQuery) ([]byte, error) {
	limit := uint32(defaultPageLimit)
	if q.Limit != nil {
		limit = *q.Limit
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	if limit == 0 {
		return json.Marshal(PairsResponse{Pairs: []PairEntry{}})
	}
	var start []byte
	if q.StartAfter != nil {
		start = pairKey(*q.StartAfter)
	}

	pairs := make([]PairEntry, 0, limit)
	err := store.Iterate(ctx, pairPrefix, start, func(_ []byte, value []byte) (bool, error) {
		var entry PairEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return false, err
		}
		pairs = append(pairs, entry)
		return uint32(len(pairs)) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(PairsResponse{Pairs: pairs})
}
