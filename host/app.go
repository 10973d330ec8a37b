// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"go.uber.org/zap"

	sdkmath "cosmossdk.io/math"
)

// App hosts contract instances over a single root store. Calls are
// serialized by construction (no internal concurrency) and transactional:
// every external call runs against a cache layer that is flushed only on
// success. Submessages execute depth-first inside the same transaction,
// each in its own nested layer so a failed submessage can be reported to
// the emitter's Reply entry point without leaking partial writes.
type App struct {
	log   *zap.Logger
	state Store
	codes map[uint64]Contract
}

func NewApp(log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		log:   log,
		state: NewInMemoryStore(),
		codes: make(map[uint64]Contract),
	}
}

// RegisterCode makes a contract implementation instantiable under codeID.
func (a *App) RegisterCode(codeID uint64, contract Contract) {
	a.codes[codeID] = contract
}

// FundAccount credits native coins out of thin air. Genesis/test helper.
func (a *App) FundAccount(ctx context.Context, addr Address, amount Coins) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	for _, c := range amount {
		balance, err := getBankBalance(ctx, a.state, addr, c.Denom)
		if err != nil {
			return err
		}
		if err := setBankBalance(ctx, a.state, addr, c.Denom, balance.Add(c.Amount)); err != nil {
			return err
		}
	}
	return nil
}

// Balance reads a native balance from committed state.
func (a *App) Balance(ctx context.Context, addr Address, denom string) (sdkmath.Int, error) {
	return getBankBalance(ctx, a.state, addr, denom)
}

// Instantiate creates a new contract instance as one atomic transaction.
func (a *App) Instantiate(ctx context.Context, sender Address, codeID uint64, msg []byte, funds Coins, label string) (Address, error) {
	cache := NewCacheStore(a.state)
	addr, _, err := a.instantiate(ctx, cache, sender, codeID, msg, funds, label)
	if err != nil {
		a.log.Debug("instantiate failed",
			zap.Uint64("codeID", codeID),
			zap.Error(err),
		)
		return EmptyAddress, err
	}
	if err := cache.Flush(ctx); err != nil {
		return EmptyAddress, err
	}
	a.log.Debug("instantiate",
		zap.Uint64("codeID", codeID),
		zap.String("label", label),
		zap.String("contract", addr.String()),
	)
	return addr, nil
}

// Execute runs a contract execute message as one atomic transaction.
func (a *App) Execute(ctx context.Context, sender Address, contract Address, msg []byte, funds Coins) ([]byte, error) {
	cache := NewCacheStore(a.state)
	data, err := a.execute(ctx, cache, sender, contract, msg, funds)
	if err != nil {
		a.log.Debug("execute failed",
			zap.String("contract", contract.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := cache.Flush(ctx); err != nil {
		return nil, err
	}
	a.log.Debug("execute", zap.String("contract", contract.String()))
	return data, nil
}

// Query runs a read-only smart query against committed state.
func (a *App) Query(ctx context.Context, contract Address, msg []byte) ([]byte, error) {
	return a.querier(a.state).QuerySmart(ctx, contract, msg)
}

// catchPanic converts a panic escaping a contract entry point into a
// call failure, so one bad message cannot take down the host.
func catchPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrContractPanic, r)
	}
}

func (a *App) instantiate(ctx context.Context, store Store, sender Address, codeID uint64, msg []byte, funds Coins, _ string) (_ Address, _ []byte, err error) {
	defer catchPanic(&err)
	code, ok := a.codes[codeID]
	if !ok {
		return EmptyAddress, nil, ErrCodeNotFound
	}
	instance, err := nextInstance(ctx, store)
	if err != nil {
		return EmptyAddress, nil, err
	}
	addr := CreateContractAddress(codeID, instance)
	if err := setContractInfo(ctx, store, addr, codeID); err != nil {
		return EmptyAddress, nil, err
	}
	if len(funds) > 0 {
		if err := bankSend(ctx, store, sender, addr, funds); err != nil {
			return EmptyAddress, nil, err
		}
	}
	resp, err := code.Instantiate(ctx, a.depsFor(store, addr), Env{Contract: addr}, MsgInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return EmptyAddress, nil, err
	}
	data, err := a.dispatchMessages(ctx, store, addr, code, resp)
	if err != nil {
		return EmptyAddress, nil, err
	}
	return addr, data, nil
}

func (a *App) execute(ctx context.Context, store Store, sender Address, contract Address, msg []byte, funds Coins) (_ []byte, err error) {
	defer catchPanic(&err)
	code, err := a.contractCode(ctx, store, contract)
	if err != nil {
		return nil, err
	}
	if len(funds) > 0 {
		if err := bankSend(ctx, store, sender, contract, funds); err != nil {
			return nil, err
		}
	}
	resp, err := code.Execute(ctx, a.depsFor(store, contract), Env{Contract: contract}, MsgInfo{Sender: sender, Funds: funds}, msg)
	if err != nil {
		return nil, err
	}
	return a.dispatchMessages(ctx, store, contract, code, resp)
}

// dispatchMessages runs a response's submessages depth-first. Each
// submessage gets its own cache layer; failures either propagate or are
// delivered to the emitter's Reply entry point, whose own response is
// dispatched recursively.
func (a *App) dispatchMessages(ctx context.Context, store Store, emitter Address, code Contract, resp *Response) ([]byte, error) {
	if resp == nil {
		return nil, nil
	}
	data := resp.Data
	for _, sub := range resp.Messages {
		nested := NewCacheStore(store)
		result, err := a.runMsg(ctx, nested, emitter, sub.Msg)
		if err == nil {
			if err := nested.Flush(ctx); err != nil {
				return nil, err
			}
			if sub.ReplyOn == ReplySuccess || sub.ReplyOn == ReplyAlways {
				if err := a.deliverReply(ctx, store, emitter, code, Reply{ID: sub.ID, Ok: result}); err != nil {
					return nil, err
				}
			}
			continue
		}
		// Submessage failed: its layer is discarded. Without a reply
		// request the whole call unwinds.
		if sub.ReplyOn != ReplyError && sub.ReplyOn != ReplyAlways {
			return nil, err
		}
		if err := a.deliverReply(ctx, store, emitter, code, Reply{ID: sub.ID, Err: err.Error()}); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (a *App) deliverReply(ctx context.Context, store Store, emitter Address, code Contract, reply Reply) error {
	a.log.Debug("reply",
		zap.String("contract", emitter.String()),
		zap.Uint64("id", reply.ID),
		zap.Bool("ok", reply.Ok != nil),
	)
	resp, err := code.Reply(ctx, a.depsFor(store, emitter), Env{Contract: emitter}, reply)
	if err != nil {
		return err
	}
	_, err = a.dispatchMessages(ctx, store, emitter, code, resp)
	return err
}

func (a *App) runMsg(ctx context.Context, store Store, sender Address, msg Msg) (*SubMsgResponse, error) {
	switch {
	case msg.BankSend != nil:
		if err := bankSend(ctx, store, sender, msg.BankSend.ToAddress, msg.BankSend.Amount); err != nil {
			return nil, err
		}
		return &SubMsgResponse{}, nil
	case msg.Execute != nil:
		data, err := a.execute(ctx, store, sender, msg.Execute.Contract, msg.Execute.Msg, msg.Execute.Funds)
		if err != nil {
			return nil, err
		}
		return &SubMsgResponse{Data: data}, nil
	case msg.Instantiate != nil:
		addr, data, err := a.instantiate(ctx, store, sender, msg.Instantiate.CodeID, msg.Instantiate.Msg, msg.Instantiate.Funds, msg.Instantiate.Label)
		if err != nil {
			return nil, err
		}
		return &SubMsgResponse{ContractAddress: addr, Data: data}, nil
	default:
		return nil, ErrUnknownMsg
	}
}

func (a *App) depsFor(store Store, contract Address) Deps {
	return Deps{
		Store:   newPrefixStore(store, contractStateKey(contract)),
		Querier: a.querier(store),
	}
}

func (a *App) querier(store Store) Querier {
	return &appQuerier{app: a, store: store}
}

func (a *App) contractCode(ctx context.Context, store Store, contract Address) (Contract, error) {
	codeID, err := getContractInfo(ctx, store, contract)
	if err != nil {
		return nil, err
	}
	code, ok := a.codes[codeID]
	if !ok {
		return nil, ErrCodeNotFound
	}
	return code, nil
}

type appQuerier struct {
	app   *App
	store Store
}

func (q *appQuerier) QueryBalance(ctx context.Context, addr Address, denom string) (sdkmath.Int, error) {
	return getBankBalance(ctx, q.store, addr, denom)
}

func (q *appQuerier) QuerySmart(ctx context.Context, contract Address, req []byte) (_ []byte, err error) {
	defer catchPanic(&err)
	code, err := q.app.contractCode(ctx, q.store, contract)
	if err != nil {
		return nil, err
	}
	deps := QueryDeps{
		Store:   newPrefixStore(q.store, contractStateKey(contract)),
		Querier: q,
	}
	return code.Query(ctx, deps, Env{Contract: contract}, req)
}

func contractInfoKey(addr Address) []byte {
	k := make([]byte, 0, 1+len(addr))
	k = append(k, contractInfoPrefix)
	return append(k, addr...)
}

func contractStateKey(addr Address) []byte {
	k := make([]byte, 0, 1+len(addr)+1)
	k = append(k, contractStatePrefix)
	k = append(k, addr...)
	return append(k, keySeparator)
}

func setContractInfo(ctx context.Context, mu Mutable, addr Address, codeID uint64) error {
	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, codeID)
	return mu.Insert(ctx, contractInfoKey(addr), v)
}

func getContractInfo(ctx context.Context, im Immutable, addr Address) (uint64, error) {
	v, err := im.GetValue(ctx, contractInfoKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrContractNotFound, addr)
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(v), nil
}

func nextInstance(ctx context.Context, mu Mutable) (uint64, error) {
	k := []byte{instanceCounterPrefix}
	var instance uint64
	v, err := mu.GetValue(ctx, k)
	if err == nil {
		instance = binary.BigEndian.Uint64(v)
	} else if !errors.Is(err, database.ErrNotFound) {
		return 0, err
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, instance+1)
	if err := mu.Insert(ctx, k, next); err != nil {
		return 0, err
	}
	return instance, nil
}
