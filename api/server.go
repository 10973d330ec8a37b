// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the exchange read surface over JSON-RPC: factory
// discovery, pool state, and swap simulations, plus native and token
// balance reads. Mutating flows go through the host app directly; the
// RPC surface is read-only.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"go.uber.org/zap"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/factory"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/token"
)

const Endpoint = "/rpc"

// Service serves read-only exchange queries against a host app.
type Service struct {
	log     *zap.Logger
	app     *host.App
	factory host.Address
}

func NewService(log *zap.Logger, app *host.App, factoryAddr host.Address) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:     log,
		app:     app,
		factory: factoryAddr,
	}
}

// NewHandler mounts the service on a fresh router under Endpoint.
func NewHandler(svc *Service) http.Handler {
	server := rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")
	server.RegisterCodec(json2.NewCodec(), "application/json;charset=UTF-8")
	if err := server.RegisterService(svc, "tswap"); err != nil {
		panic(err)
	}
	router := mux.NewRouter()
	router.Handle(Endpoint, server)
	return router
}

func (s *Service) query(r *http.Request, contract host.Address, msg any, out any) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	resp, err := s.app.Query(r.Context(), contract, raw)
	if err != nil {
		s.log.Debug("query failed",
			zap.String("contract", contract.String()),
			zap.Error(err),
		)
		return err
	}
	return json.Unmarshal(resp, out)
}

type ConfigReply struct {
	Factory host.Address           `json:"factory"`
	Config  factory.ConfigResponse `json:"config"`
}

func (s *Service) Config(r *http.Request, _ *struct{}, reply *ConfigReply) error {
	reply.Factory = s.factory
	return s.query(r, s.factory, factory.QueryMsg{Config: &struct{}{}}, &reply.Config)
}

type PairArgs struct {
	AssetInfos [2]asset.Info `json:"asset_infos"`
}

func (s *Service) Pair(r *http.Request, args *PairArgs, reply *factory.PairEntry) error {
	return s.query(r, s.factory, factory.QueryMsg{
		Pair: &factory.PairQuery{AssetInfos: args.AssetInfos},
	}, reply)
}

type PairsArgs struct {
	StartAfter *[2]asset.Info `json:"start_after,omitempty"`
	Limit      *uint32        `json:"limit,omitempty"`
}

func (s *Service) Pairs(r *http.Request, args *PairsArgs, reply *factory.PairsResponse) error {
	return s.query(r, s.factory, factory.QueryMsg{
		Pairs: &factory.PairsQuery{StartAfter: args.StartAfter, Limit: args.Limit},
	}, reply)
}

type PoolArgs struct {
	Pair host.Address `json:"pair"`
}

func (s *Service) Pool(r *http.Request, args *PoolArgs, reply *pair.PoolResponse) error {
	return s.query(r, args.Pair, pair.QueryMsg{Pool: &struct{}{}}, reply)
}

type SimulationArgs struct {
	Pair       host.Address `json:"pair"`
	OfferAsset asset.Asset  `json:"offer_asset"`
}

func (s *Service) Simulation(r *http.Request, args *SimulationArgs, reply *pair.SimulationResponse) error {
	return s.query(r, args.Pair, pair.QueryMsg{
		Simulation: &pair.SimulationQuery{OfferAsset: args.OfferAsset},
	}, reply)
}

type ReverseSimulationArgs struct {
	Pair     host.Address `json:"pair"`
	AskAsset asset.Asset  `json:"ask_asset"`
}

func (s *Service) ReverseSimulation(r *http.Request, args *ReverseSimulationArgs, reply *pair.ReverseSimulationResponse) error {
	return s.query(r, args.Pair, pair.QueryMsg{
		ReverseSimulation: &pair.ReverseSimulationQuery{AskAsset: args.AskAsset},
	}, reply)
}

type BalanceArgs struct {
	Address host.Address `json:"address"`
	Denom   string       `json:"denom"`
}

type BalanceReply struct {
	Amount sdkmath.Int `json:"amount"`
}

func (s *Service) Balance(r *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	amount, err := s.app.Balance(r.Context(), args.Address, args.Denom)
	if err != nil {
		return err
	}
	reply.Amount = amount
	return nil
}

type TokenBalanceArgs struct {
	Token   host.Address `json:"token"`
	Address host.Address `json:"address"`
}

func (s *Service) TokenBalance(r *http.Request, args *TokenBalanceArgs, reply *token.BalanceResponse) error {
	return s.query(r, args.Token, token.QueryMsg{
		Balance: &token.BalanceQuery{Address: args.Address},
	}, reply)
}
