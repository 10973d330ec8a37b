// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/factory"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/token"
)

// Client is a typed JSON-RPC client for the exchange read surface.
type Client struct {
	uri    string
	client *http.Client
}

func NewClient(uri string) *Client {
	return &Client{
		uri:    uri + Endpoint,
		client: http.DefaultClient,
	}
}

func (c *Client) call(ctx context.Context, method string, args any, reply any) error {
	body, err := json2.EncodeClientRequest("tswap."+method, args)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uri, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return json2.DecodeClientResponse(resp.Body, reply)
}

func (c *Client) Config(ctx context.Context) (ConfigReply, error) {
	var reply ConfigReply
	err := c.call(ctx, "Config", &struct{}{}, &reply)
	return reply, err
}

func (c *Client) Pair(ctx context.Context, infos [2]asset.Info) (factory.PairEntry, error) {
	var reply factory.PairEntry
	err := c.call(ctx, "Pair", &PairArgs{AssetInfos: infos}, &reply)
	return reply, err
}

func (c *Client) Pairs(ctx context.Context, startAfter *[2]asset.Info, limit *uint32) (factory.PairsResponse, error) {
	var reply factory.PairsResponse
	err := c.call(ctx, "Pairs", &PairsArgs{StartAfter: startAfter, Limit: limit}, &reply)
	return reply, err
}

func (c *Client) Pool(ctx context.Context, pairAddr host.Address) (pair.PoolResponse, error) {
	var reply pair.PoolResponse
	err := c.call(ctx, "Pool", &PoolArgs{Pair: pairAddr}, &reply)
	return reply, err
}

func (c *Client) Simulation(ctx context.Context, pairAddr host.Address, offer asset.Asset) (pair.SimulationResponse, error) {
	var reply pair.SimulationResponse
	err := c.call(ctx, "Simulation", &SimulationArgs{Pair: pairAddr, OfferAsset: offer}, &reply)
	return reply, err
}

func (c *Client) ReverseSimulation(ctx context.Context, pairAddr host.Address, ask asset.Asset) (pair.ReverseSimulationResponse, error) {
	var reply pair.ReverseSimulationResponse
	err := c.call(ctx, "ReverseSimulation", &ReverseSimulationArgs{Pair: pairAddr, AskAsset: ask}, &reply)
	return reply, err
}

func (c *Client) Balance(ctx context.Context, addr host.Address, denom string) (BalanceReply, error) {
	var reply BalanceReply
	err := c.call(ctx, "Balance", &BalanceArgs{Address: addr, Denom: denom}, &reply)
	return reply, err
}

func (c *Client) TokenBalance(ctx context.Context, tokenAddr, addr host.Address) (token.BalanceResponse, error) {
	var reply token.BalanceResponse
	err := c.call(ctx, "TokenBalance", &TokenBalanceArgs{Token: tokenAddr, Address: addr}, &reply)
	return reply, err
}
