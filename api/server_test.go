// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api_test

import (
	"context"
	"net/http/httptest"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tswaplabs/tswap/api"
	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/tswaptest"
)

// newTestServer stands up a funded uusd/uatom pool behind the RPC
// handler and returns a typed client for it.
func newTestServer(t *testing.T) (*api.Client, host.Address) {
	t.Helper()
	s := tswaptest.New(t)

	factoryAddr := s.CreateFactory("owner", nil)
	entry := s.CreatePair("owner", factoryAddr, [2]asset.Info{
		asset.NativeInfo("uusd"),
		asset.NativeInfo("uatom"),
	})
	s.Fund("trader", host.NewInt64Coin("uusd", 1_000_000), host.NewInt64Coin("uatom", 1_000_000))
	s.Execute("trader", entry.ContractAddr, pair.ExecuteMsg{ProvideLiquidity: &pair.ProvideLiquidityMsg{
		Assets: [2]asset.Asset{
			{Info: asset.NativeInfo("uusd"), Amount: sdkmath.NewInt(1_000_000)},
			{Info: asset.NativeInfo("uatom"), Amount: sdkmath.NewInt(1_000_000)},
		},
	}}, host.NewInt64Coin("uusd", 1_000_000), host.NewInt64Coin("uatom", 1_000_000))

	server := httptest.NewServer(api.NewHandler(api.NewService(nil, s.App, factoryAddr)))
	t.Cleanup(server.Close)
	return api.NewClient(server.URL), entry.ContractAddr
}

func TestConfigAndPairs(t *testing.T) {
	require := require.New(t)
	client, pairAddr := newTestServer(t)
	ctx := context.Background()

	cfg, err := client.Config(ctx)
	require.NoError(err)
	require.Equal(host.Address("owner"), cfg.Config.Owner)

	pairs, err := client.Pairs(ctx, nil, nil)
	require.NoError(err)
	require.Len(pairs.Pairs, 1)
	require.Equal(pairAddr, pairs.Pairs[0].ContractAddr)

	entry, err := client.Pair(ctx, [2]asset.Info{
		asset.NativeInfo("uatom"),
		asset.NativeInfo("uusd"),
	})
	require.NoError(err)
	require.Equal(pairAddr, entry.ContractAddr)
}

func TestPoolAndSimulations(t *testing.T) {
	require := require.New(t)
	client, pairAddr := newTestServer(t)
	ctx := context.Background()

	pool, err := client.Pool(ctx, pairAddr)
	require.NoError(err)
	require.Equal(sdkmath.NewInt(1_000_000), pool.TotalShare)

	sim, err := client.Simulation(ctx, pairAddr, asset.Asset{
		Info:   asset.NativeInfo("uusd"),
		Amount: sdkmath.NewInt(10_000),
	})
	require.NoError(err)
	require.Equal(sdkmath.NewInt(9_872), sim.ReturnAmount)

	reverse, err := client.ReverseSimulation(ctx, pairAddr, asset.Asset{
		Info:   asset.NativeInfo("uatom"),
		Amount: sdkmath.NewInt(9_872),
	})
	require.NoError(err)
	require.Equal(sdkmath.NewInt(10_000), reverse.OfferAmount)
}

func TestBalances(t *testing.T) {
	require := require.New(t)
	client, pairAddr := newTestServer(t)
	ctx := context.Background()

	balance, err := client.Balance(ctx, pairAddr, "uusd")
	require.NoError(err)
	require.Equal(sdkmath.NewInt(1_000_000), balance.Amount)
}

func TestQueryErrorsSurface(t *testing.T) {
	client, _ := newTestServer(t)

	_, err := client.Pair(context.Background(), [2]asset.Info{
		asset.NativeInfo("nosuch"),
		asset.NativeInfo("uusd"),
	})
	require.Error(t, err)
}
