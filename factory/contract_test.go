// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factory_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/factory"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/pricing"
	"github.com/tswaplabs/tswap/tswaptest"
)

const creator = host.Address("creator")

func uatomUusd() [2]asset.Info {
	return [2]asset.Info{asset.NativeInfo("uatom"), asset.NativeInfo("uusd")}
}

func TestInstantiateDefaults(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)

	var cfg factory.ConfigResponse
	s.Query(addr, factory.QueryMsg{Config: &struct{}{}}, &cfg)
	require.Equal(creator, cfg.Owner)
	require.Equal(tswaptest.PairCodeID, cfg.PairCodeID)
	require.Equal(tswaptest.TokenCodeID, cfg.TokenCodeID)
	require.Equal(pricing.DefaultCommission(), cfg.DefaultCommission)
}

func TestCreatePairRegistersBothContracts(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	entry := s.CreatePair(creator, addr, uatomUusd())

	// The pair engine is live and owned by the factory, with the factory
	// owner as commission collector.
	var resp pair.PairResponse
	s.Query(entry.ContractAddr, pair.QueryMsg{Pair: &struct{}{}}, &resp)
	require.Equal(addr, resp.Owner)
	require.Equal(creator, resp.CommissionCollector)
	require.Equal(pricing.DefaultCommission(), resp.LPCommission)
	require.True(resp.OwnerCommission.IsZero())
	require.Equal(entry.LiquidityToken, resp.LiquidityToken)
}

func TestCreatePairRejectsDuplicates(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	s.CreatePair(creator, addr, uatomUusd())

	_, err := s.TryExecute(creator, addr, factory.ExecuteMsg{CreatePair: &factory.CreatePairMsg{
		AssetInfos: uatomUusd(),
	}})
	require.ErrorIs(err, factory.ErrPairAlreadyExists)

	// The registry key is order independent.
	_, err = s.TryExecute(creator, addr, factory.ExecuteMsg{CreatePair: &factory.CreatePairMsg{
		AssetInfos: [2]asset.Info{asset.NativeInfo("uusd"), asset.NativeInfo("uatom")},
	}})
	require.ErrorIs(err, factory.ErrPairAlreadyExists)
}

func TestCreatePairRejectsSameAsset(t *testing.T) {
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	_, err := s.TryExecute(creator, addr, factory.ExecuteMsg{CreatePair: &factory.CreatePairMsg{
		AssetInfos: [2]asset.Info{asset.NativeInfo("uusd"), asset.NativeInfo("uusd")},
	}})
	require.ErrorIs(t, err, factory.ErrDuplicateAsset)
}

func TestPairQueryNotFound(t *testing.T) {
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	_, err := s.TryQuery(addr, factory.QueryMsg{Pair: &factory.PairQuery{
		AssetInfos: uatomUusd(),
	}})
	require.ErrorIs(t, err, factory.ErrPairNotFound)
}

func TestPairsPagination(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	denoms := []string{"uatom", "ubtc", "ueth", "uosmo", "usol"}
	for _, denom := range denoms {
		s.CreatePair(creator, addr, [2]asset.Info{
			asset.NativeInfo(denom),
			asset.NativeInfo("uusd"),
		})
	}

	limit := uint32(2)
	var page factory.PairsResponse
	s.Query(addr, factory.QueryMsg{Pairs: &factory.PairsQuery{Limit: &limit}}, &page)
	require.Len(page.Pairs, 2)

	// Page through the rest with the last entry as cursor.
	var all []factory.PairEntry
	all = append(all, page.Pairs...)
	for len(page.Pairs) == int(limit) {
		cursor := page.Pairs[len(page.Pairs)-1].AssetInfos
		page = factory.PairsResponse{}
		s.Query(addr, factory.QueryMsg{Pairs: &factory.PairsQuery{
			StartAfter: &cursor,
			Limit:      &limit,
		}}, &page)
		all = append(all, page.Pairs...)
	}
	require.Len(all, len(denoms))

	// Entries arrive in canonical key order with no repeats.
	seen := make(map[string]struct{}, len(all))
	for i, entry := range all {
		key := string(asset.PairKey(entry.AssetInfos))
		_, dup := seen[key]
		require.False(dup, "entry %d repeated", i)
		seen[key] = struct{}{}
		if i > 0 {
			prev := asset.PairKey(all[i-1].AssetInfos)
			require.Less(string(prev), key)
		}
	}
}

func TestPairsDefaultAndMaxLimit(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)
	var page factory.PairsResponse
	s.Query(addr, factory.QueryMsg{Pairs: &factory.PairsQuery{}}, &page)
	require.Empty(page.Pairs)

	huge := uint32(10_000)
	s.Query(addr, factory.QueryMsg{Pairs: &factory.PairsQuery{Limit: &huge}}, &page)
	require.Empty(page.Pairs)
}

func TestUpdateConfigOwnerOnly(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)

	_, err := s.TryExecute("mallory", addr, factory.ExecuteMsg{UpdateConfig: &factory.UpdateConfigMsg{}})
	require.ErrorIs(err, factory.ErrUnauthorized)

	newOwner := host.Address("new-owner")
	newCommission := sdkmath.LegacyMustNewDecFromStr("0.005")
	migrateAdmin := host.Address("migrator")
	newCode := uint64(9)
	s.Execute(creator, addr, factory.ExecuteMsg{UpdateConfig: &factory.UpdateConfigMsg{
		Owner:             &newOwner,
		PairCodeID:        &newCode,
		DefaultCommission: &newCommission,
		MigrateAdmin:      &migrateAdmin,
	}})

	var cfg factory.ConfigResponse
	s.Query(addr, factory.QueryMsg{Config: &struct{}{}}, &cfg)
	require.Equal(newOwner, cfg.Owner)
	require.Equal(newCode, cfg.PairCodeID)
	require.Equal(newCommission, cfg.DefaultCommission)
	require.Equal(migrateAdmin, cfg.MigrateAdmin)

	// Ownership moved with the update.
	_, err = s.TryExecute(creator, addr, factory.ExecuteMsg{UpdateConfig: &factory.UpdateConfigMsg{}})
	require.ErrorIs(err, factory.ErrUnauthorized)
}

func TestCreatePairFailureLeavesNoEntry(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	addr := s.CreateFactory(creator, nil)

	// Point the factory at an unregistered pair code so the
	// sub-instantiation fails; the whole call must unwind.
	badCode := uint64(42)
	s.Execute(creator, addr, factory.ExecuteMsg{UpdateConfig: &factory.UpdateConfigMsg{
		PairCodeID: &badCode,
	}})
	_, err := s.TryExecute(creator, addr, factory.ExecuteMsg{CreatePair: &factory.CreatePairMsg{
		AssetInfos: uatomUusd(),
	}})
	require.ErrorIs(err, host.ErrCodeNotFound)

	_, err = s.TryQuery(addr, factory.QueryMsg{Pair: &factory.PairQuery{AssetInfos: uatomUusd()}})
	require.ErrorIs(err, factory.ErrPairNotFound)

	// After restoring the code the same pair can be created.
	goodCode := tswaptest.PairCodeID
	s.Execute(creator, addr, factory.ExecuteMsg{UpdateConfig: &factory.UpdateConfigMsg{
		PairCodeID: &goodCode,
	}})
	s.CreatePair(creator, addr, uatomUusd())
}