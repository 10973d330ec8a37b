// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package whitelist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/tswaptest"
	"github.com/tswaplabs/tswap/whitelist"
)

func isMember(s *tswaptest.Suite, group, addr host.Address) bool {
	var resp whitelist.IsMemberResponse
	s.Query(group, whitelist.QueryMsg{IsMember: &whitelist.IsMemberQuery{Addr: addr}}, &resp)
	return resp.IsMember
}

func TestMembership(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	group := s.Instantiate("admin", tswaptest.WhitelistCodeID, whitelist.InstantiateMsg{
		Members: []host.Address{"alice", "bob"},
	}, "group")

	require.True(isMember(s, group, "alice"))
	require.True(isMember(s, group, "bob"))
	require.False(isMember(s, group, "carol"))
}

func TestUpdateMembers(t *testing.T) {
	require := require.New(t)
	s := tswaptest.New(t)

	group := s.Instantiate("admin", tswaptest.WhitelistCodeID, whitelist.InstantiateMsg{
		Members: []host.Address{"alice"},
	}, "group")

	s.Execute("admin", group, whitelist.ExecuteMsg{UpdateMembers: &whitelist.UpdateMembersMsg{
		Add:    []host.Address{"carol"},
		Remove: []host.Address{"alice"},
	}})
	require.False(isMember(s, group, "alice"))
	require.True(isMember(s, group, "carol"))
}

func TestUpdateMembersRequiresAdmin(t *testing.T) {
	s := tswaptest.New(t)

	group := s.Instantiate("admin", tswaptest.WhitelistCodeID, whitelist.InstantiateMsg{}, "group")

	_, err := s.TryExecute("mallory", group, whitelist.ExecuteMsg{UpdateMembers: &whitelist.UpdateMembersMsg{
		Add: []host.Address{"mallory"},
	}})
	require.ErrorIs(t, err, whitelist.ErrUnauthorized)
}
