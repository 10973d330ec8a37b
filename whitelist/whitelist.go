// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package whitelist holds the membership-group collaborator: a minimal
// group contract plus the IsMember query helper other contracts use to
// gate transfers.
package whitelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/tswaplabs/tswap/host"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownMsg   = errors.New("unknown message variant")
)

type InstantiateMsg struct {
	Members []host.Address `json:"members"`
}

type ExecuteMsg struct {
	UpdateMembers *UpdateMembersMsg `json:"update_members,omitempty"`
}

type UpdateMembersMsg struct {
	Add    []host.Address `json:"add,omitempty"`
	Remove []host.Address `json:"remove,omitempty"`
}

type QueryMsg struct {
	IsMember *IsMemberQuery `json:"is_member,omitempty"`
}

type IsMemberQuery struct {
	Addr host.Address `json:"addr"`
}

type IsMemberResponse struct {
	IsMember bool `json:"is_member"`
}

var (
	adminKey     = []byte("admin")
	memberPrefix = []byte("member/")
)

func memberKey(addr host.Address) []byte {
	return append(append([]byte{}, memberPrefix...), addr...)
}

// Contract is the group contract. The instantiator becomes the admin
// and is the only one allowed to update the member set.
type Contract struct{}

var _ host.Contract = (*Contract)(nil)

func (*Contract) Instantiate(ctx context.Context, deps host.Deps, _ host.Env, info host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg InstantiateMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	if err := deps.Store.Insert(ctx, adminKey, []byte(info.Sender)); err != nil {
		return nil, err
	}
	for _, m := range msg.Members {
		if err := deps.Store.Insert(ctx, memberKey(m), []byte{1}); err != nil {
			return nil, err
		}
	}
	return &host.Response{}, nil
}

func (*Contract) Execute(ctx context.Context, deps host.Deps, _ host.Env, info host.MsgInfo, rawMsg []byte) (*host.Response, error) {
	var msg ExecuteMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	if msg.UpdateMembers == nil {
		return nil, ErrUnknownMsg
	}
	admin, err := deps.Store.GetValue(ctx, adminKey)
	if err != nil {
		return nil, err
	}
	if host.Address(admin) != info.Sender {
		return nil, ErrUnauthorized
	}
	for _, m := range msg.UpdateMembers.Add {
		if err := deps.Store.Insert(ctx, memberKey(m), []byte{1}); err != nil {
			return nil, err
		}
	}
	for _, m := range msg.UpdateMembers.Remove {
		if err := deps.Store.Remove(ctx, memberKey(m)); err != nil {
			return nil, err
		}
	}
	return &host.Response{}, nil
}

func (*Contract) Query(ctx context.Context, deps host.QueryDeps, _ host.Env, rawMsg []byte) ([]byte, error) {
	var msg QueryMsg
	if err := json.Unmarshal(rawMsg, &msg); err != nil {
		return nil, err
	}
	if msg.IsMember == nil {
		return nil, ErrUnknownMsg
	}
	_, err := deps.Store.GetValue(ctx, memberKey(msg.IsMember.Addr))
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	return json.Marshal(IsMemberResponse{IsMember: err == nil})
}

func (*Contract) Reply(context.Context, host.Deps, host.Env, host.Reply) (*host.Response, error) {
	return nil, host.ErrUnknownReply
}

// IsMember asks the group contract whether addr is a member.
func IsMember(ctx context.Context, querier host.Querier, group host.Address, addr host.Address) (bool, error) {
	req, err := json.Marshal(QueryMsg{IsMember: &IsMemberQuery{Addr: addr}})
	if err != nil {
		return false, err
	}
	raw, err := querier.QuerySmart(ctx, group, req)
	if err != nil {
		return false, fmt.Errorf("membership query: %w", err)
	}
	var resp IsMemberResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false, err
	}
	return resp.IsMember, nil
}
