// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "encoding/json"

// Env describes the contract instance a call is dispatched to.
type Env struct {
	Contract Address `json:"contract"`
}

// MsgInfo carries the immediate sender and any attached native funds.
// Attached funds are credited to the contract before the entry point
// runs, so native balance reads at call entry already include them.
type MsgInfo struct {
	Sender Address `json:"sender"`
	Funds  Coins   `json:"funds"`
}

// Msg is a closed tagged union of the directives a contract can emit.
// Exactly one field is set.
type Msg struct {
	BankSend    *BankSendMsg        `json:"bank_send,omitempty"`
	Execute     *ExecuteContractMsg `json:"execute,omitempty"`
	Instantiate *InstantiateMsg     `json:"instantiate,omitempty"`
}

type BankSendMsg struct {
	ToAddress Address `json:"to_address"`
	Amount    Coins   `json:"amount"`
}

type ExecuteContractMsg struct {
	Contract Address         `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
	Funds    Coins           `json:"funds,omitempty"`
}

type InstantiateMsg struct {
	CodeID uint64          `json:"code_id"`
	Msg    json.RawMessage `json:"msg"`
	Funds  Coins           `json:"funds,omitempty"`
	Label  string          `json:"label"`
}

// ReplyOn controls whether the emitting contract's Reply entry point is
// invoked with the submessage result.
type ReplyOn uint8

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

// SubMsg pairs a directive with a correlation id. The id is opaque to the
// host; the emitting contract uses it to route the reply.
type SubMsg struct {
	ID      uint64  `json:"id"`
	Msg     Msg     `json:"msg"`
	ReplyOn ReplyOn `json:"reply_on"`
}

func NewSubMsg(msg Msg) SubMsg {
	return SubMsg{Msg: msg, ReplyOn: ReplyNever}
}

func ReplyOnSuccess(id uint64, msg Msg) SubMsg {
	return SubMsg{ID: id, Msg: msg, ReplyOn: ReplySuccess}
}

// Response is returned from Instantiate/Execute/Reply entry points.
// Messages run depth-first after the entry point returns, inside the
// same transaction.
type Response struct {
	Messages []SubMsg
	Data     []byte
}

func (r *Response) AddMessage(msg Msg) *Response {
	r.Messages = append(r.Messages, NewSubMsg(msg))
	return r
}

func (r *Response) AddSubMsg(sub SubMsg) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

// SubMsgResponse is the success half of a submessage result. For
// instantiations, ContractAddress carries the freshly created address.
type SubMsgResponse struct {
	ContractAddress Address `json:"contract_address,omitempty"`
	Data            []byte  `json:"data,omitempty"`
}

// Reply is delivered to the emitting contract's Reply entry point.
// Exactly one of Ok and Err is set.
type Reply struct {
	ID  uint64          `json:"id"`
	Ok  *SubMsgResponse `json:"ok,omitempty"`
	Err string          `json:"err,omitempty"`
}
