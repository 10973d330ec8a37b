// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

// Address identifies an account or contract instance. Contract addresses
// are derived deterministically from the code id and an instance counter,
// so a given creation sequence always yields the same addresses.
type Address string

const EmptyAddress = Address("")

const contractHRP = "tswap1"

func CreateContractAddress(codeID uint64, instance uint64) Address {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, codeID)
	binary.BigEndian.PutUint64(b[8:], instance)
	id := ids.ID(hashing.ComputeHash256Array(b))
	return Address(contractHRP + id.String())
}

func (a Address) Empty() bool {
	return a == EmptyAddress
}

func (a Address) String() string {
	return string(a)
}
