// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

// Key prefixes for app-level state.
const (
	bankPrefix byte = iota
	contractInfoPrefix
	contractStatePrefix
	instanceCounterPrefix
)

const keySeparator byte = '/'
