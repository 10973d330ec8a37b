// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "context"

// prefixStore namespaces a contract's keys inside the app store so one
// contract can never touch another's state.
type prefixStore struct {
	parent Store
	prefix []byte
}

func newPrefixStore(parent Store, prefix []byte) *prefixStore {
	return &prefixStore{parent: parent, prefix: prefix}
}

func (p *prefixStore) key(key []byte) []byte {
	k := make([]byte, 0, len(p.prefix)+len(key))
	k = append(k, p.prefix...)
	return append(k, key...)
}

func (p *prefixStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	return p.parent.GetValue(ctx, p.key(key))
}

func (p *prefixStore) Insert(ctx context.Context, key []byte, value []byte) error {
	return p.parent.Insert(ctx, p.key(key), value)
}

func (p *prefixStore) Remove(ctx context.Context, key []byte) error {
	return p.parent.Remove(ctx, p.key(key))
}

func (p *prefixStore) Iterate(ctx context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error {
	var fullStart []byte
	if start != nil {
		fullStart = p.key(start)
	}
	return p.parent.Iterate(ctx, p.key(prefix), fullStart, func(key []byte, value []byte) (bool, error) {
		return fn(key[len(p.prefix):], value)
	})
}
