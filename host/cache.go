// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"context"

	"github.com/ava-labs/avalanchego/database"

	"golang.org/x/exp/slices"
)

// CacheStore layers pending writes over a parent store. A call (or a
// submessage within a call) executes against its own CacheStore; Flush
// commits on success, dropping the store discards everything. This is
// what gives each external call its all-or-nothing semantics.
type CacheStore struct {
	parent Store
	ops    map[string]cacheOp
}

type cacheOp struct {
	value   []byte
	deleted bool
}

func NewCacheStore(parent Store) *CacheStore {
	return &CacheStore{
		parent: parent,
		ops:    make(map[string]cacheOp),
	}
}

func (c *CacheStore) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if op, ok := c.ops[string(key)]; ok {
		if op.deleted {
			return nil, database.ErrNotFound
		}
		return op.value, nil
	}
	return c.parent.GetValue(ctx, key)
}

func (c *CacheStore) Insert(_ context.Context, key []byte, value []byte) error {
	c.ops[string(key)] = cacheOp{value: value}
	return nil
}

func (c *CacheStore) Remove(_ context.Context, key []byte) error {
	c.ops[string(key)] = cacheOp{deleted: true}
	return nil
}

// Iterate merges pending writes with the parent's view, preserving
// ascending key order. The merge streams: an early stop from fn also
// stops the parent's scan.
func (c *CacheStore) Iterate(ctx context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error {
	pending := make([]string, 0, len(c.ops))
	for k := range c.ops {
		kb := []byte(k)
		if !bytes.HasPrefix(kb, prefix) {
			continue
		}
		if start != nil && bytes.Compare(kb, start) <= 0 {
			continue
		}
		pending = append(pending, k)
	}
	slices.Sort(pending)

	next := 0
	stopped := false
	err := c.parent.Iterate(ctx, prefix, start, func(key []byte, value []byte) (bool, error) {
		// Pending keys sorting before the parent's key go first.
		for next < len(pending) && pending[next] < string(key) {
			k := pending[next]
			op := c.ops[k]
			next++
			if op.deleted {
				continue
			}
			cont, err := fn([]byte(k), op.value)
			if err != nil {
				return false, err
			}
			if !cont {
				stopped = true
				return false, nil
			}
		}
		// A pending op on the same key shadows the parent.
		if next < len(pending) && pending[next] == string(key) {
			op := c.ops[pending[next]]
			next++
			if op.deleted {
				return true, nil
			}
			value = op.value
		}
		cont, err := fn(key, value)
		if err != nil {
			return false, err
		}
		if !cont {
			stopped = true
			return false, nil
		}
		return true, nil
	})
	if err != nil || stopped {
		return err
	}
	for ; next < len(pending); next++ {
		op := c.ops[pending[next]]
		if op.deleted {
			continue
		}
		cont, err := fn([]byte(pending[next]), op.value)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// Flush commits pending writes to the parent.
func (c *CacheStore) Flush(ctx context.Context) error {
	for k, op := range c.ops {
		if op.deleted {
			if err := c.parent.Remove(ctx, []byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := c.parent.Insert(ctx, []byte(k), op.value); err != nil {
			return err
		}
	}
	c.ops = make(map[string]cacheOp)
	return nil
}
