// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"bytes"
	"context"

	"github.com/ava-labs/avalanchego/database"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Immutable is a read-only view of key-value state.
type Immutable interface {
	GetValue(ctx context.Context, key []byte) ([]byte, error)
}

// Mutable extends Immutable with writes. Missing keys surface
// database.ErrNotFound.
type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Store is the state handle passed into contract entry points. Iterate
// visits keys with the given prefix in ascending byte order, starting
// strictly after start when start is non-nil; the callback returns false
// to stop early.
type Store interface {
	Mutable

	Iterate(ctx context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error
}

// InMemoryStore is the root store backing an App.
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (s *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, ok := s.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	s.Storage[string(key)] = value
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(s.Storage, string(key))
	return nil
}

func (s *InMemoryStore) Iterate(_ context.Context, prefix []byte, start []byte, fn func(key []byte, value []byte) (bool, error)) error {
	keys := maps.Keys(s.Storage)
	slices.Sort(keys)
	for _, k := range keys {
		kb := []byte(k)
		if !bytes.HasPrefix(kb, prefix) {
			continue
		}
		if start != nil && bytes.Compare(kb, start) <= 0 {
			continue
		}
		cont, err := fn(kb, s.Storage[k])
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
