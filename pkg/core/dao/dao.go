// Package dao provides a typed data access layer on top of a raw storage
// Store. A Simple DAO buffers all writes in memory, the accumulated change
// set is flushed to the backing store atomically by Persist. One DAO
// instance backs exactly one ledger operation, either all of its effects
// reach the store or none do.
package dao

import (
	"fmt"

	"github.com/fortuna-dev/ftapt/pkg/core/state"
	"github.com/fortuna-dev/ftapt/pkg/core/storage"
	"github.com/fortuna-dev/ftapt/pkg/io"
	"github.com/fortuna-dev/ftapt/pkg/util"
)

// Simple is a DAO for the ledger data stored in a simple KV store.
type Simple struct {
	store storage.Store
	dirty map[string][]byte
}

// NewSimple creates a new Simple instance wrapping the given store.
func NewSimple(backend storage.Store) *Simple {
	return &Simple{
		store: backend,
		dirty: make(map[string][]byte),
	}
}

func (dao *Simple) get(key []byte, s io.Serializable) error {
	b, ok := dao.dirty[string(key)]
	if !ok {
		var err error
		b, err = dao.store.Get(key)
		if err != nil {
			return err
		}
	} else if b == nil {
		return storage.ErrKeyNotFound
	}
	r := io.NewBinReaderFromBuf(b)
	s.DecodeBinary(r)
	if r.Err != nil {
		return fmt.Errorf("failed to decode (%T): %w", s, r.Err)
	}
	return nil
}

func (dao *Simple) put(key []byte, s io.Serializable) error {
	buf := io.NewBufBinWriter()
	s.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return buf.Err
	}
	dao.dirty[string(key)] = buf.Bytes()
	return nil
}

func makeAssetKey(asset util.Uint160) []byte {
	return storage.AppendPrefix(storage.STAsset, asset.BytesBE())
}

func makeAccountKey(asset, holder util.Uint160) []byte {
	key := storage.AppendPrefix(storage.STAccount, asset.BytesBE())
	return append(key, holder.BytesBE()...)
}

func makeCapabilitiesKey(asset util.Uint160) []byte {
	return storage.AppendPrefix(storage.STCapabilities, asset.BytesBE())
}

// GetAssetState returns the AssetState stored under the given asset handle
// or storage.ErrKeyNotFound if the asset was never created.
func (dao *Simple) GetAssetState(asset util.Uint160) (*state.AssetState, error) {
	a := new(state.AssetState)
	if err := dao.get(makeAssetKey(asset), a); err != nil {
		return nil, err
	}
	return a, nil
}

// PutAssetState puts the given AssetState into the change set.
func (dao *Simple) PutAssetState(a *state.AssetState) error {
	return dao.put(makeAssetKey(a.Hash), a)
}

// GetAccountState returns the holder account for the given asset
// or storage.ErrKeyNotFound if it doesn't exist.
func (dao *Simple) GetAccountState(asset, holder util.Uint160) (*state.AccountState, error) {
	acc := new(state.AccountState)
	if err := dao.get(makeAccountKey(asset, holder), acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// GetAccountStateOrNew retrieves the holder account from the store
// or creates a new zero-balance one if it doesn't exist. Creation is
// buffered like any other write, calling it on an existing account is
// a plain read.
func (dao *Simple) GetAccountStateOrNew(asset, holder util.Uint160) (*state.AccountState, error) {
	account, err := dao.GetAccountState(asset, holder)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			return nil, err
		}
		account = state.NewAccountState(holder)
	}
	return account, nil
}

// PutAccountState puts the given holder account into the change set.
func (dao *Simple) PutAccountState(asset util.Uint160, acc *state.AccountState) error {
	return dao.put(makeAccountKey(asset, acc.Address), acc)
}

// HasCapabilitiesRecord says whether the control capability record exists
// for the given asset.
func (dao *Simple) HasCapabilitiesRecord(asset util.Uint160) bool {
	if _, ok := dao.dirty[string(makeCapabilitiesKey(asset))]; ok {
		return true
	}
	_, err := dao.store.Get(makeCapabilitiesKey(asset))
	return err == nil
}

// PutCapabilitiesRecord marks the control capability bundle as created for
// the given asset.
func (dao *Simple) PutCapabilitiesRecord(asset util.Uint160) {
	dao.dirty[string(makeCapabilitiesKey(asset))] = []byte{1}
}

// SeekAccounts invokes f for every stored holder account of the given
// asset, in ascending address order, until f returns false.
func (dao *Simple) SeekAccounts(asset util.Uint160, f func(acc *state.AccountState) bool) error {
	var outerErr error
	rng := storage.SeekRange{Prefix: storage.AppendPrefix(storage.STAccount, asset.BytesBE())}
	dao.store.Seek(rng, func(k, v []byte) bool {
		acc := new(state.AccountState)
		r := io.NewBinReaderFromBuf(v)
		acc.DecodeBinary(r)
		if r.Err != nil {
			outerErr = fmt.Errorf("failed to decode (AccountState): %w", r.Err)
			return false
		}
		return f(acc)
	})
	return outerErr
}

// Persist flushes the accumulated change set to the backing store in one
// atomic batch. The DAO can be reused afterwards.
func (dao *Simple) Persist() error {
	if len(dao.dirty) == 0 {
		return nil
	}
	if err := dao.store.PutChangeSet(dao.dirty); err != nil {
		return err
	}
	dao.dirty = make(map[string][]byte)
	return nil
}
