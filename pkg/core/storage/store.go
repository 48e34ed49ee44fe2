package storage

import (
	"errors"
	"fmt"
)

// KeyPrefix constants.
const (
	// STAsset is used for asset metadata and supply records keyed by the
	// asset handle.
	STAsset KeyPrefix = 0x40
	// STAccount is used for holder account records keyed by the asset
	// handle followed by the holder address.
	STAccount KeyPrefix = 0x41
	// STCapabilities is used for the control capability record keyed by
	// the asset handle.
	STCapabilities KeyPrefix = 0x42
	// SYSVersion is used for the store schema version.
	SYSVersion KeyPrefix = 0xf0
)

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

type (
	// Store is the underlying KV backend for the ledger data, it's not
	// intended to be used directly, the DAO wraps it with typed accessors.
	Store interface {
		Get([]byte) ([]byte, error)
		// PutChangeSet persists the given set of key-value pairs
		// atomically, either the whole set is visible afterwards or
		// none of it is.
		PutChangeSet(puts map[string][]byte) error
		// Seek can guarantee that provided key (k) and value (v) are
		// the only valid until the next call to f. Seek continues
		// iteration until false is returned from f. Key and value
		// slices should not be modified. Key-value items are sorted
		// by key in ascending way.
		Seek(rng SeekRange, f func(k, v []byte) bool)
		Close() error
	}

	// KeyPrefix is a constant byte added as a prefix for each key
	// stored.
	KeyPrefix uint8
)

// SeekRange represents options for the Store.Seek operation.
type SeekRange struct {
	// Prefix denotes the Seek's lookup key.
	Prefix []byte
	// Start denotes a value appended to the Prefix to start Seek from.
	// Seeking starting from some key includes this key to the result;
	// if no matching key was found then the next suitable key is picked
	// up. Start may be empty, empty Start means seeking through all keys
	// with the matching Prefix.
	Start []byte
}

// Bytes returns the bytes representation of KeyPrefix.
func (k KeyPrefix) Bytes() []byte {
	return []byte{byte(k)}
}

// AppendPrefix appends the byte slice to the given KeyPrefix, returning
// a new allocated key.
func AppendPrefix(k KeyPrefix, b []byte) []byte {
	dest := make([]byte, 0, 1+len(b))
	dest = append(dest, byte(k))
	return append(dest, b...)
}

// NewStore creates a storage with the given configuration.
func NewStore(cfg Config) (Store, error) {
	var store Store
	var err error
	switch cfg.Type {
	case "leveldb":
		store, err = NewLevelDBStore(cfg.LevelDBOptions)
	case "inmemory":
		store = NewMemoryStore()
	case "boltdb":
		store, err = NewBoltDBStore(cfg.BoltDBOptions)
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
	return store, err
}
