// Package store implements the namespaced persistent word store backing
// composed call sequences. All data is addressed by a (namespace, key)
// pair, where the namespace is derived from the identity pair owning the
// data. Two backends are provided: a fast in-memory store and a durable
// LevelDB-backed store.
package store

//go:generate mockgen -source store.go -destination store_mocks.go -package store

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrNotInitialized is reported when reading a slot that was never
// written. Uninitialized slots fail loudly instead of defaulting to a
// zero word so that a mistyped slot cannot silently feed zeroes into a
// call sequence.
var ErrNotInitialized = errors.New("storage slot not initialized")

// Namespace isolates storage between unrelated identity pairs sharing
// the same store instance. It is derived, never assigned.
type Namespace common.Hash

// NamespaceOf derives the storage namespace of the given (owner, caller)
// identity pair. The derivation is collision-resistant across distinct
// pairs and is never derived from stored content.
func NamespaceOf(owner, caller common.Address) Namespace {
	return Namespace(crypto.Keccak256Hash(owner.Bytes(), caller.Bytes()))
}

func (n Namespace) String() string {
	return common.Hash(n).String()
}

// SlotOf derives the i-th slot of a deterministic fan-out rooted at the
// given base slot. It addresses both multi-word call results and the
// chunks of variable-length entries; distinct bases never collide.
func SlotOf(base common.Hash, index uint64) common.Hash {
	var idx common.Hash
	idx[common.HashLength-8] = byte(index >> 56)
	idx[common.HashLength-7] = byte(index >> 48)
	idx[common.HashLength-6] = byte(index >> 40)
	idx[common.HashLength-5] = byte(index >> 32)
	idx[common.HashLength-4] = byte(index >> 24)
	idx[common.HashLength-3] = byte(index >> 16)
	idx[common.HashLength-2] = byte(index >> 8)
	idx[common.HashLength-1] = byte(index)
	return crypto.Keccak256Hash(base.Bytes(), idx.Bytes())
}

// Store is a key-value store of 32-byte words scoped by namespaces.
// Writes are unconditional overwrites; reads of never-written slots fail
// with ErrNotInitialized. Variable-length entries are chunked into words
// internally but read back as the original byte sequence.
//
// Snapshot, RevertToSnapshot and ReleaseSnapshot provide the
// transactional boundary the execution engine requires: a sequence runs
// inside a snapshot, any failure reverts every write of that sequence,
// and a completed sequence releases the snapshot so that undo bookkeeping
// does not accumulate across runs. The store itself performs no
// concurrency control; callers sharing a namespace must serialize.
type Store interface {
	// Write stores a single word at (namespace, key), marking the slot
	// initialized.
	Write(ns Namespace, key common.Hash, word common.Hash) error

	// Read returns the word stored at (namespace, key).
	Read(ns Namespace, key common.Hash) (common.Hash, error)

	// WriteVariable stores a byte sequence of arbitrary length at
	// (namespace, key). The sequence is chunked into words stored at
	// SlotOf(key, i) and its length is recorded at the key's metadata
	// slot.
	WriteVariable(ns Namespace, key common.Hash, data []byte) error

	// ReadVariable reconstructs a byte sequence previously stored with
	// WriteVariable. It fails with ErrNotInitialized if the key was
	// never written as a variable-length entry.
	ReadVariable(ns Namespace, key common.Hash) ([]byte, error)

	// Snapshot marks the current state and returns an identifier that
	// can be passed to RevertToSnapshot.
	Snapshot() int

	// RevertToSnapshot discards every write performed since the given
	// snapshot was taken. Reverting to an unknown snapshot id is a
	// programming error and panics.
	RevertToSnapshot(id int)

	// ReleaseSnapshot keeps every write performed since the given
	// snapshot was taken and discards the undo bookkeeping backing it,
	// along with any nested snapshots taken after it. Like
	// RevertToSnapshot, an unknown snapshot id panics.
	ReleaseSnapshot(id int)

	// Close releases the underlying resources. No operations are
	// allowed on the store afterwards.
	Close() error
}

// chunkCount returns the number of words needed to store length bytes.
func chunkCount(length uint64) uint64 {
	return (length + common.HashLength - 1) / common.HashLength
}
