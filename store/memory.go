package store

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// NewMemoryStore creates a Store keeping all data in memory. It is the
// backend of choice for tests and dry-runs; contents are lost on Close.
func NewMemoryStore() Store {
	return &memoryStore{state: makeRevision(nil, 0)}
}

// memoryStore implements Store on top of a chain of revisions. Each
// snapshot opens a fresh revision layered over its parent; lookups walk
// the chain towards the root, reverts drop layers. The layout follows
// the usual in-memory state DB design: cheap snapshots, no copying.
type memoryStore struct {
	state           *revision
	revisionCounter int
}

type slotID struct {
	ns  Namespace
	key common.Hash
}

type revision struct {
	parent  *revision
	id      int
	words   map[slotID]common.Hash
	lengths map[slotID]uint64
}

func makeRevision(parent *revision, id int) *revision {
	return &revision{
		parent:  parent,
		id:      id,
		words:   map[slotID]common.Hash{},
		lengths: map[slotID]uint64{},
	}
}

func (s *memoryStore) Write(ns Namespace, key common.Hash, word common.Hash) error {
	s.state.words[slotID{ns, key}] = word
	return nil
}

func (s *memoryStore) Read(ns Namespace, key common.Hash) (common.Hash, error) {
	id := slotID{ns, key}
	for state := s.state; state != nil; state = state.parent {
		if word, exists := state.words[id]; exists {
			return word, nil
		}
	}
	return common.Hash{}, fmt.Errorf("%w: %v at %v", ErrNotInitialized, key, ns)
}

func (s *memoryStore) WriteVariable(ns Namespace, key common.Hash, data []byte) error {
	for i := uint64(0); i < chunkCount(uint64(len(data))); i++ {
		var word common.Hash
		copy(word[:], data[i*common.HashLength:])
		s.state.words[slotID{ns, SlotOf(key, i)}] = word
	}
	s.state.lengths[slotID{ns, key}] = uint64(len(data))
	return nil
}

func (s *memoryStore) ReadVariable(ns Namespace, key common.Hash) ([]byte, error) {
	id := slotID{ns, key}
	var length uint64
	found := false
	for state := s.state; state != nil && !found; state = state.parent {
		length, found = state.lengths[id]
	}
	if !found {
		return nil, fmt.Errorf("%w: %v at %v", ErrNotInitialized, key, ns)
	}

	data := make([]byte, 0, chunkCount(length)*common.HashLength)
	for i := uint64(0); i < chunkCount(length); i++ {
		word, err := s.Read(ns, SlotOf(key, i))
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %v: %w", i, key, err)
		}
		data = append(data, word[:]...)
	}
	return data[:length], nil
}

func (s *memoryStore) Snapshot() int {
	res := s.state.id
	s.revisionCounter++
	s.state = makeRevision(s.state, s.revisionCounter)
	return res
}

func (s *memoryStore) RevertToSnapshot(id int) {
	for ; s.state != nil && s.state.id != id; s.state = s.state.parent {
		// nothing
	}
	if s.state == nil {
		panic(fmt.Errorf("unable to revert to snapshot %d", id))
	}
}

func (s *memoryStore) ReleaseSnapshot(id int) {
	target := s.state
	for ; target != nil && target.id != id; target = target.parent {
		// nothing
	}
	if target == nil {
		panic(fmt.Errorf("unable to release snapshot %d", id))
	}

	// Fold the released layers into the target, oldest first so that
	// later writes win, then make the target current again. This keeps
	// the chain depth bounded no matter how many sequences run.
	var released []*revision
	for state := s.state; state != target; state = state.parent {
		released = append(released, state)
	}
	for i := len(released) - 1; i >= 0; i-- {
		for slot, word := range released[i].words {
			target.words[slot] = word
		}
		for slot, length := range released[i].lengths {
			target.lengths[slot] = length
		}
	}
	s.state = target
}

func (s *memoryStore) Close() error {
	s.state = makeRevision(nil, 0)
	return nil
}
