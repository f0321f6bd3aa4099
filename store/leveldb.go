package store

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
)

// readCacheSize bounds the number of recently accessed entries kept in
// memory by the LevelDB-backed store.
const readCacheSize = 4096

// key prefixes separating scalar words from variable-length metadata
const (
	wordPrefix   = byte('w')
	lengthPrefix = byte('l')
)

// NewLevelStore opens (or creates) a durable Store at the given path.
// Data written outside of a reverted snapshot persists across process
// restarts, giving slots the "until explicitly overwritten" lifetime the
// engine promises.
func NewLevelStore(path string) (Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot open store at %s; %v", path, err)
	}
	cache, err := lru.New(readCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &levelStore{db: db, cache: cache}, nil
}

// levelStore implements Store on top of LevelDB. Snapshots are backed by
// an undo journal: every write performed while a snapshot is open records
// the previous entry, and a revert replays the journal backwards.
type levelStore struct {
	db              *leveldb.DB
	cache           *lru.Cache
	journal         []undoEntry
	marks           []mark
	snapshotCounter int
}

type undoEntry struct {
	key  []byte
	prev []byte // nil if the key was absent before the write
}

type mark struct {
	id         int
	journalLen int
}

func encodeKey(prefix byte, ns Namespace, key common.Hash) []byte {
	buf := make([]byte, 0, 1+2*common.HashLength)
	buf = append(buf, prefix)
	buf = append(buf, ns[:]...)
	buf = append(buf, key[:]...)
	return buf
}

func (s *levelStore) Write(ns Namespace, key common.Hash, word common.Hash) error {
	return s.put(encodeKey(wordPrefix, ns, key), word.Bytes())
}

func (s *levelStore) Read(ns Namespace, key common.Hash) (common.Hash, error) {
	k := encodeKey(wordPrefix, ns, key)
	if cached, exists := s.cache.Get(string(k)); exists {
		return cached.(common.Hash), nil
	}
	data, err := s.db.Get(k, nil)
	if err == leveldb.ErrNotFound {
		return common.Hash{}, fmt.Errorf("%w: %v at %v", ErrNotInitialized, key, ns)
	}
	if err != nil {
		return common.Hash{}, fmt.Errorf("cannot read slot %v; %v", key, err)
	}
	word := common.BytesToHash(data)
	s.cache.Add(string(k), word)
	return word, nil
}

func (s *levelStore) WriteVariable(ns Namespace, key common.Hash, data []byte) error {
	for i := uint64(0); i < chunkCount(uint64(len(data))); i++ {
		var word common.Hash
		copy(word[:], data[i*common.HashLength:])
		if err := s.Write(ns, SlotOf(key, i), word); err != nil {
			return err
		}
	}
	length := make([]byte, 8)
	binary.BigEndian.PutUint64(length, uint64(len(data)))
	return s.put(encodeKey(lengthPrefix, ns, key), length)
}

func (s *levelStore) ReadVariable(ns Namespace, key common.Hash) ([]byte, error) {
	raw, err := s.db.Get(encodeKey(lengthPrefix, ns, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("%w: %v at %v", ErrNotInitialized, key, ns)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read length of %v; %v", key, err)
	}
	length := binary.BigEndian.Uint64(raw)

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

func (s *levelStore) Snapshot() int {
	id := s.snapshotCounter
	s.snapshotCounter++
	s.marks = append(s.marks, mark{id: id, journalLen: len(s.journal)})
	return id
}

func (s *levelStore) RevertToSnapshot(id int) {
	for i := len(s.marks) - 1; i >= 0; i-- {
		if s.marks[i].id != id {
			continue
		}
		s.rollback(s.marks[i].journalLen)
		s.marks = s.marks[:i]
		return
	}
	panic(fmt.Errorf("unable to revert to snapshot %d", id))
}

func (s *levelStore) ReleaseSnapshot(id int) {
	for i := len(s.marks) - 1; i >= 0; i-- {
		if s.marks[i].id != id {
			continue
		}
		s.marks = s.marks[:i]
		// Journal entries are only needed while an enclosing snapshot
		// could still revert past them; with none left, drop them all so
		// repeated runs do not accumulate undo state.
		if len(s.marks) == 0 {
			s.journal = s.journal[:0]
		}
		return
	}
	panic(fmt.Errorf("unable to release snapshot %d", id))
}

func (s *levelStore) Close() error {
	return s.db.Close()
}

// put writes an entry, recording its previous state in the undo journal
// while any snapshot is open.
func (s *levelStore) put(key []byte, value []byte) error {
	if len(s.marks) > 0 {
		prev, err := s.db.Get(key, nil)
		if err != nil && err != leveldb.ErrNotFound {
			return fmt.Errorf("cannot journal previous value; %v", err)
		}
		if err == leveldb.ErrNotFound {
			prev = nil
		}
		s.journal = append(s.journal, undoEntry{key: key, prev: prev})
	}
	if err := s.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("cannot write entry; %v", err)
	}
	s.cache.Remove(string(key))
	return nil
}

// rollback replays the undo journal backwards down to the given length.
// A revert that cannot be applied leaves the store in an undefined state,
// so failures here are fatal.
func (s *levelStore) rollback(journalLen int) {
	for i := len(s.journal) - 1; i >= journalLen; i-- {
		entry := s.journal[i]
		var err error
		if entry.prev == nil {
			err = s.db.Delete(entry.key, nil)
		} else {
			err = s.db.Put(entry.key, entry.prev, nil)
		}
		if err != nil {
			panic(fmt.Errorf("unable to roll back store write: %v", err))
		}
		s.cache.Remove(string(entry.key))
	}
	s.journal = s.journal[:journalLen]
}
