package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ownerA  = common.HexToAddress("0xA0")
	callerB = common.HexToAddress("0xB0")
	callerC = common.HexToAddress("0xC0")
)

// storeFactories lists the backends every store test runs against.
var storeFactories = map[string]func(t *testing.T) Store{
	"memory": func(t *testing.T) Store {
		return NewMemoryStore()
	},
	"leveldb": func(t *testing.T) Store {
		st, err := NewLevelStore(t.TempDir())
		if err != nil {
			t.Fatalf("cannot open store: %v", err)
		}
		return st
	},
}

func TestNamespaceOf_DistinctPairsGetDistinctNamespaces(t *testing.T) {
	seen := map[Namespace]string{}
	for _, owner := range []common.Address{ownerA, callerB, callerC} {
		for _, caller := range []common.Address{ownerA, callerB, callerC} {
			ns := NamespaceOf(owner, caller)
			pair := owner.String() + "/" + caller.String()
			if prev, exists := seen[ns]; exists {
				t.Errorf("namespace collision between %s and %s", prev, pair)
			}
			seen[ns] = pair
		}
	}
}

func TestNamespaceOf_IsNotSymmetric(t *testing.T) {
	if NamespaceOf(ownerA, callerB) == NamespaceOf(callerB, ownerA) {
		t.Errorf("swapping owner and caller must change the namespace")
	}
}

func TestSlotOf_FanOutsFromDistinctBasesNeverCollide(t *testing.T) {
	baseX := common.HexToHash("0x01")
	baseY := common.HexToHash("0x02")
	seen := map[common.Hash]bool{baseX: true, baseY: true}
	for _, base := range []common.Hash{baseX, baseY} {
		for i := uint64(0); i < 100; i++ {
			slot := SlotOf(base, i)
			if seen[slot] {
				t.Fatalf("slot collision at base %v index %d", base, i)
			}
			seen[slot] = true
		}
	}
}

func TestStore_ReadBeforeWriteFails(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			if _, err := st.Read(ns, common.HexToHash("0x01")); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("read of uninitialized slot did not fail, got %v", err)
			}
			if _, err := st.ReadVariable(ns, common.HexToHash("0x01")); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("variable read of uninitialized slot did not fail, got %v", err)
			}
		})
	}
}

func TestStore_WrittenWordsCanBeReadBack(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			key := common.HexToHash("0x11")

			if err := st.Write(ns, key, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if got, _ := st.Read(ns, key); got != common.HexToHash("0xaa") {
				t.Errorf("got %v, want %v", got, common.HexToHash("0xaa"))
			}

			// writes are unconditional overwrites
			if err := st.Write(ns, key, common.HexToHash("0xbb")); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			if got, _ := st.Read(ns, key); got != common.HexToHash("0xbb") {
				t.Errorf("got %v after overwrite, want %v", got, common.HexToHash("0xbb"))
			}
		})
	}
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			key := common.HexToHash("0x11")

			if err := st.Write(NamespaceOf(ownerA, callerB), key, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if _, err := st.Read(NamespaceOf(ownerA, callerC), key); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("write leaked into a foreign namespace, got %v", err)
			}
		})
	}
}

func TestStore_VariableEntriesRoundTrip(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)

			for _, size := range []int{0, 1, 31, 32, 33, 100} {
				data := make([]byte, size)
				for i := range data {
					data[i] = byte(i + size)
				}
				key := SlotOf(common.Hash{}, uint64(size))
				if err := st.WriteVariable(ns, key, data); err != nil {
					t.Fatalf("variable write of %d bytes failed: %v", size, err)
				}
				got, err := st.ReadVariable(ns, key)
				if err != nil {
					t.Fatalf("variable read of %d bytes failed: %v", size, err)
				}
				if !bytes.Equal(got, data) {
					t.Errorf("%d bytes: got %x, want %x", size, got, data)
				}
			}
		})
	}
}

func TestStore_VariableOverwriteWithShorterDataTruncates(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			key := common.HexToHash("0x22")

			if err := st.WriteVariable(ns, key, make([]byte, 100)); err != nil {
				t.Fatalf("variable write failed: %v", err)
			}
			if err := st.WriteVariable(ns, key, []byte{1, 2, 3}); err != nil {
				t.Fatalf("variable overwrite failed: %v", err)
			}
			got, err := st.ReadVariable(ns, key)
			if err != nil {
				t.Fatalf("variable read failed: %v", err)
			}
			if want := []byte{1, 2, 3}; !bytes.Equal(got, want) {
				t.Errorf("got %x, want %x", got, want)
			}
		})
	}
}

func TestStore_RevertDiscardsWritesSinceSnapshot(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			kept := common.HexToHash("0x01")
			discarded := common.HexToHash("0x02")

			if err := st.Write(ns, kept, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			snapshot := st.Snapshot()
			if err := st.Write(ns, kept, common.HexToHash("0xbb")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if err := st.Write(ns, discarded, common.HexToHash("0xcc")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if err := st.WriteVariable(ns, discarded, []byte("transient")); err != nil {
				t.Fatalf("variable write failed: %v", err)
			}
			st.RevertToSnapshot(snapshot)

			if got, _ := st.Read(ns, kept); got != common.HexToHash("0xaa") {
				t.Errorf("pre-snapshot value not restored, got %v", got)
			}
			if _, err := st.Read(ns, discarded); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("reverted slot still initialized, got %v", err)
			}
			if _, err := st.ReadVariable(ns, discarded); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("reverted variable entry still initialized, got %v", err)
			}
		})
	}
}

func TestStore_NestedSnapshotsRevertIndependently(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			key := common.HexToHash("0x01")

			outer := st.Snapshot()
			if err := st.Write(ns, key, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			inner := st.Snapshot()
			if err := st.Write(ns, key, common.HexToHash("0xbb")); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			st.RevertToSnapshot(inner)
			if got, _ := st.Read(ns, key); got != common.HexToHash("0xaa") {
				t.Errorf("inner revert lost outer write, got %v", got)
			}

			st.RevertToSnapshot(outer)
			if _, err := st.Read(ns, key); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("outer revert kept a discarded write, got %v", err)
			}
		})
	}
}

func TestStore_ReleaseKeepsWritesSinceSnapshot(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			key := common.HexToHash("0x01")

			snapshot := st.Snapshot()
			if err := st.Write(ns, key, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			if err := st.WriteVariable(ns, key, []byte("kept")); err != nil {
				t.Fatalf("variable write failed: %v", err)
			}
			st.ReleaseSnapshot(snapshot)

			if got, _ := st.Read(ns, key); got != common.HexToHash("0xaa") {
				t.Errorf("released write lost, got %v", got)
			}
			if got, err := st.ReadVariable(ns, key); err != nil || !bytes.Equal(got, []byte("kept")) {
				t.Errorf("released variable entry lost, got %x, %v", got, err)
			}
		})
	}
}

func TestStore_ReleasedInnerSnapshotStaysSubjectToOuterRevert(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			ns := NamespaceOf(ownerA, callerB)
			key := common.HexToHash("0x01")

			outer := st.Snapshot()
			if err := st.Write(ns, key, common.HexToHash("0xaa")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			inner := st.Snapshot()
			if err := st.Write(ns, key, common.HexToHash("0xbb")); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			st.ReleaseSnapshot(inner)

			if got, _ := st.Read(ns, key); got != common.HexToHash("0xbb") {
				t.Errorf("released write lost, got %v", got)
			}

			st.RevertToSnapshot(outer)
			if _, err := st.Read(ns, key); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("outer revert kept a write from a released inner snapshot, got %v", err)
			}
		})
	}
}

func TestStore_ReleaseOfUnknownSnapshotPanics(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			defer func() {
				if recover() == nil {
					t.Errorf("release of unknown snapshot did not panic")
				}
			}()
			st.ReleaseSnapshot(42)
		})
	}
}

func TestMemoryStore_RepeatedReleasesKeepRevisionChainFlat(t *testing.T) {
	st := NewMemoryStore().(*memoryStore)
	defer st.Close()
	ns := NamespaceOf(ownerA, callerB)
	key := common.HexToHash("0x01")

	for i := 0; i < 1000; i++ {
		snapshot := st.Snapshot()
		if err := st.Write(ns, key, common.BigToHash(common.Big32)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		st.ReleaseSnapshot(snapshot)
	}

	depth := 0
	for state := st.state; state != nil; state = state.parent {
		depth++
	}
	if depth != 1 {
		t.Errorf("revision chain depth after releases: got %d, want 1", depth)
	}
	if got, _ := st.Read(ns, key); got != common.BigToHash(common.Big32) {
		t.Errorf("released value lost, got %v", got)
	}
}

func TestLevelStore_RepeatedReleasesKeepJournalEmpty(t *testing.T) {
	st, err := NewLevelStore(t.TempDir())
	if err != nil {
		t.Fatalf("cannot open store: %v", err)
	}
	defer st.Close()
	ls := st.(*levelStore)
	ns := NamespaceOf(ownerA, callerB)
	key := common.HexToHash("0x01")

	for i := 0; i < 1000; i++ {
		snapshot := st.Snapshot()
		if err := st.Write(ns, key, common.BigToHash(common.Big32)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		st.ReleaseSnapshot(snapshot)
	}

	if len(ls.journal) != 0 {
		t.Errorf("undo journal after releases: got %d entries, want 0", len(ls.journal))
	}
	if len(ls.marks) != 0 {
		t.Errorf("open snapshot marks after releases: got %d, want 0", len(ls.marks))
	}
	if got, _ := st.Read(ns, key); got != common.BigToHash(common.Big32) {
		t.Errorf("released value lost, got %v", got)
	}
}

func TestStore_RevertToUnknownSnapshotPanics(t *testing.T) {
	for name, create := range storeFactories {
		t.Run(name, func(t *testing.T) {
			st := create(t)
			defer st.Close()
			defer func() {
				if recover() == nil {
					t.Errorf("revert to unknown snapshot did not panic")
				}
			}()
			st.RevertToSnapshot(42)
		})
	}
}

func TestLevelStore_DataPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir()
	ns := NamespaceOf(ownerA, callerB)
	key := common.HexToHash("0x11")

	st, err := NewLevelStore(path)
	if err != nil {
		t.Fatalf("cannot open store: %v", err)
	}
	if err := st.Write(ns, key, common.HexToHash("0xaa")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := st.WriteVariable(ns, key, []byte("durable")); err != nil {
		t.Fatalf("variable write failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	st, err = NewLevelStore(path)
	if err != nil {
		t.Fatalf("cannot reopen store: %v", err)
	}
	defer st.Close()
	if got, err := st.Read(ns, key); err != nil || got != common.HexToHash("0xaa") {
		t.Errorf("word not persisted, got %v, %v", got, err)
	}
	if got, err := st.ReadVariable(ns, key); err != nil || !bytes.Equal(got, []byte("durable")) {
		t.Errorf("variable entry not persisted, got %x, %v", got, err)
	}
}
