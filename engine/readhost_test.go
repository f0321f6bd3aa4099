package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chainweave/composer/store"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/mock/gomock"
)

func TestStoreReadHost_ServesScalarReadsFromTheStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockHost(ctrl)
	st := store.NewMemoryStore()
	host := NewStoreReadHost(inner, storeAddr, st)

	ns := store.NamespaceOf(callerAddr, engineAddr)
	slot := common.HexToHash("0x01")
	word := common.HexToHash("0xfeed")
	if err := st.Write(ns, slot, word); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := host.StaticCall(storeAddr, EncodeReadStorage(ns, slot))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, word.Bytes()) {
		t.Errorf("got %x, want %x", got, word.Bytes())
	}
}

func TestStoreReadHost_ServesDynamicReadsFromTheStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockHost(ctrl)
	st := store.NewMemoryStore()
	host := NewStoreReadHost(inner, storeAddr, st)

	ns := store.NamespaceOf(callerAddr, engineAddr)
	slot := common.HexToHash("0x01")
	data := []byte("a variable length payload spanning more than one word")
	if err := st.WriteVariable(ns, slot, data); err != nil {
		t.Fatalf("variable write failed: %v", err)
	}

	got, err := host.StaticCall(storeAddr, EncodeReadDynamicStorage(ns, slot))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %x, want %x", got, data)
	}
}

func TestStoreReadHost_UninitializedSlotFailsInsteadOfDefaulting(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockHost(ctrl)
	st := store.NewMemoryStore()
	host := NewStoreReadHost(inner, storeAddr, st)

	ns := store.NamespaceOf(callerAddr, engineAddr)
	if _, err := host.StaticCall(storeAddr, EncodeReadStorage(ns, common.HexToHash("0x01"))); !errors.Is(err, store.ErrNotInitialized) {
		t.Errorf("expected a not-initialized failure, got %v", err)
	}
}

func TestStoreReadHost_OtherTargetsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockHost(ctrl)
	st := store.NewMemoryStore()
	host := NewStoreReadHost(inner, storeAddr, st)

	other := common.HexToAddress("0x1234")
	inner.EXPECT().StaticCall(other, []byte{0x01}).Return([]byte{0x02}, nil)

	got, err := host.StaticCall(other, []byte{0x01})
	if err != nil || !bytes.Equal(got, []byte{0x02}) {
		t.Errorf("pass-through failed: got %x, %v", got, err)
	}
}

func TestStoreReadHost_MalformedPayloadsAreRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := NewMockHost(ctrl)
	st := store.NewMemoryStore()
	host := NewStoreReadHost(inner, storeAddr, st)

	if _, err := host.StaticCall(storeAddr, []byte{0x01, 0x02}); err == nil {
		t.Errorf("short payload not rejected")
	}

	ns := store.NamespaceOf(callerAddr, engineAddr)
	payload := encodeReadCall(ComputeSelector("no such function()"), ns, common.Hash{})
	if _, err := host.StaticCall(storeAddr, payload); err == nil {
		t.Errorf("unknown selector not rejected")
	}
}
