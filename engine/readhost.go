package engine

import (
	"fmt"

	"github.com/chainweave/composer/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Selectors of the store's external read interface. Read-only calls
// addressed to the store identity are answered from the store itself,
// which lets a later step consume a slot written by an earlier one
// through an ordinary read-call fetcher.
var (
	ReadStorageSelector        = ComputeSelector("readStorage(bytes32,bytes32)")
	ReadDynamicStorageSelector = ComputeSelector("readDynamicStorage(bytes32,bytes32)")
)

// ComputeSelector derives the 4-byte selector of the given function
// signature.
func ComputeSelector(signature string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(signature))[:SelectorLength])
	return s
}

// EncodeReadStorage builds the call payload querying a scalar slot
// through the store's read interface.
func EncodeReadStorage(ns store.Namespace, slot common.Hash) []byte {
	return encodeReadCall(ReadStorageSelector, ns, slot)
}

// EncodeReadDynamicStorage builds the call payload querying a
// variable-length entry through the store's read interface.
func EncodeReadDynamicStorage(ns store.Namespace, slot common.Hash) []byte {
	return encodeReadCall(ReadDynamicStorageSelector, ns, slot)
}

func encodeReadCall(selector Selector, ns store.Namespace, slot common.Hash) []byte {
	payload := make([]byte, 0, SelectorLength+2*common.HashLength)
	payload = append(payload, selector[:]...)
	payload = append(payload, ns[:]...)
	payload = append(payload, slot[:]...)
	return payload
}

// NewStoreReadHost wraps a host so that read-only calls addressed to the
// store identity are served by the store's external read interface. All
// other calls pass through unchanged. Reads of uninitialized slots fail
// like any other failed read call; they never default to zero.
func NewStoreReadHost(inner Host, storeAddr common.Address, st store.Store) Host {
	return &storeReadHost{Host: inner, store: st, storeAddr: storeAddr}
}

type storeReadHost struct {
	Host
	store     store.Store
	storeAddr common.Address
}

func (h *storeReadHost) StaticCall(target common.Address, input []byte) ([]byte, error) {
	if target != h.storeAddr {
		return h.Host.StaticCall(target, input)
	}
	if len(input) != SelectorLength+2*common.HashLength {
		return nil, fmt.Errorf("malformed store read payload of %d bytes", len(input))
	}
	var selector Selector
	copy(selector[:], input[:SelectorLength])
	ns := store.Namespace(common.BytesToHash(input[SelectorLength : SelectorLength+common.HashLength]))
	slot := common.BytesToHash(input[SelectorLength+common.HashLength:])

	switch selector {
	case ReadStorageSelector:
		word, err := h.store.Read(ns, slot)
		if err != nil {
			return nil, err
		}
		return word.Bytes(), nil
	case ReadDynamicStorageSelector:
		return h.store.ReadVariable(ns, slot)
	}
	return nil, fmt.Errorf("unknown store read selector %x", selector)
}
