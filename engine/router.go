package engine

import (
	"fmt"

	"github.com/chainweave/composer/store"
	"github.com/ethereum/go-ethereum/common"
)

// router decodes words from call results and persists them into the
// namespaced store.
type router struct {
	host      Host
	store     store.Store
	self      common.Address // identity the engine acts under when namespacing
	storeAddr common.Address // identity outputs may name as their destination
}

// route decodes param.WordCount words from the parameter's source and
// writes them into the store under the namespace of (owner, self). The
// full word list is decoded before anything is committed, so a decoding
// failure leaves the store untouched by this call.
func (r *router) route(param OutputParam, execResult []byte, owner common.Address) error {
	// The destination is validated before the fetcher is consulted so
	// that a misrouted output never triggers an auxiliary call.
	if param.Destination != r.storeAddr {
		return fmt.Errorf("%w: %v", ErrUnknownDestination, param.Destination)
	}

	var source []byte
	switch param.Fetcher {
	case OutputExecResult:
		source = execResult
	case OutputReadCall:
		result, err := r.host.StaticCall(param.Call.Target, param.Call.Input)
		if err != nil {
			return fmt.Errorf("%w: target %v: %v", ErrAuxiliaryCallFailed, param.Call.Target, err)
		}
		source = result
	default:
		return fmt.Errorf("%w: output fetcher %d", ErrUnknownFetcher, param.Fetcher)
	}

	words, err := newCursor(source).words(param.WordCount)
	if err != nil {
		return err
	}

	ns := store.NamespaceOf(owner, r.self)
	if param.WordCount == 1 {
		return r.store.Write(ns, param.BaseSlot, words[0])
	}
	for i, word := range words {
		if err := r.store.Write(ns, store.SlotOf(param.BaseSlot, uint64(i)), word); err != nil {
			return err
		}
	}
	return nil
}
