package engine

//go:generate mockgen -source host.go -destination host_mocks.go -package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Host is the interface through which the engine reaches the outside
// world. The host supplies the transactional boundary the engine runs
// in: if Run fails, the host is expected to discard every external side
// effect of the aborted sequence, mirroring the engine's own store
// revert.
//
// Timeouts and execution budgets are host concerns; the engine observes
// an exhausted budget as an ordinary call failure.
type Host interface {
	// Call performs a state-changing call carrying the given value and
	// returns the raw result bytes. A non-success outcome is reported as
	// an error.
	Call(target common.Address, value *big.Int, input []byte) ([]byte, error)

	// StaticCall performs a read-only call. It must not mutate any state
	// observable by the engine.
	StaticCall(target common.Address, input []byte) ([]byte, error)

	// Refund returns unspent attached value to the given account at the
	// end of a successful run. The engine never retains value.
	Refund(to common.Address, amount *big.Int) error
}
