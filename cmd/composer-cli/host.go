package main

import (
	"math/big"

	"github.com/chainweave/composer/engine"
	"github.com/chainweave/composer/logger"
	"github.com/ethereum/go-ethereum/common"
)

// loopbackHost is the dry-run call harness of the CLI. Every call
// succeeds and returns its own calldata without the selector, which
// makes sequences self-contained: an output routed from a call result
// stores exactly the words that were assembled as arguments. Refunds
// are only logged; there is no value ledger in a dry-run.
type loopbackHost struct {
	log logger.Logger
}

func (h *loopbackHost) Call(target common.Address, value *big.Int, input []byte) ([]byte, error) {
	h.log.Debugf("call to %v, value %v, %d bytes", target, value, len(input))
	return echo(input), nil
}

func (h *loopbackHost) StaticCall(target common.Address, input []byte) ([]byte, error) {
	h.log.Debugf("static call to %v, %d bytes", target, len(input))
	return echo(input), nil
}

func (h *loopbackHost) Refund(to common.Address, amount *big.Int) error {
	h.log.Noticef("refunding %v to %v", amount, to)
	return nil
}

func echo(input []byte) []byte {
	if len(input) <= engine.SelectorLength {
		return nil
	}
	return input[engine.SelectorLength:]
}
