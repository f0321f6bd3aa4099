// Package engine implements the composable call engine: an interpreter
// over ordered sequences of external calls whose arguments are resolved
// just before each call, validated against declarative constraints, and
// whose results can be routed into a namespaced persistent store for
// consumption by later calls.
package engine

import (
	"math/big"

	"github.com/chainweave/composer/constraint"
	"github.com/ethereum/go-ethereum/common"
)

// SelectorLength is the size of a function selector in bytes.
const SelectorLength = 4

// Selector identifies the function invoked by a step. The engine does not
// know function signatures beyond the selector; argument shapes are the
// composer's responsibility.
type Selector [SelectorLength]byte

// InputFetcher is an enum of the strategies for obtaining one call
// argument. The set is closed; unknown values are rejected.
type InputFetcher byte

const (
	// InputLiteral uses already ABI-encoded bytes supplied with the step.
	InputLiteral InputFetcher = iota
	// InputReadCall derives the argument from the result of a read-only call.
	InputReadCall
)

// OutputFetcher is an enum of the sources a routed output is decoded
// from. The set is closed; unknown values are rejected.
type OutputFetcher byte

const (
	// OutputExecResult decodes words from the result of the step's own call.
	OutputExecResult OutputFetcher = iota
	// OutputReadCall decodes words from the result of an auxiliary read-only call.
	OutputReadCall
)

// ReadCall names the target and payload of a read-only call used to
// derive an input or output value.
type ReadCall struct {
	Target common.Address
	Input  []byte
}

// InputParam describes how one argument of a step's call is obtained and
// which constraints the obtained value must satisfy. Constraints are
// evaluated against the value's leading 32-byte word.
type InputParam struct {
	Fetcher     InputFetcher
	Literal     []byte // InputLiteral only; raw ABI-encoded argument bytes
	Call        ReadCall
	Constraints []constraint.Constraint
}

// OutputParam describes how WordCount 32-byte words are obtained and
// where they are persisted. A single word lands at BaseSlot directly;
// multiple words fan out to deterministically derived slots. Destination
// identifies the store the words are routed to and must name a store the
// engine is configured with.
type OutputParam struct {
	Fetcher     OutputFetcher
	WordCount   uint64
	Destination common.Address
	BaseSlot    common.Hash
	Call        ReadCall // OutputReadCall only
}

// Step is one external-call instruction. A nil Target means no call is
// performed; such steps exercise input constraints as a pure guard and
// run their outputs against an empty result. Steps are built by the
// composer immediately before execution and are never persisted.
type Step struct {
	Target   *common.Address
	Value    *big.Int
	Selector Selector
	Inputs   []InputParam
	Outputs  []OutputParam
}

// StepSequence is an ordered list of steps executed as one atomic unit.
type StepSequence []Step

// value returns the step's attached value, treating nil as zero.
func (s *Step) value() *big.Int {
	if s.Value == nil {
		return common.Big0
	}
	return s.Value
}
