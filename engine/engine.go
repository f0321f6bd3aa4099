package engine

import (
	"fmt"
	"math/big"

	"github.com/chainweave/composer/logger"
	"github.com/chainweave/composer/store"
	"github.com/ethereum/go-ethereum/common"
)

// Config carries the identities the engine acts under.
type Config struct {
	// Self is the identity of the engine itself. Storage written on
	// behalf of a sequence is namespaced by (caller, Self), so different
	// engine deployments sharing a store never collide.
	Self common.Address

	// StoreAddress is the identity outputs name as their destination
	// store and under which the store's read interface is callable.
	StoreAddress common.Address

	// LogLevel selects the engine's log verbosity.
	LogLevel string
}

// Engine executes step sequences. It is synchronous and single-threaded:
// steps run strictly in order because a step may consume storage written
// by its predecessors. An Engine holds no state between runs; it may be
// reused for any number of sequences.
type Engine struct {
	host     Host
	store    store.Store
	resolver resolver
	router   router
	log      logger.Logger
}

// New creates an engine executing calls through the given host and
// persisting routed outputs in the given store.
func New(cfg Config, host Host, st store.Store) *Engine {
	return &Engine{
		host:     host,
		store:    st,
		resolver: resolver{host: host},
		router:   router{host: host, store: st, self: cfg.Self, storeAddr: cfg.StoreAddress},
		log:      logger.NewLogger(cfg.LogLevel, "engine"),
	}
}

// Run executes the given sequence on behalf of caller. The attached
// value covers the values carried by the individual steps; any remainder
// is refunded to the caller, never retained.
//
// The sequence is atomic: any resolver error, call failure, routing
// error or value-accounting violation aborts the whole run, reverts
// every storage write of earlier steps and surfaces a single terminal
// error naming the failed step and sub-operation. There is no
// continue-on-error mode and no internal retry.
func (e *Engine) Run(steps StepSequence, attachedValue *big.Int, caller common.Address) error {
	if attachedValue == nil {
		attachedValue = common.Big0
	}
	snapshot := e.store.Snapshot()
	if err := e.run(steps, attachedValue, caller); err != nil {
		e.store.RevertToSnapshot(snapshot)
		e.log.Errorf("sequence of %d steps aborted: %v", len(steps), err)
		return err
	}
	e.store.ReleaseSnapshot(snapshot)
	return nil
}

func (e *Engine) run(steps StepSequence, attachedValue *big.Int, caller common.Address) error {
	committed := new(big.Int)
	for i := range steps {
		step := &steps[i]

		if step.Target != nil {
			// Checked incrementally so that a sequence whose value cannot
			// possibly be covered fails before issuing the call.
			committed.Add(committed, step.value())
			if committed.Cmp(attachedValue) > 0 {
				return fmt.Errorf("step %d: %w: need %v, attached %v",
					i, ErrInsufficientAttachedValue, committed, attachedValue)
			}
		}

		input, err := e.assembleInput(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		// A step without a target performs no call; its inputs were
		// resolved purely for their constraint checks and its outputs
		// run against an empty result.
		var result []byte
		if step.Target != nil {
			e.log.Debugf("step %d: calling %v with %d bytes, value %v", i, step.Target, len(input), step.value())
			result, err = e.host.Call(*step.Target, step.value(), input)
			if err != nil {
				return fmt.Errorf("step %d: %w: %v", i, ErrCallFailed, err)
			}
		} else {
			e.log.Debugf("step %d: guard only, no target", i)
		}

		for j := range step.Outputs {
			if err := e.router.route(step.Outputs[j], result, caller); err != nil {
				return fmt.Errorf("step %d: output %d: %w", i, j, err)
			}
		}
	}

	if remainder := new(big.Int).Sub(attachedValue, committed); remainder.Sign() > 0 {
		if err := e.host.Refund(caller, remainder); err != nil {
			return fmt.Errorf("refund of %v: %w", remainder, err)
		}
	}
	return nil
}

// assembleInput resolves every input parameter in order and concatenates
// the selector and the resolved values into the call buffer.
func (e *Engine) assembleInput(step *Step) ([]byte, error) {
	buffer := make([]byte, 0, SelectorLength+common.HashLength*len(step.Inputs))
	buffer = append(buffer, step.Selector[:]...)
	for j := range step.Inputs {
		resolved, err := e.resolver.resolve(step.Inputs[j])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", j, err)
		}
		buffer = append(buffer, resolved...)
	}
	return buffer, nil
}
