// Package wire implements the transport encoding of step sequences. The
// binary format is RLP and enforces the structural contracts of the
// engine: selectors are exactly 4 bytes, constraint references exactly
// one or two words, fetcher and constraint kinds members of their closed
// sets. Malformed input is rejected at decode time, before any part of
// it reaches the engine.
package wire

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/chainweave/composer/constraint"
	"github.com/chainweave/composer/engine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	ErrInvalidReference = errors.New("invalid constraint reference length")
	ErrInvalidKind      = errors.New("invalid kind tag")
)

type wireConstraint struct {
	Kind      uint8
	Reference []byte
}

type wireInput struct {
	Fetcher     uint8
	Target      common.Address // read-call target; unused for literals
	Payload     []byte         // literal bytes or read-call payload
	Constraints []wireConstraint
}

type wireOutput struct {
	Fetcher       uint8
	WordCount     uint64
	Destination   common.Address
	BaseSlot      common.Hash
	Source        common.Address // auxiliary read-call target; unused for exec results
	SourcePayload []byte
}

type wireStep struct {
	Target   *common.Address `rlp:"nil"`
	Value    *big.Int
	Selector [engine.SelectorLength]byte
	Inputs   []wireInput
	Outputs  []wireOutput
}

type wireSequence struct {
	Steps []wireStep
}

// EncodeSequence serializes a step sequence for transport. Sequences
// that violate the structural contracts are rejected rather than
// encoded; a malformed sequence must never reach the other side looking
// well-formed.
func EncodeSequence(steps engine.StepSequence) ([]byte, error) {
	seq := wireSequence{Steps: make([]wireStep, 0, len(steps))}
	for i := range steps {
		step, err := encodeStep(&steps[i])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		seq.Steps = append(seq.Steps, step)
	}
	return rlp.EncodeToBytes(&seq)
}

// DecodeSequence deserializes a step sequence, validating every
// structural contract of the format.
func DecodeSequence(data []byte) (engine.StepSequence, error) {
	var seq wireSequence
	if err := rlp.DecodeBytes(data, &seq); err != nil {
		return nil, fmt.Errorf("cannot decode sequence; %v", err)
	}
	steps := make(engine.StepSequence, 0, len(seq.Steps))
	for i := range seq.Steps {
		step, err := decodeStep(&seq.Steps[i])
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func encodeStep(step *engine.Step) (wireStep, error) {
	res := wireStep{
		Target:   step.Target,
		Value:    step.Value,
		Selector: step.Selector,
	}
	if res.Value == nil {
		res.Value = common.Big0
	}
	for i, in := range step.Inputs {
		wi := wireInput{Fetcher: uint8(in.Fetcher)}
		switch in.Fetcher {
		case engine.InputLiteral:
			wi.Payload = in.Literal
		case engine.InputReadCall:
			wi.Target = in.Call.Target
			wi.Payload = in.Call.Input
		default:
			return res, fmt.Errorf("input %d: %w: input fetcher %d", i, ErrInvalidKind, in.Fetcher)
		}
		for j, c := range in.Constraints {
			if err := checkReference(c.Kind, c.Reference); err != nil {
				return res, fmt.Errorf("input %d constraint %d: %w", i, j, err)
			}
			wi.Constraints = append(wi.Constraints, wireConstraint{Kind: uint8(c.Kind), Reference: c.Reference})
		}
		res.Inputs = append(res.Inputs, wi)
	}
	for i, out := range step.Outputs {
		if out.Fetcher != engine.OutputExecResult && out.Fetcher != engine.OutputReadCall {
			return res, fmt.Errorf("output %d: %w: output fetcher %d", i, ErrInvalidKind, out.Fetcher)
		}
		res.Outputs = append(res.Outputs, wireOutput{
			Fetcher:       uint8(out.Fetcher),
			WordCount:     out.WordCount,
			Destination:   out.Destination,
			BaseSlot:      out.BaseSlot,
			Source:        out.Call.Target,
			SourcePayload: out.Call.Input,
		})
	}
	return res, nil
}

func decodeStep(step *wireStep) (engine.Step, error) {
	res := engine.Step{
		Target:   step.Target,
		Value:    step.Value,
		Selector: step.Selector,
	}
	for i, in := range step.Inputs {
		param := engine.InputParam{Fetcher: engine.InputFetcher(in.Fetcher)}
		switch param.Fetcher {
		case engine.InputLiteral:
			param.Literal = in.Payload
		case engine.InputReadCall:
			param.Call = engine.ReadCall{Target: in.Target, Input: in.Payload}
		default:
			return res, fmt.Errorf("input %d: %w: input fetcher %d", i, ErrInvalidKind, in.Fetcher)
		}
		for j, c := range in.Constraints {
			kind := constraint.Kind(c.Kind)
			if err := checkReference(kind, c.Reference); err != nil {
				return res, fmt.Errorf("input %d constraint %d: %w", i, j, err)
			}
			param.Constraints = append(param.Constraints, constraint.Constraint{Kind: kind, Reference: c.Reference})
		}
		res.Inputs = append(res.Inputs, param)
	}
	for i, out := range step.Outputs {
		fetcher := engine.OutputFetcher(out.Fetcher)
		if fetcher != engine.OutputExecResult && fetcher != engine.OutputReadCall {
			return res, fmt.Errorf("output %d: %w: output fetcher %d", i, ErrInvalidKind, out.Fetcher)
		}
		res.Outputs = append(res.Outputs, engine.OutputParam{
			Fetcher:     fetcher,
			WordCount:   out.WordCount,
			Destination: out.Destination,
			BaseSlot:    out.BaseSlot,
			Call:        engine.ReadCall{Target: out.Source, Input: out.SourcePayload},
		})
	}
	return res, nil
}

// checkReference validates the reference length of a constraint against
// its kind: one word for EQ/GTE/LTE, two concatenated bounds for IN.
func checkReference(kind constraint.Kind, reference []byte) error {
	switch kind {
	case constraint.EQ, constraint.GTE, constraint.LTE:
		if len(reference) != constraint.WordReferenceLength {
			return fmt.Errorf("%w: %v wants %d bytes, got %d", ErrInvalidReference, kind, constraint.WordReferenceLength, len(reference))
		}
	case constraint.IN:
		if len(reference) != constraint.RangeReferenceLength {
			return fmt.Errorf("%w: IN wants %d bytes, got %d", ErrInvalidReference, constraint.RangeReferenceLength, len(reference))
		}
	default:
		return fmt.Errorf("%w: constraint kind %d", ErrInvalidKind, kind)
	}
	return nil
}
