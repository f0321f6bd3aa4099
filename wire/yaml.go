package wire

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/chainweave/composer/constraint"
	"github.com/chainweave/composer/engine"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"
)

// SequenceFile is the YAML schema of a step-sequence definition used by
// the command line tooling. Addresses and payloads are hex strings;
// words accept hex (0x-prefixed) or decimal notation; selectors accept
// either 4 hex-encoded bytes or a plain function signature.
type SequenceFile struct {
	Steps []StepDef `yaml:"steps"`
}

type StepDef struct {
	Target   string      `yaml:"target,omitempty"` // empty: guard-only step
	Value    string      `yaml:"value,omitempty"`
	Selector string      `yaml:"selector"`
	Inputs   []InputDef  `yaml:"inputs,omitempty"`
	Outputs  []OutputDef `yaml:"outputs,omitempty"`
}

type InputDef struct {
	Literal     string          `yaml:"literal,omitempty"`
	Call        *CallDef        `yaml:"call,omitempty"`
	Constraints []ConstraintDef `yaml:"constraints,omitempty"`
}

type CallDef struct {
	Target  string `yaml:"target"`
	Payload string `yaml:"payload,omitempty"`
}

type ConstraintDef struct {
	Kind  string `yaml:"kind"`            // eq, gte, lte, in
	Value string `yaml:"value,omitempty"` // eq/gte/lte
	Lower string `yaml:"lower,omitempty"` // in
	Upper string `yaml:"upper,omitempty"` // in
}

type OutputDef struct {
	Words       uint64   `yaml:"words"`
	Destination string   `yaml:"destination"`
	Slot        string   `yaml:"slot"`
	Call        *CallDef `yaml:"call,omitempty"` // read the words from here instead of the step's result
}

// LoadSequence reads a YAML sequence definition from the given path and
// converts it into an executable step sequence.
func LoadSequence(path string) (engine.StepSequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read sequence file; %v", err)
	}
	var file SequenceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse sequence file; %v", err)
	}
	return file.ToSteps()
}

// ToSteps converts the parsed definition into an executable sequence.
func (f *SequenceFile) ToSteps() (engine.StepSequence, error) {
	steps := make(engine.StepSequence, 0, len(f.Steps))
	for i := range f.Steps {
		step, err := f.Steps[i].toStep()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (d *StepDef) toStep() (engine.Step, error) {
	var step engine.Step

	if d.Target != "" {
		target, err := parseAddress(d.Target)
		if err != nil {
			return step, fmt.Errorf("target: %w", err)
		}
		step.Target = &target
	}

	if d.Value != "" {
		value, ok := new(big.Int).SetString(d.Value, 10)
		if !ok || value.Sign() < 0 {
			return step, fmt.Errorf("invalid value %q", d.Value)
		}
		step.Value = value
	}

	selector, err := parseSelector(d.Selector)
	if err != nil {
		return step, err
	}
	step.Selector = selector

	for i := range d.Inputs {
		input, err := d.Inputs[i].toParam()
		if err != nil {
			return step, fmt.Errorf("input %d: %w", i, err)
		}
		step.Inputs = append(step.Inputs, input)
	}
	for i := range d.Outputs {
		output, err := d.Outputs[i].toParam()
		if err != nil {
			return step, fmt.Errorf("output %d: %w", i, err)
		}
		step.Outputs = append(step.Outputs, output)
	}
	return step, nil
}

func (d *InputDef) toParam() (engine.InputParam, error) {
	var param engine.InputParam
	switch {
	case d.Literal != "" && d.Call == nil:
		literal, err := hexutil.Decode(d.Literal)
		if err != nil {
			return param, fmt.Errorf("literal: %v", err)
		}
		param.Fetcher = engine.InputLiteral
		param.Literal = literal
	case d.Call != nil && d.Literal == "":
		call, err := d.Call.toCall()
		if err != nil {
			return param, err
		}
		param.Fetcher = engine.InputReadCall
		param.Call = call
	default:
		return param, fmt.Errorf("exactly one of literal or call must be set")
	}

	for i := range d.Constraints {
		c, err := d.Constraints[i].toConstraint()
		if err != nil {
			return param, fmt.Errorf("constraint %d: %w", i, err)
		}
		param.Constraints = append(param.Constraints, c)
	}
	return param, nil
}

func (d *OutputDef) toParam() (engine.OutputParam, error) {
	var param engine.OutputParam
	destination, err := parseAddress(d.Destination)
	if err != nil {
		return param, fmt.Errorf("destination: %w", err)
	}
	slot, err := parseWord(d.Slot)
	if err != nil {
		return param, fmt.Errorf("slot: %w", err)
	}
	param.WordCount = d.Words
	param.Destination = destination
	param.BaseSlot = slot
	if d.Call != nil {
		call, err := d.Call.toCall()
		if err != nil {
			return param, err
		}
		param.Fetcher = engine.OutputReadCall
		param.Call = call
	} else {
		param.Fetcher = engine.OutputExecResult
	}
	return param, nil
}

func (d *CallDef) toCall() (engine.ReadCall, error) {
	target, err := parseAddress(d.Target)
	if err != nil {
		return engine.ReadCall{}, fmt.Errorf("call target: %w", err)
	}
	var payload []byte
	if d.Payload != "" {
		if payload, err = hexutil.Decode(d.Payload); err != nil {
			return engine.ReadCall{}, fmt.Errorf("call payload: %v", err)
		}
	}
	return engine.ReadCall{Target: target, Input: payload}, nil
}

func (d *ConstraintDef) toConstraint() (constraint.Constraint, error) {
	switch strings.ToLower(d.Kind) {
	case "eq", "gte", "lte":
		value, err := parseWord(d.Value)
		if err != nil {
			return constraint.Constraint{}, err
		}
		switch strings.ToLower(d.Kind) {
		case "eq":
			return constraint.Equal(value), nil
		case "gte":
			return constraint.AtLeast(value), nil
		default:
			return constraint.AtMost(value), nil
		}
	case "in":
		lower, err := parseWord(d.Lower)
		if err != nil {
			return constraint.Constraint{}, fmt.Errorf("lower: %w", err)
		}
		upper, err := parseWord(d.Upper)
		if err != nil {
			return constraint.Constraint{}, fmt.Errorf("upper: %w", err)
		}
		return constraint.Between(lower, upper), nil
	}
	return constraint.Constraint{}, fmt.Errorf("unknown constraint kind %q", d.Kind)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// parseWord accepts a 32-byte word in 0x-prefixed hex or in decimal.
func parseWord(s string) (common.Hash, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return common.HexToHash(s), nil
	}
	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 || value.BitLen() > 256 {
		return common.Hash{}, fmt.Errorf("invalid word %q", s)
	}
	return common.BigToHash(value), nil
}

// parseSelector accepts either 4 hex-encoded bytes or a function
// signature such as "transfer(address,uint256)".
func parseSelector(s string) (engine.Selector, error) {
	var selector engine.Selector
	if strings.HasPrefix(s, "0x") {
		raw, err := hexutil.Decode(s)
		if err != nil || len(raw) != engine.SelectorLength {
			return selector, fmt.Errorf("invalid selector %q", s)
		}
		copy(selector[:], raw)
		return selector, nil
	}
	if !strings.Contains(s, "(") {
		return selector, fmt.Errorf("invalid selector %q", s)
	}
	return engine.ComputeSelector(s), nil
}
