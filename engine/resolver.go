package engine

import (
	"fmt"

	"github.com/chainweave/composer/constraint"
	"github.com/ethereum/go-ethereum/common"
)

// resolver builds one ABI-shaped argument from an input parameter. It is
// stateless; sibling parameters of a step carry no ordering requirement
// beyond their final concatenation order.
type resolver struct {
	host Host
}

// resolve obtains the parameter's value, checks its constraints and
// returns the value verbatim. The engine never truncates or pads; sizing
// the value to the target argument's ABI width is the composer's
// responsibility.
func (r *resolver) resolve(param InputParam) ([]byte, error) {
	switch param.Fetcher {
	case InputLiteral:
		if err := checkLeadingWord(param.Literal, param.Constraints); err != nil {
			return nil, err
		}
		return param.Literal, nil

	case InputReadCall:
		result, err := r.host.StaticCall(param.Call.Target, param.Call.Input)
		if err != nil {
			return nil, fmt.Errorf("%w: target %v: %v", ErrReadCallFailed, param.Call.Target, err)
		}
		if err := checkLeadingWord(result, param.Constraints); err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: input fetcher %d", ErrUnknownFetcher, param.Fetcher)
}

// checkLeadingWord evaluates the constraints against the leading 32-byte
// word of the value. A parameter without constraints passes regardless of
// its size.
func checkLeadingWord(value []byte, constraints []constraint.Constraint) error {
	if len(constraints) == 0 {
		return nil
	}
	if len(value) < common.HashLength {
		return fmt.Errorf("%w: %d bytes", ErrShortParameter, len(value))
	}
	return constraint.CheckAll(common.BytesToHash(value[:common.HashLength]), constraints)
}
