// Package constraint implements declarative predicates over 32-byte storage
// words. Constraints are attached to call parameters and evaluated just
// before the parameter is used, guarding a call sequence against unexpected
// on-chain values.
package constraint

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind is an enum of the supported predicate kinds. The set is closed;
// values outside of it must be rejected, never defaulted.
type Kind byte

const (
	EQ  Kind = iota // word == reference
	GTE             // word >= reference, unsigned big-endian
	LTE             // word <= reference, unsigned big-endian
	IN              // lower <= word <= upper, inclusive, unsigned big-endian
)

// Reference sizes in bytes; EQ/GTE/LTE carry one word, IN carries two
// concatenated bounds (lower || upper).
const (
	WordReferenceLength  = common.HashLength
	RangeReferenceLength = 2 * common.HashLength
)

var (
	ErrViolated           = errors.New("constraint violated")
	ErrInvalidKind        = errors.New("invalid constraint kind")
	ErrMalformedReference = errors.New("malformed constraint reference")
)

// Constraint is one predicate over a 32-byte word. Reference holds one
// word for EQ/GTE/LTE and two words (lower, upper) for IN.
type Constraint struct {
	Kind      Kind
	Reference []byte
}

// Equal constrains a word to be exactly the given value.
func Equal(word common.Hash) Constraint {
	return Constraint{Kind: EQ, Reference: word.Bytes()}
}

// AtLeast constrains a word to be >= the given value.
func AtLeast(word common.Hash) Constraint {
	return Constraint{Kind: GTE, Reference: word.Bytes()}
}

// AtMost constrains a word to be <= the given value.
func AtMost(word common.Hash) Constraint {
	return Constraint{Kind: LTE, Reference: word.Bytes()}
}

// Between constrains a word to the inclusive range [lower, upper].
func Between(lower, upper common.Hash) Constraint {
	return Constraint{Kind: IN, Reference: append(lower.Bytes(), upper.Bytes()...)}
}

func (k Kind) String() string {
	switch k {
	case EQ:
		return "EQ"
	case GTE:
		return "GTE"
	case LTE:
		return "LTE"
	case IN:
		return "IN"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Check evaluates the given constraint against a 32-byte word. Both sides
// of an ordering comparison are treated as unsigned big-endian integers,
// which for fixed-width words is a plain lexicographic byte comparison.
// The kind may originate from untrusted serialized data, so an unknown
// kind is reported as an error rather than trusted to be unreachable.
func Check(word common.Hash, c Constraint) error {
	switch c.Kind {
	case EQ:
		if len(c.Reference) != WordReferenceLength {
			return fmt.Errorf("%w: EQ wants %d bytes, got %d", ErrMalformedReference, WordReferenceLength, len(c.Reference))
		}
		if !bytes.Equal(word[:], c.Reference) {
			return fmt.Errorf("%w: %x != %x", ErrViolated, word, c.Reference)
		}
	case GTE:
		if len(c.Reference) != WordReferenceLength {
			return fmt.Errorf("%w: GTE wants %d bytes, got %d", ErrMalformedReference, WordReferenceLength, len(c.Reference))
		}
		if bytes.Compare(word[:], c.Reference) < 0 {
			return fmt.Errorf("%w: %x < %x", ErrViolated, word, c.Reference)
		}
	case LTE:
		if len(c.Reference) != WordReferenceLength {
			return fmt.Errorf("%w: LTE wants %d bytes, got %d", ErrMalformedReference, WordReferenceLength, len(c.Reference))
		}
		if bytes.Compare(word[:], c.Reference) > 0 {
			return fmt.Errorf("%w: %x > %x", ErrViolated, word, c.Reference)
		}
	case IN:
		if len(c.Reference) != RangeReferenceLength {
			return fmt.Errorf("%w: IN wants %d bytes, got %d", ErrMalformedReference, RangeReferenceLength, len(c.Reference))
		}
		lower, upper := c.Reference[:WordReferenceLength], c.Reference[WordReferenceLength:]
		if bytes.Compare(word[:], lower) < 0 || bytes.Compare(word[:], upper) > 0 {
			return fmt.Errorf("%w: %x outside [%x, %x]", ErrViolated, word, lower, upper)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidKind, byte(c.Kind))
	}
	return nil
}

// CheckAll evaluates the constraints in order and reports the first
// failure. A parameter with no constraints always passes.
func CheckAll(word common.Hash, constraints []Constraint) error {
	for i, c := range constraints {
		if err := Check(word, c); err != nil {
			return fmt.Errorf("constraint %d (%v): %w", i, c.Kind, err)
		}
	}
	return nil
}
