package engine

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// cursor is a bounds-checked reader of consecutive 32-byte words from a
// raw call result. Reading past the end yields an explicit decode error
// instead of silent truncation or padding.
type cursor struct {
	data   []byte
	offset int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// word consumes and returns the next 32-byte word.
func (c *cursor) word() (common.Hash, error) {
	if c.offset+common.HashLength > len(c.data) {
		return common.Hash{}, fmt.Errorf("%w: want %d bytes at offset %d, have %d",
			ErrShortResult, common.HashLength, c.offset, len(c.data)-c.offset)
	}
	word := common.BytesToHash(c.data[c.offset : c.offset+common.HashLength])
	c.offset += common.HashLength
	return word, nil
}

// words consumes and returns the next count words, failing without
// partial results if the remaining data is too short. The count arrives
// from untrusted serialized data and is checked against the available
// bytes before anything is allocated.
func (c *cursor) words(count uint64) ([]common.Hash, error) {
	if available := uint64(len(c.data)-c.offset) / common.HashLength; count > available {
		return nil, fmt.Errorf("%w: want %d words, have %d", ErrShortResult, count, available)
	}
	res := make([]common.Hash, 0, count)
	for i := uint64(0); i < count; i++ {
		word, err := c.word()
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		res = append(res, word)
	}
	return res, nil
}
