// Package arena implements the bump-allocating string store that pins
// token bytes for the lifetime of the counter that owns them. Tokens are
// stored once and never moved or compacted, which is what lets snapshots
// and cursors hand back borrowed pointers safely.
package arena

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/arrowcount/wfreq/internal/alloc"
)

// logAlloc enables verbose new-block logging, controlled by the
// WFREQ_LOG_ALLOC environment variable, read once at process start.
var logAlloc = os.Getenv("WFREQ_LOG_ALLOC") != ""

// block is one contiguous, zero-initialized byte region bump-allocated
// from the arena's allocator. cursor marks the next free byte.
type block struct {
	buf    []byte
	cursor int
}

func (b *block) remaining() int { return len(b.buf) - b.cursor }

// Arena is a linked chain of blocks. In static mode the chain never grows
// past its first block — exhaustion there returns a nil pointer rather
// than requesting a second block, matching the allocator's own
// single-region contract.
type Arena struct {
	a               *alloc.Allocator
	firstBlockSize  int
	blocks          []*block // append-only; most recent is blocks[len-1]
	static          bool
}

// New creates an arena drawing blocks of firstBlockSize bytes (at least)
// from a. firstBlockSize is clamped to at least 1 by the caller (the
// counter derives it from its own budget-tuning arithmetic).
func New(a *alloc.Allocator, firstBlockSize int) *Arena {
	return &Arena{a: a, firstBlockSize: firstBlockSize, static: a.IsStatic()}
}

// Copy stores a zero-initialized, NUL-terminated copy of b: length+1
// bytes with b copied in and the trailing byte left zero. Returns a
// pointer into the arena's backing storage, stable until the arena's
// allocator is discarded, and ok=false if no block has room and a new
// one could not be obtained.
func (ar *Arena) Copy(b []byte) (unsafe.Pointer, bool) {
	need := len(b) + 1

	if blk := ar.currentBlock(); blk != nil && blk.remaining() >= need {
		return ar.copyInto(blk, b), true
	}

	if ar.static && len(ar.blocks) > 0 {
		// Static mode never requests a second block.
		return nil, false
	}

	size := ar.firstBlockSize
	if len(ar.blocks) > 0 {
		if grown := need + alignSlack; grown > size {
			size = grown
		}
	} else if need > size {
		size = need + alignSlack
	}

	raw, err := ar.a.Allocate(size)
	if err != nil {
		return nil, false
	}
	blk := &block{buf: raw}
	ar.blocks = append(ar.blocks, blk)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "arena: new block #%d (%d bytes)\n", len(ar.blocks), size)
	}

	if blk.remaining() < need {
		return nil, false
	}
	return ar.copyInto(blk, b), true
}

// alignSlack is extra room requested alongside the token that triggers a
// new block (every block after the first is at least max(firstBlockSize,
// need+alignSlack)), so the new block isn't immediately exhausted by the
// very allocation that triggered it.
const alignSlack = 64

func (ar *Arena) currentBlock() *block {
	if len(ar.blocks) == 0 {
		return nil
	}
	return ar.blocks[len(ar.blocks)-1]
}

func (ar *Arena) copyInto(blk *block, b []byte) unsafe.Pointer {
	start := blk.cursor
	copy(blk.buf[start:], b)
	blk.buf[start+len(b)] = 0
	blk.cursor = start + len(b) + 1
	return unsafe.Pointer(&blk.buf[start])
}

// BlockCount reports the number of blocks currently chained, for tests
// and diagnostics.
func (ar *Arena) BlockCount() int { return len(ar.blocks) }
