package alloc

import "errors"

var (
	// ErrOutOfMemory covers allocator-returned-null, size-arithmetic
	// overflow, and byte/region budget exhaustion alike — the allocator
	// does not distinguish the cause beyond what callers can already see
	// from the arguments they passed in.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidArg covers a zero-length allocation request or a
	// misaligned static-region base pointer at construction.
	ErrInvalidArg = errors.New("alloc: invalid argument")
)
