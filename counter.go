package wfreq

import (
	"math/bits"

	"github.com/arrowcount/wfreq/internal/alloc"
	"github.com/arrowcount/wfreq/internal/arena"
	"github.com/arrowcount/wfreq/internal/hashindex"
)

// Counter is an embeddable, bounded-memory word-frequency table. It owns
// exactly one allocator, one string arena, and one hash index, and is not
// safe for concurrent use.
type Counter struct {
	alloc *alloc.Allocator
	arena *arena.Arena
	idx   *hashindex.Index

	maxTokenLen int
	seed        uint32

	heapScanBuf []byte
	useHeapBuf  bool
}

// Open creates a Counter with default tuning and no byte budget. maxTokenLen
// of 0 requests the default of 64; any value is clamped to [4,
// MaxTokenCeiling].
func Open(maxTokenLen int) (*Counter, error) {
	return OpenWithConfig(maxTokenLen, Config{})
}

// OpenWithConfig creates a Counter per cfg. See Config's field docs for the
// defaulting rules applied when a field is left at its zero value.
func OpenWithConfig(maxTokenLen int, cfg Config) (*Counter, error) {
	mtl := clampTokenLen(maxTokenLen)

	static := len(cfg.StaticRegion) > 0
	effBudget := effectiveBudget(cfg.ByteBudget, uint64(len(cfg.StaticRegion)))

	var tableBudget uint64
	if effBudget != 0 {
		tableBudget = effBudget / 2
	}

	capacity := tuneCapacity(cfg.InitialCapacity, effBudget, tableBudget)
	blockSize := tuneBlockSize(cfg.BlockSize, effBudget, tableBudget, mtl)

	var a *alloc.Allocator
	if static {
		staticAlloc, err := alloc.NewStatic(cfg.StaticRegion, cfg.ByteBudget)
		if err != nil {
			return nil, wrapErr(err)
		}
		if err := dryRun(staticAlloc.Clone(), capacity, blockSize, mtl, cfg.HeapScanBuffer); err != nil {
			return nil, err
		}
		a = staticAlloc
	} else {
		a = alloc.NewHeap(cfg.ByteBudget)
	}

	ar := arena.New(a, blockSize)
	idx, err := hashindex.New(a, ar, capacity, cfg.HashSeed)
	if err != nil {
		return nil, wrapErr(err)
	}

	c := &Counter{
		alloc:       a,
		arena:       ar,
		idx:         idx,
		maxTokenLen: mtl,
		seed:        cfg.HashSeed,
	}

	if cfg.HeapScanBuffer {
		buf, err := a.Allocate(mtl)
		if err != nil {
			return nil, wrapErr(err)
		}
		c.heapScanBuf = buf
		c.useHeapBuf = true
	}

	return c, nil
}

// clampTokenLen applies the zero-means-default rule and the configured
// floor/ceiling to a requested maximum token length.
func clampTokenLen(requested int) int {
	mtl := requested
	if mtl == 0 {
		mtl = 64
	}
	if mtl < 4 {
		mtl = 4
	}
	if mtl > MaxTokenCeiling {
		mtl = MaxTokenCeiling
	}
	return mtl
}

// effectiveBudget folds ByteBudget and the static region's size into one
// effective cap: the smaller of the two when both are set, whichever one
// is set when only one is, or 0 (unlimited) when neither is.
func effectiveBudget(byteBudget, staticRegionSize uint64) uint64 {
	switch {
	case byteBudget != 0 && staticRegionSize != 0:
		if byteBudget < staticRegionSize {
			return byteBudget
		}
		return staticRegionSize
	case byteBudget != 0:
		return byteBudget
	default:
		return staticRegionSize
	}
}

func platformDefaultCapacity() int {
	switch bits.UintSize {
	case 16:
		return 128
	case 32:
		return 1024
	default:
		return 4096
	}
}

func platformDefaultBlockSize() int {
	switch bits.UintSize {
	case 16:
		return 1024
	case 32:
		return 16384
	default:
		return 65536
	}
}

// tuneCapacity applies the platform default, shrinks to fit within
// tableBudget when one is set, and floors at MinInitCapacity — always
// returning a power of two.
func tuneCapacity(requested int, effBudget, tableBudget uint64) int {
	capacity := requested
	if capacity == 0 {
		capacity = platformDefaultCapacity()
	}
	if effBudget != 0 && uint64(capacity)*uint64(hashindex.SlotBytes) > tableBudget {
		capacity = largestPowerOfTwoLE(tableBudget / uint64(hashindex.SlotBytes))
	}
	if capacity < MinInitCapacity {
		capacity = MinInitCapacity
	}
	return nextPowerOfTwo(capacity)
}

// tuneBlockSize applies the platform default, caps at a quarter of the
// arena's share of the budget when one is set, and floors at MinBlockSize
// and at one full-length token plus its NUL terminator.
func tuneBlockSize(requested int, effBudget, tableBudget uint64, maxTokenLen int) int {
	blockSize := requested
	if blockSize == 0 {
		blockSize = platformDefaultBlockSize()
	}
	if effBudget != 0 {
		arenaBudget := effBudget - tableBudget
		if cap := arenaBudget / 4; cap != 0 && uint64(blockSize) > cap {
			blockSize = int(cap)
		}
	}
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}
	if floor := maxTokenLen + 1; blockSize < floor {
		blockSize = floor
	}
	return blockSize
}

func largestPowerOfTwoLE(n uint64) int {
	if n == 0 {
		return 1
	}
	p := 1
	for uint64(p)*2 <= n {
		p *= 2
	}
	return p
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// dryRun simulates construction-time allocations against a scratch clone
// of the allocator's accounting state so an unsatisfiable static-region
// budget fails at OpenWithConfig rather than on the first Add or Scan. It
// follows the real order — slot array, heap scan buffer, then the arena's
// first block (allocated on the first insert) — so alignment padding
// matches what the real allocations will pay.
func dryRun(clone *alloc.Allocator, capacity, blockSize, maxTokenLen int, heapBuf bool) error {
	if err := clone.Charge(hashindex.TableBytes(capacity)); err != nil {
		return wrapErr(err)
	}
	if heapBuf {
		if _, err := clone.Allocate(maxTokenLen); err != nil {
			return wrapErr(err)
		}
	}
	if _, err := clone.Allocate(blockSize); err != nil {
		return wrapErr(err)
	}
	return nil
}

// Add records one occurrence of key, case-sensitively and without
// separator scanning. key longer than the counter's maxTokenLen is
// truncated before hashing and storage. A nil Counter or empty key is a
// no-op.
func (c *Counter) Add(key []byte) error {
	if c == nil || len(key) == 0 {
		return nil
	}
	if len(key) > c.maxTokenLen {
		key = key[:c.maxTokenLen]
	}
	_, err := c.idx.Insert(key, hashindex.Hash(key, c.seed))
	return wrapErr(err)
}

// Total returns the cumulative number of tokens recorded. Nil-safe.
func (c *Counter) Total() uint64 {
	if c == nil {
		return 0
	}
	return c.idx.Total()
}

// Unique returns the number of distinct tokens currently stored. Nil-safe.
func (c *Counter) Unique() uint64 {
	if c == nil {
		return 0
	}
	return c.idx.Unique()
}

// Close releases the counter's heap-mode scan buffer accounting and drops
// its internal references. Nil-safe; safe to call more than once.
func (c *Counter) Close() error {
	if c == nil {
		return nil
	}
	if c.useHeapBuf && c.heapScanBuf != nil {
		c.alloc.Release(len(c.heapScanBuf))
		c.heapScanBuf = nil
	}
	c.idx = nil
	c.arena = nil
	c.alloc = nil
	return nil
}
