package wfreq

// Config carries construction-time tuning knobs for OpenWithConfig. Every
// field's zero value requests the derived default described in
// SPEC_FULL.md §4.4.
type Config struct {
	// ByteBudget caps total bytes charged against the allocator. 0 means
	// unlimited (bounded only by the Go heap, or by StaticRegion's size
	// when set).
	ByteBudget uint64

	// InitialCapacity is the starting hash-table slot count. 0 requests
	// the platform default; it is always rounded up to a power of two
	// and floored at MinInitCapacity.
	InitialCapacity int

	// BlockSize is the arena's first block size. 0 requests the platform
	// default; it is floored at MinBlockSize and at one full-length
	// token (MaxTokenLen+1).
	BlockSize int

	// StaticRegion, when non-empty, switches the counter to static mode:
	// every allocation is carved from this caller-owned slice instead of
	// the Go heap. The region is borrowed exclusively for the counter's
	// lifetime and must not be reused elsewhere while the counter lives.
	StaticRegion []byte

	// HashSeed is XOR-mixed into the FNV-1a basis once, at construction.
	// 0 uses the unmodified FNV-1a basis.
	HashSeed uint32

	// HeapScanBuffer selects Scan's working-buffer strategy: false (the
	// default) uses a per-call buffer sized to MaxTokenCeiling; true
	// allocates a per-counter buffer sized to MaxTokenLen, charged
	// against the budget and freed on Close.
	HeapScanBuffer bool
}
