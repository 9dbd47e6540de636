// Package hashindex implements the power-of-two, open-addressed table at
// the core of the counter: seeded FNV-1a placement, linear probing,
// length-checked-before-bytes comparison, and 0.7-load-factor growth in
// dynamic mode (OutOfMemory at the threshold in static mode).
package hashindex

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/arrowcount/wfreq/internal/alloc"
	"github.com/arrowcount/wfreq/internal/arena"
)

// logAlloc enables verbose table-growth logging, controlled by the
// WFREQ_LOG_ALLOC environment variable, read once at process start.
var logAlloc = os.Getenv("WFREQ_LOG_ALLOC") != ""

var (
	// ErrOutOfMemory mirrors alloc.ErrOutOfMemory for callers that only
	// import this package.
	ErrOutOfMemory = errors.New("hashindex: out of memory")

	// ErrInvariantViolation signals internally detected corruption: the
	// count of occupied slots disagreed with the tracked unique count.
	ErrInvariantViolation = errors.New("hashindex: invariant violation")
)

// SlotBytes is the accounting size charged per slot against the byte
// budget. It does not need to match unsafe.Sizeof(slot{}) exactly — it is
// an accounting fiction used by the counter's budget-tuning arithmetic
// ("capacity × slot_size") to decide how much of the budget the table may
// claim before the arena gets the rest.
const SlotBytes = 24

// loadFactorNum and loadFactorDen express the 0.7 load-factor threshold
// as exact integer arithmetic: unique*10 < capacity*7.
const (
	loadFactorNum = 7
	loadFactorDen = 10
)

type slot struct {
	keyPtr   unsafe.Pointer
	keyLen   int
	count    uint64
	hash     uint32
	occupied bool
}

// Index is the open-addressed hash table. It is not safe for concurrent
// use — the counter that owns it is single-threaded by contract.
type Index struct {
	a      *alloc.Allocator
	ar     *arena.Arena
	static bool
	seed   uint32

	slots    []slot
	capacity int
	unique   uint64
	total    uint64
}

// New creates an Index with the given power-of-two initial capacity,
// drawing key storage from ar and charging the slot array against a.
// capacity must already be a power of two; the counter (C4) is
// responsible for the tuning arithmetic that derives it.
func New(a *alloc.Allocator, ar *arena.Arena, capacity int, seed uint32) (*Index, error) {
	if err := a.Charge(TableBytes(capacity)); err != nil {
		return nil, ErrOutOfMemory
	}
	return &Index{
		a:        a,
		ar:       ar,
		static:   a.IsStatic(),
		seed:     seed,
		slots:    make([]slot, capacity),
		capacity: capacity,
	}, nil
}

// TableBytes returns the accounting size of a slot array of the given
// capacity.
func TableBytes(capacity int) int { return capacity * SlotBytes }

// Seed returns the hash seed this index was constructed with.
func (idx *Index) Seed() uint32 { return idx.seed }

// Capacity returns the current slot array size (always a power of two).
func (idx *Index) Capacity() int { return idx.capacity }

// Unique returns the number of distinct keys currently stored.
func (idx *Index) Unique() uint64 { return idx.unique }

// Total returns the cumulative occurrence count across all keys.
func (idx *Index) Total() uint64 { return idx.total }

// Insert records one occurrence of key (already normalized and truncated
// by the caller), whose FNV-1a hash is hash. Returns whether this was a
// newly-seen key.
func (idx *Index) Insert(key []byte, hash uint32) (inserted bool, err error) {
	if idx.atLoadFactorThreshold() {
		if idx.static {
			return false, ErrOutOfMemory
		}
		if err := idx.grow(); err != nil {
			return false, err
		}
	}

	mask := uint32(idx.capacity - 1)
	start := hash & mask

	for i := uint32(0); i < uint32(idx.capacity); i++ {
		pos := (start + i) % uint32(idx.capacity)
		s := &idx.slots[pos]

		if !s.occupied {
			ptr, ok := idx.ar.Copy(key)
			if !ok {
				return false, ErrOutOfMemory
			}
			s.keyPtr = ptr
			s.keyLen = len(key)
			s.hash = hash
			s.count = 1
			s.occupied = true
			idx.unique++
			idx.total++
			return true, nil
		}

		if s.hash == hash && s.keyLen == len(key) && matchBytes(s.keyPtr, s.keyLen, key) {
			s.count++
			idx.total++
			return false, nil
		}
	}

	// Full traversal with neither an empty slot nor a match: the
	// static-mode pathology the load-factor check is meant to prevent.
	return false, ErrOutOfMemory
}

func (idx *Index) atLoadFactorThreshold() bool {
	return idx.unique*loadFactorDen >= uint64(idx.capacity)*loadFactorNum
}

// grow doubles capacity by rehashing into a freshly allocated array built
// entirely locally; it only replaces idx.slots once every occupied slot
// has been re-probed successfully, so a failed grow leaves the table
// unchanged.
func (idx *Index) grow() error {
	newCap := idx.capacity * 2
	if err := idx.a.Charge(TableBytes(newCap)); err != nil {
		return ErrOutOfMemory
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "hashindex: growing table %d -> %d slots (unique=%d)\n",
			idx.capacity, newCap, idx.unique)
	}

	newSlots := make([]slot, newCap)
	mask := uint32(newCap - 1)

	for _, s := range idx.slots {
		if !s.occupied {
			continue
		}
		pos := s.hash & mask
		for {
			if !newSlots[pos].occupied {
				newSlots[pos] = s
				break
			}
			pos = (pos + 1) % uint32(newCap)
		}
	}

	idx.a.Release(TableBytes(idx.capacity))
	idx.slots = newSlots
	idx.capacity = newCap
	return nil
}

// matchBytes compares the stored key at (ptr, n) against probe
// byte-for-byte. The caller must have already checked keyLen == len(probe)
// — collisions between differing-length keys are expected under FNV-1a
// and must never reach a length-unchecked memcmp.
func matchBytes(ptr unsafe.Pointer, n int, probe []byte) bool {
	stored := unsafe.Slice((*byte)(ptr), n)
	for i := 0; i < n; i++ {
		if stored[i] != probe[i] {
			return false
		}
	}
	return true
}

// At returns the key bytes and count at slot i, or ok=false if the slot
// is empty or i is out of range. Used by the counter's snapshot builder
// and cursor to walk the table without exposing the slot type.
func (idx *Index) At(i int) (key []byte, count uint64, ok bool) {
	if i < 0 || i >= len(idx.slots) {
		return nil, 0, false
	}
	s := &idx.slots[i]
	if !s.occupied {
		return nil, 0, false
	}
	return unsafe.Slice((*byte)(s.keyPtr), s.keyLen), s.count, true
}

// Len returns the slot array length (capacity), for iteration bounds.
func (idx *Index) Len() int { return len(idx.slots) }

// CheckConsistency recomputes the occupied-slot count and compares it
// against the tracked unique count, returning ErrInvariantViolation on
// mismatch. The snapshot builder gates on this before returning a result.
func (idx *Index) CheckConsistency() error {
	observed := uint64(0)
	for i := range idx.slots {
		if idx.slots[i].occupied {
			observed++
		}
	}
	if observed != idx.unique {
		return ErrInvariantViolation
	}
	return nil
}
