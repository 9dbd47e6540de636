// Package wfreq implements an embeddable, bounded-memory word-frequency
// counter: a bump-allocating string arena and an open-addressed hash
// index, both backed by a budgeted allocator that can run against the Go
// heap or carve everything out of a caller-supplied fixed-size region.
//
// # Overview
//
// A Counter owns exactly one hash index and one string arena, both
// sharing one allocator. Tokens enter through Add (case-sensitive, one
// token at a time) or Scan (case-insensitive, extracts every run of
// ASCII letters from a byte stream). Results come back either as a
// sorted snapshot or through a zero-allocation Cursor.
//
//	c, err := wfreq.Open(0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Scan([]byte("the quick brown fox")); err != nil {
//	    log.Fatal(err)
//	}
//
//	entries, err := c.Snapshot()
//
// # Static-region mode
//
// OpenWithConfig's Config.StaticRegion, when non-empty, makes the counter
// carve every allocation — the slot array, arena blocks, and optionally
// the scan buffer — out of that caller-owned byte slice instead of the Go
// heap. Construction runs a dry-run precheck against a throwaway copy of
// the allocator's accounting state before committing to the real one, so
// an unsatisfiable budget fails at OpenWithConfig rather than on the
// first Add or Scan.
//
// # Thread safety
//
// A Counter is single-threaded: Add, Scan, queries, and enumeration on
// one Counter must not run concurrently. Distinct Counters may run on
// distinct goroutines with no coordination.
//
// # Related packages
//
//   - github.com/arrowcount/wfreq/internal/alloc: budgeted allocator
//   - github.com/arrowcount/wfreq/internal/arena: string arena
//   - github.com/arrowcount/wfreq/internal/hashindex: hash index
//   - github.com/arrowcount/wfreq/cmd/wfreqctl: CLI front-end
package wfreq
