package wfreq

import "github.com/arrowcount/wfreq/internal/hashindex"

// isLetter reports whether b is an ASCII letter, case-insensitively, using
// the fold-to-lowercase-then-range-check trick: setting bit 0x20 folds
// 'A'-'Z' onto 'a'-'z', after which subtracting 'a' and checking < 26
// covers both cases in one comparison.
func isLetter(b byte) bool {
	return (b|0x20)-0x61 < 26
}

// toLower folds an ASCII letter to lowercase by setting bit 0x20; a no-op
// on letters that are already lowercase. It sets the bit on any byte, so
// it is only applied to bytes isLetter accepts.
func toLower(b byte) byte {
	return b | 0x20
}

// Scan extracts every maximal run of ASCII letters from data, lowercases
// it, truncates it to the counter's maxTokenLen, and records one
// occurrence per run. Non-letter bytes — including embedded NULs — act as
// separators and are otherwise ignored. A nil Counter or empty data is a
// no-op.
func (c *Counter) Scan(data []byte) error {
	if c == nil || len(data) == 0 {
		return nil
	}

	var stackBuf [MaxTokenCeiling]byte
	var buf []byte
	if c.useHeapBuf {
		buf = c.heapScanBuf
	} else {
		buf = stackBuf[:c.maxTokenLen]
	}

	n := 0
	h := hashindex.Basis(c.seed)
	inToken := false

	flush := func() error {
		if !inToken {
			return nil
		}
		if _, err := c.idx.Insert(buf[:n], h); err != nil {
			return wrapErr(err)
		}
		n = 0
		h = hashindex.Basis(c.seed)
		inToken = false
		return nil
	}

	for _, b := range data {
		if isLetter(b) {
			inToken = true
			if n < c.maxTokenLen {
				lb := toLower(b)
				buf[n] = lb
				h = hashindex.Step(h, lb)
				n++
			}
			continue
		}
		if err := flush(); err != nil {
			return err
		}
	}
	return flush()
}
