package wfreq

// Cursor enumerates a Counter's tokens in table order (unspecified,
// unsorted) without the allocation a full Snapshot builds. Its entries
// are borrowed the same way Snapshot's are: valid until the Counter
// closes.
type Cursor struct {
	c   *Counter
	idx int
}

// Cursor returns a new Cursor positioned before the first slot.
func (c *Counter) Cursor() *Cursor {
	return &Cursor{c: c}
}

// Next advances the cursor and returns the next occupied entry, or
// ok=false once every slot has been visited. Nil-safe.
func (cur *Cursor) Next() (Entry, bool) {
	if cur == nil || cur.c == nil || cur.c.idx == nil {
		return Entry{}, false
	}
	for cur.idx < cur.c.idx.Len() {
		key, count, ok := cur.c.idx.At(cur.idx)
		cur.idx++
		if ok {
			return Entry{Key: key, Count: count}, true
		}
	}
	return Entry{}, false
}
