package wfreq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_SimpleTwoWordSentence(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("Hello World")))

	assert.EqualValues(t, 2, c.Total())
	assert.EqualValues(t, 2, c.Unique())
}

func TestScan_CaseInsensitiveMerge(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("Hello HELLO hello HeLLo")))

	assert.EqualValues(t, 1, c.Unique())
	assert.EqualValues(t, 4, c.Total())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", string(entries[0].Key))
	assert.EqualValues(t, 4, entries[0].Count)
}

func TestScan_FrequencyOrdering(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("apple banana apple cherry apple banana")))

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "apple", string(entries[0].Key))
	assert.EqualValues(t, 3, entries[0].Count)
	assert.Equal(t, "banana", string(entries[1].Key))
	assert.EqualValues(t, 2, entries[1].Count)
	assert.Equal(t, "cherry", string(entries[2].Key))
	assert.EqualValues(t, 1, entries[2].Count)
}

func TestScan_TruncatesLongTokens(t *testing.T) {
	c, err := Open(8)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("internationalization international")))

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "internat", string(entries[0].Key))
	assert.EqualValues(t, 2, entries[0].Count)
}

func TestOpen_ClampsTokenLenBelowFloor(t *testing.T) {
	c, err := Open(1)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("ab a")))
	entries, err := c.Snapshot()
	require.NoError(t, err)

	for _, e := range entries {
		assert.LessOrEqual(t, len(e.Key), 4)
	}
}

func TestOpen_ClampsTokenLenAboveCeiling(t *testing.T) {
	c, err := Open(MaxTokenCeiling + 1000)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Add([]byte("x")))
	assert.EqualValues(t, 1, c.Total())
}

func TestAdd_CaseSensitiveNoSeparatorScanning(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Add([]byte("two words")))
	require.NoError(t, c.Add([]byte("Two Words")))

	assert.EqualValues(t, 2, c.Unique())
	assert.EqualValues(t, 2, c.Total())
}

func TestAdd_EmptyKeyIsNoOp(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Add(nil))
	require.NoError(t, c.Add([]byte{}))
	assert.EqualValues(t, 0, c.Total())
	assert.EqualValues(t, 0, c.Unique())
}

func TestScan_EmptyInputIsNoOp(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan(nil))
	require.NoError(t, c.Scan([]byte{}))
	assert.EqualValues(t, 0, c.Total())
}

func TestNilCounter_QueriesAreSafe(t *testing.T) {
	var c *Counter
	assert.EqualValues(t, 0, c.Total())
	assert.EqualValues(t, 0, c.Unique())
	assert.NoError(t, c.Add([]byte("x")))
	assert.NoError(t, c.Scan([]byte("x")))
	assert.NoError(t, c.Close())
}

func TestCollisionRegression_DifferingLengthKeysBothSurvive(t *testing.T) {
	// Verified unseeded 32-bit FNV-1a collision: both inputs hash to the
	// same bucket despite differing lengths.
	short := []byte("svhpy")
	long := []byte("znycrycwqhztadbhsrdok")

	c, err := Open(32)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Add(short))
	require.NoError(t, c.Add(long))

	assert.EqualValues(t, 2, c.Unique())
	assert.EqualValues(t, 2, c.Total())

	entries, err := c.Snapshot()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.EqualValues(t, 1, e.Count)
	}
}

func TestCursor_VisitsEveryInsertedToken(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Scan([]byte("one two three two")))

	seen := map[string]uint64{}
	cur := c.Cursor()
	for {
		e, ok := cur.Next()
		if !ok {
			break
		}
		seen[string(e.Key)] = e.Count
	}

	assert.Equal(t, map[string]uint64{"one": 1, "two": 2, "three": 1}, seen)
}

func TestStaticRegion_TinyRegionFailsLargeRegionSucceeds(t *testing.T) {
	tiny := make([]byte, 8)
	_, err := OpenWithConfig(16, Config{StaticRegion: tiny})
	assert.Error(t, err, "a region too small for even the slot array must fail at construction")

	ample := make([]byte, 1<<16)
	c, err := OpenWithConfig(16, Config{StaticRegion: ample})
	require.NoError(t, err)
	require.NoError(t, c.Add([]byte("word")))
}

func TestStaticRegion_MonotoneFrontier(t *testing.T) {
	// If construction plus one insertion succeeds at some region size, it
	// must also succeed at every larger size — the frontier between
	// failure and success is monotone in region size.
	var sMin int
	for size := 64; size <= 1<<20; size *= 2 {
		region := make([]byte, size)
		c, err := OpenWithConfig(16, Config{StaticRegion: region})
		if err != nil {
			continue
		}
		if c.Add([]byte("word")) == nil {
			sMin = size
			break
		}
	}
	require.NotZero(t, sMin, "expected some region size in range to succeed")

	for _, size := range []int{sMin, sMin * 2, sMin * 4} {
		region := make([]byte, size)
		c, err := OpenWithConfig(16, Config{StaticRegion: region})
		require.NoError(t, err)
		assert.NoError(t, c.Add([]byte("word")), "size %d should succeed once sMin does", size)
	}
}

func TestSnapshot_EmptyCounterReturnsNilNoError(t *testing.T) {
	c, err := Open(0)
	require.NoError(t, err)
	defer c.Close()

	entries, err := c.Snapshot()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestVersionAndBuildInfo(t *testing.T) {
	assert.NotEmpty(t, Version())
	info := BuildInfo()
	assert.Equal(t, Version(), info.VersionNumber)
	assert.Equal(t, MaxTokenCeiling, info.MaxTokenCeiling)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "ok", ErrorString(nil))
	assert.Equal(t, "out of memory", ErrorString(ErrOutOfMemory))
}
