package id

import (
	"sort"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: another timestamp in between resets the monotonic run.
func TestNewAtIsSortable(t *testing.T) {
	// Same millisecond: monotonic entropy still orders them.
	at := time.Now()
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = NewAt(at)
	}
	assert.True(t, sort.StringsAreSorted(ids))

	seen := map[string]bool{}
	for _, s := range ids {
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestNewAtTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2023, 11, 5, 14, 30, 0, 0, time.UTC)
	s := NewAt(at)

	u, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	assert.True(t, ulid.Time(u.Time()).Equal(at))
}
