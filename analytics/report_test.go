package analytics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOrg(t *testing.T) {
	t.Parallel()

	r := NewReport("XAUUSD", results(10, 5, -3, -2, -1, 7), 10000)
	r.Created = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r.Notes = []string{"overtraded the NY open"}
	r.NextActions = []string{"cap at 3 trades a day"}

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "* PERFORMANCE: XAUUSD")
	assert.Contains(t, out, ":START_DATE:  2024-01-30")
	assert.Contains(t, out, ":END_DATE:    2024-02-04")
	assert.Contains(t, out, ":NET_PL:      16.00")
	assert.Contains(t, out, ":TRADES:      6")
	assert.Contains(t, out, ":WIN_RATE:    50.00")
	assert.Contains(t, out, ":CREATED:     [2024-03-01 Fri 12:00]")
	assert.Contains(t, out, "- Streaks:          *2W* / *3L*")
	assert.Contains(t, out, "| 2024-01 | 2 | 15.00 |")
	assert.Contains(t, out, "| 2024-02 | 4 | 1.00 |")
	assert.Contains(t, out, "- overtraded the NY open")
	assert.Contains(t, out, "- [ ] cap at 3 trades a day")
	assert.Contains(t, out, "# (optional) insert an exported equity curve image here")
}

func TestWriteOrgEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteOrg(&buf, NewReport("XAUUSD", nil, 10000)))
	out := buf.String()

	assert.Contains(t, out, "No trades recorded yet.")
	assert.Contains(t, out, ":PROFIT_FAC:  (profit-factor?)")
	assert.NotContains(t, out, ":START_DATE:")
	assert.NotContains(t, out, "** Monthly")
}
