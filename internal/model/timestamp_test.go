package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-01-05T09:00",
		"2024-01-05T09:00:00",
		"2024-01-05 09:00:00",
		"2024-01-05 09:00",
		"2024-01-05T09:00:00Z",
		"2024-01-05T17:00:00+08:00",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseTimestamp(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("date only", func(t *testing.T) {
		got, err := ParseTimestamp("2024-01-05")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-05T00:00:00", FormatTimestamp(got))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseTimestamp("05/01/2024")
		assert.Error(t, err)
	})
}

func TestFormatTimestampAndDateOf(t *testing.T) {
	ts := time.Date(2024, 1, 5, 18, 30, 15, 0, time.UTC)
	assert.Equal(t, "2024-01-05T18:30:15", FormatTimestamp(ts))
	assert.Equal(t, "2024-01-05", DateOf(ts))

	// 非 UTC 的时间先换算到 UTC 再取日期
	shanghai := time.FixedZone("CST", 8*3600)
	assert.Equal(t, "2024-01-05", DateOf(time.Date(2024, 1, 6, 2, 0, 0, 0, shanghai)))

	r := &Recharge{Date: ts}
	assert.Equal(t, "2024-01-05", r.Day())
}
