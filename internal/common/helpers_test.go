package common_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledgerbot/internal/common"
)

func TestPluralize(t *testing.T) {
	testCases := []struct {
		name     string
		n        int64
		expected string
	}{
		{"zero", 0, "points"},
		{"one", 1, "point"},
		{"many", 5, "points"},
		{"negative one", -1, "point"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, common.Pluralize(tc.n, "point", "points"))
		})
	}
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "1 point", common.FormatPoints(1))
	assert.Equal(t, "3 points", common.FormatPoints(3))
	assert.Equal(t, "0 points", common.FormatPoints(0))
}

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		max      int
		expected string
	}{
		{"short stays", "buy milk", 200, "buy milk"},
		{"exact stays", "abcde", 5, "abcde"},
		{"long is cut", "abcdef", 5, "abcde..."},
		{"multibyte counts runes", "ありがとうございます", 5, "ありがとう..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, common.Truncate(tc.in, tc.max))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	assert.Equal(t, "2025-03-14 15:09:26", common.FormatDateTime(ts, time.UTC))
	assert.Equal(t, "2025-03-14 15:09:26", common.FormatDateTime(ts, nil))
}
