package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 14, 30, 5, 0, time.UTC)

	assert.Equal(t, "09.03.2026", FormatDate(ts))
	assert.Equal(t, "09.03.2026 14:30:05", FormatDateTime(ts))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", FullName("Ada", "Lovelace"))
	assert.Equal(t, "Ada", FullName("Ada", ""))
	assert.Equal(t, "Lovelace", FullName("", "Lovelace"))
	assert.Equal(t, "", FullName("", ""))
}
