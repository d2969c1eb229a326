package appid

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplicationIDFormat(t *testing.T) {
	now := time.Date(2024, 3, 17, 10, 30, 0, 0, time.UTC)
	id := NewApplicationID(now)

	require.True(t, Pattern.MatchString(id), "id %q does not match pattern", id)
	assert.True(t, strings.HasPrefix(id, "SCH-20240317-"))
}

func TestNewApplicationIDUsesUTCDate(t *testing.T) {
	// 23:30 in UTC+7 is already the next day locally but not in UTC.
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2024, 3, 17, 23, 30, 0, 0, loc)

	id := NewApplicationID(now)
	assert.True(t, strings.HasPrefix(id, "SCH-20240317-"))
}

func TestNewTransactionIDFormat(t *testing.T) {
	now := time.Date(2024, 3, 17, 10, 30, 0, 0, time.UTC)
	txn := NewTransactionID(now)

	assert.True(t, strings.HasPrefix(txn, "TXN"))
	assert.GreaterOrEqual(t, len(txn), len("TXN")+13+4)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("SCH-20240317-A1F9"))
	assert.False(t, Valid("SCH-2024317-A1F9"))
	assert.False(t, Valid("SCH-20240317-a1f9"))
	assert.False(t, Valid("APP-20240317-A1F9"))
	assert.False(t, Valid("SCH-20240317-A1F"))
}
