// Package appid generates the public identifiers handed to applicants:
// application ids of the form SCH-YYYYMMDD-XXXX and payment transaction ids.
package appid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Pattern matches a well-formed application id.
var Pattern = regexp.MustCompile(`^SCH-\d{8}-[A-Z0-9]{4}$`)

// NewApplicationID returns a fresh application id stamped with the given time.
// The 4-character suffix is random; callers that need ledger-wide uniqueness
// should check for collisions and retry.
func NewApplicationID(now time.Time) string {
	return fmt.Sprintf("SCH-%s-%s", now.UTC().Format("20060102"), randomSuffix())
}

// NewTransactionID returns a payment transaction id in the TXN<epoch-ms><rand> form.
func NewTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN%d%04d", now.UnixMilli(), randomUint16()%10000)
}

// Valid reports whether the given string is a well-formed application id.
func Valid(id string) bool {
	return Pattern.MatchString(id)
}

func randomSuffix() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		// Degrade to a time-derived suffix rather than failing id generation.
		return strings.ToUpper(hex.EncodeToString([]byte{byte(time.Now().UnixNano()), byte(time.Now().UnixNano() >> 8)}))
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

func randomUint16() uint64 {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return uint64(binary.BigEndian.Uint16(buf))
}
