package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewNumber returns a human-facing entity number: PREFIX-YYYYMM-xxxxxxxx,
// e.g. APP-202608-9f2c41aa or LN-202608-03b7e1c9.
// The hex tail comes from crypto/rand; collisions are left to the DB
// unique index to catch.
func NewNumber(prefix string, now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(prefix), now.UTC().Format("200601"), hex.EncodeToString(b))
}
