// Package id generates the human-readable identifiers printed on material labels.
//
// An identifier is a short prefix, a dash, four random base36 characters and
// the base36 creation time in milliseconds, all upper case (MAT-K3ZQLV9X2B1).
// The random part comes from a UUIDv4 so ids do not collide when two records are
// created within the same millisecond.
package id

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes for the entities of the service.
const (
	MaterialPrefix = "MAT"
	SupplierPrefix = "SUP"
)

// New generates an identifier with the given prefix.
func New(prefix string) string {
	return newAt(prefix, time.Now())
}

func newAt(prefix string, now time.Time) string {
	u := uuid.New()
	var random uint64
	for _, b := range u[:8] {
		random = random<<8 | uint64(b)
	}

	rnd := strconv.FormatUint(random%(36*36*36*36), 36)
	rnd = strings.Repeat("0", 4-len(rnd)) + rnd
	ts := strconv.FormatInt(now.UnixMilli(), 36)

	return prefix + "-" + strings.ToUpper(rnd+ts)
}

// HasPrefix reports whether s looks like an identifier produced with prefix.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix+"-") && len(s) > len(prefix)+1
}
