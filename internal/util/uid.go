package util

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
)

// UIDRoot is the root of every generated UID.
const UIDRoot = "1.2.826.0.1.3680043.8.498"

// GenerateDeterministicUID derives a UID from seed. The same seed always
// yields the same UID and the result stays within the 64-character limit.
func GenerateDeterministicUID(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	hi := binary.BigEndian.Uint64(sum[:8])
	lo := binary.BigEndian.Uint64(sum[8:16])
	// Both components are non-zero, so neither has a leading zero. Worst case
	// is 25+1+20+1+13 = 60 characters.
	return UIDRoot + "." + strconv.FormatUint(hi|1, 10) + "." + strconv.FormatUint(lo%1e12+1, 10)
}
