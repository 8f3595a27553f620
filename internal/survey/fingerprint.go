package survey

import (
	"fmt"
	"hash/fnv"
)

// Fingerprint derives a weak device identifier from the browser's User-Agent
// string and screen pixel dimensions. FNV-1a is deliberately non-cryptographic:
// the id only guards against casual re-submission, and a rare collision is an
// accepted false-duplicate risk.
func Fingerprint(userAgent string, width, height int) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%dx%d", userAgent, width, height)
	return fmt.Sprintf("%08x", h.Sum32())
}
