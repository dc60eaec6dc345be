package image

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// HashURL derives the short stable identifier used in optimized filenames.
// Identical URLs always hash to the same 12 hex characters, so re-runs
// overwrite rather than duplicate.
func HashURL(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}

// VariantFilename is the on-disk name for one rendition of a source.
func VariantFilename(url, variant, ext string) string {
	return fmt.Sprintf("%s-%s.%s", HashURL(url), variant, ext)
}
