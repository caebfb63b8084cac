package storage

import (
	"strings"

	"github.com/google/uuid"
)

// UniqueName derives a collision-resistant stored name from an uploaded
// filename: the part before the first dot, a fresh uuid, and the last
// extension segment.
func UniqueName(original string) string {
	base := original
	ext := ""

	if i := strings.Index(original, "."); i >= 0 {
		base = original[:i]
		ext = original[strings.LastIndex(original, "."):]
	}

	return base + uuid.New().String() + ext
}
