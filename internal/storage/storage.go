package storage

import "context"

// BlobStore persists uploaded binary assets under caller-chosen names.
// Implementations must treat deletion of a name that does not exist as
// success, so a record is never stranded behind an already-missing file.
type BlobStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}
