package keystore

import (
	"context"
	"errors"
)

// Partition names used by the content loader. Backends create partitions
// on demand; there is no migration logic beyond that.
const (
	PartitionProducts = "products"
	PartitionBlogs    = "blogs"
)

// ErrNotFound is returned by Get when the partition has no entry for the id.
var ErrNotFound = errors.New("keystore: entry not found")

// Store is a durable key-value store with one flat id->payload map per
// partition. Writes are upserts; the last writer wins per id. No indexing,
// no queries, no transactions across partitions.
type Store interface {
	Put(ctx context.Context, partition, id string, payload []byte) error
	PutAll(ctx context.Context, partition string, entries map[string][]byte) error
	Get(ctx context.Context, partition, id string) ([]byte, error)
	GetAll(ctx context.Context, partition string) (map[string][]byte, error)
	Delete(ctx context.Context, partition, id string) error
	Clear(ctx context.Context, partition string) error
	Close() error
}
