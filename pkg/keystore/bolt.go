package keystore

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltStore is the default file-backed Store. One bbolt bucket per
// partition, created lazily on first write.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %v", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Put(ctx context.Context, partition, id string, payload []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(partition))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), payload)
	})
}

func (s *BoltStore) PutAll(ctx context.Context, partition string, entries map[string][]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(partition))
		if err != nil {
			return err
		}
		for id, payload := range entries {
			if err := bucket.Put([]byte(id), payload); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Get(ctx context.Context, partition, id string) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return ErrNotFound
		}
		value := bucket.Get([]byte(id))
		if value == nil {
			return ErrNotFound
		}
		payload = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *BoltStore) GetAll(ctx context.Context, partition string) (map[string][]byte, error) {
	entries := make(map[string][]byte)
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(key, value []byte) error {
			entries[string(key)] = append([]byte(nil), value...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *BoltStore) Delete(ctx context.Context, partition, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(partition))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(id))
	})
}

func (s *BoltStore) Clear(ctx context.Context, partition string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(partition)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(partition))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
