package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const boltBucket = "gammachat"

// BoltKV implements the KV interface over a BoltDB file. Each Set rewrites a single key
// atomically within one transaction, which is all the session store needs.
type BoltKV struct {
	db *bolt.DB
}

// NewBoltKV opens (or creates, with 0600 permissions) the database at path and ensures
// the bucket exists.
func NewBoltKV(path string) (BoltKV, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return BoltKV{}, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})

	return BoltKV{db: db}, err
}

// Get returns the value stored under key, or nil if absent.
func (b BoltKV) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(boltBucket))
		if bk == nil {
			return nil
		}
		if v := bk.Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// Set stores value under key.
func (b BoltKV) Set(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(boltBucket))
		if bk == nil {
			return nil
		}
		return bk.Put([]byte(key), value)
	})
}

// Delete removes key.
func (b BoltKV) Delete(key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket([]byte(boltBucket))
		if bk == nil {
			return nil
		}
		return bk.Delete([]byte(key))
	})
}

// Close closes the underlying database.
func (b BoltKV) Close() error {
	return b.db.Close()
}
