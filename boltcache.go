package qsip

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var objectBucket = []byte("objects")

// BoltCache is a Cache which stores objects as JSON in boltdb.
type BoltCache struct {
	db *bolt.DB
}

// NewBoltCache opens (creating if needed) the bolt file at filename.
func NewBoltCache(filename string) (*BoltCache, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(objectBucket)
		return errors.Wrap(err, "creating objects bucket")
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return &BoltCache{db: db}, nil
}

// Get implements Cache.
func (bc *BoltCache) Get(ref string) (*Object, error) {
	var val []byte
	err := bc.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(objectBucket).Get([]byte(ref)); v != nil {
			// v is only valid for the life of the transaction
			val = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ref)
	}
	if val == nil {
		return nil, nil
	}
	obj := &Object{}
	if err := json.Unmarshal(val, obj); err != nil {
		return nil, errors.Wrapf(err, "decoding cached %s", ref)
	}
	return obj, nil
}

// Put implements Cache.
func (bc *BoltCache) Put(ref string, obj *Object) error {
	val, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", ref)
	}
	err = bc.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(objectBucket).Put([]byte(ref), val)
	})
	return errors.Wrapf(err, "storing %s", ref)
}

// Close syncs and closes the underlying db.
func (bc *BoltCache) Close() error {
	err := bc.db.Sync()
	if err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return bc.db.Close()
}
