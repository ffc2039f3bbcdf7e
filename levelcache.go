package qsip

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelCache is a Cache which stores objects as JSON in a leveldb directory.
type LevelCache struct {
	db *leveldb.DB
}

// NewLevelCache opens (creating if needed) a leveldb under dirname.
func NewLevelCache(dirname string) (*LevelCache, error) {
	err := os.MkdirAll(dirname, 0700)
	if err != nil {
		return nil, errors.Wrap(err, "making directory")
	}
	db, err := leveldb.OpenFile(dirname, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %v", dirname)
	}
	return &LevelCache{db: db}, nil
}

// Get implements Cache.
func (lc *LevelCache) Get(ref string) (*Object, error) {
	data, err := lc.db.Get([]byte(ref), &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ref)
	}
	obj := &Object{}
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errors.Wrapf(err, "decoding cached %s", ref)
	}
	return obj, nil
}

// Put implements Cache.
func (lc *LevelCache) Put(ref string, obj *Object) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", ref)
	}
	return errors.Wrapf(lc.db.Put([]byte(ref), data, &opt.WriteOptions{}), "storing %s", ref)
}

// Close implements Cache.
func (lc *LevelCache) Close() error {
	return errors.Wrap(lc.db.Close(), "closing leveldb")
}
