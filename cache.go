package qsip

import "github.com/pkg/errors"

// Cache stores fetched workspace objects by reference so that repeated runs
// do not have to hit the workspace again. Get returns nil and a nil error on
// a miss. Implementations should be threadsafe.
type Cache interface {
	Get(ref string) (*Object, error)
	Put(ref string, obj *Object) error
	Close() error
}

// OpenCache opens a cache of the given kind, "bolt" or "level", at path. An
// empty kind means no cache and returns nil.
func OpenCache(kind, path string) (Cache, error) {
	switch kind {
	case "":
		return nil, nil
	case "bolt":
		bc, err := NewBoltCache(path)
		if err != nil {
			return nil, err
		}
		return bc, nil
	case "level":
		lc, err := NewLevelCache(path)
		if err != nil {
			return nil, err
		}
		return lc, nil
	default:
		return nil, errors.Errorf("unknown cache '%s'", kind)
	}
}
