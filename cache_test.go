package qsip_test

import (
	"path/filepath"
	"testing"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/test"
)

func TestCaches(t *testing.T) {
	for _, kind := range []string{"bolt", "level"} {
		t.Run(kind, func(t *testing.T) {
			dir, cleanup := test.TempDir(t, "qsip-cache")
			defer cleanup()
			path := filepath.Join(dir, "cache")

			cache, err := qsip.OpenCache(kind, path)
			test.ErrNil(t, err, "OpenCache")

			obj, err := cache.Get("1/2/3")
			test.ErrNil(t, err, "Get on empty cache")
			if obj != nil {
				t.Fatalf("unexpected hit: %v", obj)
			}

			test.ErrNil(t, cache.Put("1/2/3", test.MatrixObject()), "Put")
			test.ErrNil(t, cache.Close(), "Close")

			// reopen to make sure the object was persisted
			cache, err = qsip.OpenCache(kind, path)
			test.ErrNil(t, err, "reopening")
			defer cache.Close()
			obj, err = cache.Get("1/2/3")
			test.ErrNil(t, err, "Get")
			test.MustBe(t, test.MatrixObject().Data, obj.Data)
			test.MustBe(t, "1/2/3", mustUPA(t, obj))
		})
	}
}

func TestOpenCacheKinds(t *testing.T) {
	cache, err := qsip.OpenCache("", "ignored")
	test.ErrNil(t, err, "no cache")
	if cache != nil {
		t.Fatalf("expected nil cache, got %v", cache)
	}
	_, err = qsip.OpenCache("redis", "ignored")
	test.ErrIs(t, err, "unknown cache 'redis'")
}
