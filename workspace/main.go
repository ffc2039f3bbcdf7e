package workspace

import (
	"context"
	"io"
	"os"

	"github.com/kbaseapps/qsip"
	"github.com/kbaseapps/qsip/json"
	"github.com/pkg/errors"
)

// Connect builds a Fetcher for the deployment at endpoint, backed by a cache
// of the given kind ("", "bolt" or "level"). The returned func closes the
// cache.
func Connect(endpoint, token, cacheKind, cachePath string, log qsip.Logger) (*Fetcher, func() error, error) {
	if err := qsip.RequireToken(token); err != nil {
		return nil, nil, err
	}
	client, err := NewClient(endpoint, token)
	if err != nil {
		return nil, nil, err
	}
	cache, err := qsip.OpenCache(cacheKind, cachePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening cache")
	}
	closeCache := func() error { return nil }
	if cache != nil {
		closeCache = cache.Close
	}
	return NewFetcher(client, cache, log), closeCache, nil
}

// Main contains the configuration for fetching objects to line separated
// JSON, the format read by the file source.
type Main struct {
	Endpoint    string   `help:"KBase services endpoint, e.g. https://kbase.us/services/"`
	Token       string   `help:"KBase auth token."`
	Refs        []string `help:"Comma separated list of object references to fetch. Overrides the three data references."`
	SourceData  string   `help:"Reference of the source data object."`
	SampleData  string   `help:"Reference of the sample set."`
	FeatureData string   `help:"Reference of the feature matrix."`
	Cache       string   `help:"Cache fetched objects in bolt or level. Blank disables the cache."`
	CachePath   string   `help:"Path of the cache file (bolt) or directory (level)."`
	Out         string   `help:"File to write objects to. Blank writes to stdout."`

	Log    qsip.Logger `flag:"-"`
	Stdout io.Writer   `flag:"-"`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Endpoint:  "https://kbase.us/services/",
		CachePath: "qsip.cache",
		Log:       qsip.NopLogger{},
		Stdout:    os.Stdout,
	}
}

// Run fetches the configured objects and writes them out in request order.
func (m *Main) Run(ctx context.Context) (err error) {
	refs := m.Refs
	if len(refs) == 0 {
		p := qsip.Params{SourceData: m.SourceData, SampleData: m.SampleData, FeatureData: m.FeatureData}
		if err := p.Validate(); err != nil {
			return err
		}
		refs = p.Refs()
	}

	fetcher, closeCache, err := Connect(m.Endpoint, m.Token, m.Cache, m.CachePath, m.Log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeCache(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing cache")
		}
	}()

	objs, err := fetcher.Fetch(ctx, refs)
	if err != nil {
		return errors.Wrap(err, "fetching")
	}

	out := m.Stdout
	if m.Out != "" {
		f, err := os.Create(m.Out)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		out = f
	}
	w := json.NewWriter(out)
	for _, ref := range objs.Refs() {
		obj, _ := objs.Get(ref)
		if err := w.Write(obj); err != nil {
			return errors.Wrapf(err, "writing %s", ref)
		}
	}
	m.Log.Printf("wrote %d objects", objs.Len())
	return nil
}
