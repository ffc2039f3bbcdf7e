package workspace

import (
	"context"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/kbaseapps/qsip"
	"github.com/pkg/errors"
)

// Fetcher retrieves workspace objects by reference and resolves the sample
// bodies of sample sets, so that the objects it returns are ready for
// conversion.
type Fetcher struct {
	Client *Client
	Cache  qsip.Cache // optional
	Log    qsip.Logger
}

// NewFetcher gets a Fetcher using client. cache may be nil.
func NewFetcher(client *Client, cache qsip.Cache, log qsip.Logger) *Fetcher {
	if log == nil {
		log = qsip.NopLogger{}
	}
	return &Fetcher{
		Client: client,
		Cache:  cache,
		Log:    log,
	}
}

type objectSpec struct {
	Ref string `json:"ref"`
}

type getObjectsParams struct {
	Objects                   []objectSpec `json:"objects"`
	IgnoreErrors              int          `json:"ignoreErrors"`
	Infostruct                int          `json:"infostruct"`
	SkipExternalSystemUpdates int          `json:"skip_external_system_updates"`
}

type objectData struct {
	Data       map[string]interface{} `json:"data"`
	Info       *qsip.Info             `json:"info"`
	Infostruct *qsip.Info             `json:"infostruct"`
}

type getObjectsResult struct {
	Data []*objectData `json:"data"`
}

type sampleSpec struct {
	ID      interface{} `json:"id"`
	Version interface{} `json:"version"`
}

type getSamplesParams struct {
	Samples []sampleSpec `json:"samples"`
}

// Fetch returns the objects named by refs, keyed by their reference, in the
// order requested. It fails if any reference cannot be retrieved, naming all
// of them.
func (f *Fetcher) Fetch(ctx context.Context, refs []string) (*qsip.ObjectSet, error) {
	fetched := make(map[string]*qsip.Object, len(refs))
	toFetch := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := fetched[ref]; ok {
			continue
		}
		if f.Cache != nil {
			obj, err := f.Cache.Get(ref)
			if err != nil {
				return nil, errors.Wrap(err, "reading cache")
			}
			if obj != nil {
				f.Log.Debugf("cache hit for %s", ref)
				fetched[ref] = obj
				continue
			}
		}
		fetched[ref] = nil
		toFetch = append(toFetch, ref)
	}

	if len(toFetch) > 0 {
		objs, err := f.fetchObjects(ctx, toFetch)
		if err != nil {
			return nil, err
		}
		for i, ref := range toFetch {
			fetched[ref] = objs[i]
			if f.Cache != nil {
				if err := f.Cache.Put(ref, objs[i]); err != nil {
					return nil, errors.Wrap(err, "writing cache")
				}
			}
		}
	}

	out := qsip.NewObjectSet()
	for _, ref := range refs {
		obj := fetched[ref]
		upa, err := obj.UPA()
		if err != nil {
			return nil, errors.Wrapf(err, "object %s", ref)
		}
		out.Set(upa, obj)
	}
	return out, nil
}

// fetchObjects gets refs from the workspace, returning objects in the same
// order, with sample sets already populated.
func (f *Fetcher) fetchObjects(ctx context.Context, refs []string) ([]*qsip.Object, error) {
	params := getObjectsParams{
		Objects:                   make([]objectSpec, len(refs)),
		IgnoreErrors:              1,
		Infostruct:                1,
		SkipExternalSystemUpdates: 1,
	}
	for i, ref := range refs {
		params.Objects[i] = objectSpec{Ref: ref}
	}
	var res getObjectsResult
	if err := f.Client.call(ctx, workspaceService, "get_objects2", params, &res); err != nil {
		return nil, err
	}

	missing := make([]string, 0)
	objs := make([]*qsip.Object, len(refs))
	for i, ref := range refs {
		if i >= len(res.Data) || res.Data[i] == nil {
			missing = append(missing, ref)
			continue
		}
		od := res.Data[i]
		info := od.Infostruct
		if info == nil {
			info = od.Info
		}
		objs[i] = &qsip.Object{Info: info, Data: od.Data}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("The following KBase objects could not be retrieved: %s", strings.Join(missing, ", "))
	}

	var errs *multierror.Error
	for _, obj := range objs {
		if fam, err := qsip.ParseFamily(obj.Type()); err != nil || fam != qsip.FamilySampleSet {
			continue
		}
		samples, err := f.fetchSamples(ctx, obj.Data["samples"])
		if err != nil {
			upa, _ := obj.UPA()
			errs = multierror.Append(errs, errors.Wrapf(err, "fetching samples for %s", upa))
			continue
		}
		if obj.Data == nil {
			obj.Data = make(map[string]interface{})
		}
		obj.Data["sample_data"] = samples
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	f.Log.Printf("fetched %d objects from the workspace", len(objs))
	return objs, nil
}

// fetchSamples retrieves the full sample bodies for the sample list of a
// sample set.
func (f *Fetcher) fetchSamples(ctx context.Context, sampleList interface{}) ([]interface{}, error) {
	list, ok := sampleList.([]interface{})
	if !ok {
		return nil, errors.New("no 'data.samples' list found")
	}
	params := getSamplesParams{Samples: make([]sampleSpec, 0, len(list))}
	for _, item := range list {
		s, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("malformed sample reference %v", item)
		}
		params.Samples = append(params.Samples, sampleSpec{ID: s["id"], Version: s["version"]})
	}
	var samples []interface{}
	if err := f.Client.call(ctx, sampleService, "get_samples", params, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}
