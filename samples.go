package qsip

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// metadataClasses are the metadata classes of a sample node, in the order in
// which they are flattened. A key present in both classes ends up with the
// controlled value.
var metadataClasses = []string{"user", "controlled"}

// SampleSetConverter flattens the samples of a sample set into one record per
// sample.
//
// Each sample carries a node_tree. The node whose id equals the sample name
// (the self node) holds the sample type and its user and controlled
// metadata, which are lifted onto the record.
type SampleSetConverter struct {
	// Warner receives a Diagnostic for every metadata value which is neither
	// {value} nor {value, units}. May be nil.
	Warner Warner
}

// Convert implements Converter.
func (c *SampleSetConverter) Convert(obj *Object) (*Conversion, error) {
	upa, err := obj.UPA()
	if err != nil {
		return nil, err
	}
	samples, ok := mapList(obj.Data["sample_data"])
	if !ok || len(samples) == 0 {
		return nil, errors.Errorf("%s: no 'data.sample_data' field found", upa)
	}

	keys := &KeyClassification{
		User:       NewStringSet(),
		Controlled: NewStringSet(),
	}
	all := NewStringSet()
	records := make([]Record, 0, len(samples))
	for _, sample := range samples {
		rec, err := c.flatten(upa, sample, keys)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		for k := range rec {
			all.Add(k)
		}
	}

	return &Conversion{
		FieldNames: all,
		DataList:   records,
		Keys:       keys,
	}, nil
}

// flatten builds the record for one sample. It works on a deep copy so that
// node data shared between samples, or with the caller, is never modified.
func (c *SampleSetConverter) flatten(upa string, sample map[string]interface{}, keys *KeyClassification) (Record, error) {
	rec := Record(deepcopy.Copy(sample).(map[string]interface{}))
	nodes, _ := mapList(rec["node_tree"])
	delete(rec, "node_tree")

	// a sample without a string name has no self node
	name, named := sample["name"].(string)
	var self map[string]interface{}
	matches := 0
	for _, node := range nodes {
		if id, ok := node["id"].(string); ok && named && id == name {
			self = node
			matches++
		}
	}
	if matches != 1 {
		return nil, errors.Errorf("%s: incorrect number of sample node trees for sample %v, %v", upa, sample["id"], sample["name"])
	}

	rec["type"] = self["type"]

	for _, class := range metadataClasses {
		meta, ok := self["meta_"+class].(map[string]interface{})
		if !ok || len(meta) == 0 {
			continue
		}
		classKeys := keys.User
		if class == "controlled" {
			classKeys = keys.Controlled
		}
		for _, key := range sortedKeys(meta) {
			classKeys.Add(key)
			val, recognized := renderMetaValue(meta[key])
			if !recognized && c.Warner != nil {
				c.Warner.Warn(Diagnostic{
					Ref:      upa,
					SampleID: fmt.Sprint(sample["id"]),
					Class:    class,
					Key:      key,
					Keys:     descriptorKeys(meta[key]),
				})
			}
			rec[key] = val
		}
	}
	return rec, nil
}

// renderMetaValue renders a metadata value descriptor. {value, units} becomes
// "<value> <units>" and {value} becomes the bare value. Anything else is
// serialized to JSON and reported as unrecognized.
func renderMetaValue(desc interface{}) (val interface{}, recognized bool) {
	if m, ok := desc.(map[string]interface{}); ok {
		v, hasValue := m["value"]
		u, hasUnits := m["units"]
		switch {
		case len(m) == 2 && hasValue && hasUnits:
			return FormatValue(v) + " " + FormatValue(u), true
		case len(m) == 1 && hasValue:
			return v, true
		}
	}
	b, err := json.MarshalIndent(desc, "", "")
	if err != nil {
		return fmt.Sprint(desc), false
	}
	return string(b), false
}

func descriptorKeys(desc interface{}) []string {
	m, ok := desc.(map[string]interface{})
	if !ok {
		return nil
	}
	return sortedKeys(m)
}

func sortedKeys(m map[string]interface{}) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// mapList converts a decoded JSON array of objects into a slice of maps. It
// returns false if v is not such an array.
func mapList(v interface{}) ([]map[string]interface{}, bool) {
	switch vt := v.(type) {
	case []map[string]interface{}:
		return vt, true
	case []Record:
		ret := make([]map[string]interface{}, len(vt))
		for i, r := range vt {
			ret[i] = r
		}
		return ret, true
	case []interface{}:
		ret := make([]map[string]interface{}, 0, len(vt))
		for _, item := range vt {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, false
			}
			ret = append(ret, m)
		}
		return ret, true
	default:
		return nil, false
	}
}
