package qsip

import (
	"fmt"

	"github.com/pkg/errors"
)

// Params names the three workspace objects a qSIP analysis is built from.
type Params struct {
	SourceData  string `json:"source_data"`
	SampleData  string `json:"sample_data"`
	FeatureData string `json:"feature_data"`
}

// Validate checks that every object is named and that the three references
// are distinct.
func (p Params) Validate() error {
	for _, req := range []struct {
		name, ref string
	}{
		{"source", p.SourceData},
		{"sample", p.SampleData},
		{"feature", p.FeatureData},
	} {
		if req.ref == "" {
			return Error(fmt.Sprintf("%s_data parameter not found!", req.name))
		}
	}
	if n := len(NewStringSet(p.Refs()...)); n != 3 {
		return Error(fmt.Sprintf("Only found %d unique KBase objects to fetch. Check your parameters and rerun the app.", n))
	}
	for _, ref := range p.Refs() {
		if _, err := ParseRef(ref); err != nil {
			return errors.Wrap(err, "parsing parameters")
		}
	}
	return nil
}

// Refs returns the source, sample and feature references in that order.
func (p Params) Refs() []string {
	return []string{p.SourceData, p.SampleData, p.FeatureData}
}

// ErrNoToken is returned when an operation that reads workspace data is set
// up without an auth token.
const ErrNoToken = Error("Auth token required to access workspace data")

// RequireToken fails with ErrNoToken if token is empty.
func RequireToken(token string) error {
	if token == "" {
		return ErrNoToken
	}
	return nil
}
