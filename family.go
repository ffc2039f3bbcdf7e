package qsip

import (
	"strings"
)

// Family is the schema family of a workspace object, which decides how it is
// converted.
type Family int

const (
	FamilyUnknown Family = iota
	FamilySampleSet
	FamilyMatrix
)

// familyKeywords maps each known family to the substring which identifies it
// inside a workspace type tag, e.g. "KBaseSets.SampleSet-2.0" or
// "KBaseMatrices.AmpliconMatrix-1.0".
var familyKeywords = []struct {
	family  Family
	keyword string
}{
	{FamilySampleSet, "SampleSet"},
	{FamilyMatrix, "Matrix"},
}

func (f Family) String() string {
	switch f {
	case FamilySampleSet:
		return "SampleSet"
	case FamilyMatrix:
		return "Matrix"
	default:
		return "Unknown"
	}
}

// ParseFamily determines the family of a type tag. It fails unless exactly
// one family keyword occurs in the tag.
func ParseFamily(typeTag string) (Family, error) {
	found := make([]Family, 0, 1)
	for _, fk := range familyKeywords {
		if strings.Contains(typeTag, fk.keyword) {
			found = append(found, fk.family)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return FamilyUnknown, ErrNoFamily
	default:
		return FamilyUnknown, ErrAmbiguousFamily
	}
}

const (
	// ErrNoFamily is returned by ParseFamily when no family keyword matches.
	ErrNoFamily = Error("no family keyword in type tag")
	// ErrAmbiguousFamily is returned by ParseFamily when more than one family
	// keyword matches.
	ErrAmbiguousFamily = Error("multiple family keywords in type tag")
)
