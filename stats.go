package qsip

import "time"

// Statter is the interface that stats collectors must implement to get stats
// out of a Pipeline.
type Statter interface {
	Count(name string, value int64, tags ...string)
	Timing(name string, value time.Duration, tags ...string)
}

// NopStatter does nothing.
type NopStatter struct{}

// Count does nothing.
func (NopStatter) Count(name string, value int64, tags ...string) {}

// Timing does nothing.
func (NopStatter) Timing(name string, value time.Duration, tags ...string) {}
