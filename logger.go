package qsip

import (
	"log"
	"strings"
	"sync"
)

// Logger is the interface that loggers must implement to get qsip logs.
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// NopLogger logs nothing.
type NopLogger struct{}

// Printf does nothing.
func (NopLogger) Printf(format string, v ...interface{}) {}

// Debugf does nothing.
func (NopLogger) Debugf(format string, v ...interface{}) {}

// StdLogger only prints on Printf.
type StdLogger struct {
	*log.Logger
}

// Printf implements Logger interface.
func (s StdLogger) Printf(format string, v ...interface{}) {
	s.Logger.Printf(format, v...)
}

// Debugf implements Logger interface, but prints nothing.
func (StdLogger) Debugf(format string, v ...interface{}) {}

// VerboseLogger prints on both Printf and Debugf.
type VerboseLogger struct {
	*log.Logger
}

// Printf implements Logger interface.
func (s VerboseLogger) Printf(format string, v ...interface{}) {
	s.Logger.Printf(format, v...)
}

// Debugf implements Logger interface.
func (s VerboseLogger) Debugf(format string, v ...interface{}) {
	s.Logger.Printf(format, v...)
}

// Diagnostic describes a non-fatal oddity found while converting an object.
type Diagnostic struct {
	Ref      string
	SampleID string
	Class    string // metadata class, "user" or "controlled"
	Key      string
	Keys     []string // keys found in the unrecognized value descriptor
}

func (d Diagnostic) String() string {
	return d.Ref + ": unrecognised configuration for sample " + d.SampleID +
		" " + d.Class + " key '" + d.Key + "': keys: " + strings.Join(d.Keys, ", ")
}

// Warner receives diagnostics. Implementations must be safe to call from a
// single conversion goroutine; WarningCollector is also safe for concurrent
// use.
type Warner interface {
	Warn(d Diagnostic)
}

// LogWarner writes every diagnostic to a Logger.
type LogWarner struct {
	Log Logger
}

// Warn implements Warner.
func (w LogWarner) Warn(d Diagnostic) {
	w.Log.Printf("%s", d)
}

// WarningCollector keeps every diagnostic it receives.
type WarningCollector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Warn implements Warner.
func (c *WarningCollector) Warn(d Diagnostic) {
	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
}

// Diagnostics returns a copy of the collected diagnostics in arrival order.
func (c *WarningCollector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	ret := make([]Diagnostic, len(c.diags))
	copy(ret, c.diags)
	return ret
}
