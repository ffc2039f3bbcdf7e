// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

// Package termstat provides a qsip.Statter which writes its statistics to the
// terminal. It is meant for watching a conversion run in lieu of an actual
// collector writing to an external tool.
package termstat

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector collects stats and prints them to the terminal.
type Collector struct {
	lock    sync.Mutex
	indexes map[string]int
	names   []string
	stats   []int64
	timings map[string]time.Duration
	out     io.Writer
}

// NewCollector initializes and returns a new Collector writing to out.
func NewCollector(out io.Writer) *Collector {
	return &Collector{
		indexes: make(map[string]int),
		timings: make(map[string]time.Duration),
		out:     out,
	}
}

// statName appends sorted tags to name, e.g. "records.written[type:x]".
func statName(name string, tags []string) string {
	if len(tags) == 0 {
		return name
	}
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)
	return name + "[" + strings.Join(sorted, ",") + "]"
}

// Count adds value to the named stat.
func (t *Collector) Count(name string, value int64, tags ...string) {
	name = statName(name, tags)
	t.lock.Lock()
	defer t.lock.Unlock()

	idx, ok := t.indexes[name]
	if !ok {
		idx = len(t.stats)
		t.stats = append(t.stats, 0)
		t.names = append(t.names, name)
		t.indexes[name] = idx
	}
	t.stats[idx] += value
}

// Timing records the latest duration of the named step.
func (t *Collector) Timing(name string, value time.Duration, tags ...string) {
	name = statName(name, tags)
	t.lock.Lock()
	t.timings[name] = value
	t.lock.Unlock()
}

// Get returns the current value of a counter.
func (t *Collector) Get(name string, tags ...string) int64 {
	t.lock.Lock()
	defer t.lock.Unlock()
	idx, ok := t.indexes[statName(name, tags)]
	if !ok {
		return 0
	}
	return t.stats[idx]
}

// String renders the counters in the order they were first seen, followed by
// the timings in lexical order.
func (t *Collector) String() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	parts := make([]string, 0, len(t.stats)+len(t.timings))
	for i := 0; i < len(t.stats); i++ {
		parts = append(parts, fmt.Sprintf("%s: %d", t.names[i], t.stats[i]))
	}
	names := make([]string, 0, len(t.timings))
	for name := range t.timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, t.timings[name]))
	}
	return strings.Join(parts, " ")
}

// Flush writes the current stats to the output on a single line.
func (t *Collector) Flush() error {
	_, err := fmt.Fprintln(t.out, t.String())
	return err
}
