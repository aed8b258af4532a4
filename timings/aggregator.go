// Package timings accumulates lap durations across many runs and reports
// per-lap run counts and mean durations.
package timings

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/baldisbk/slamdebug/chrono"
	"golang.org/x/xerrors"
)

// Entry is the aggregated view of one lap name.
type Entry struct {
	Name  string
	Runs  int
	Mean  time.Duration
	Total time.Duration
}

// Aggregator is safe for concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	metrics map[string]*Metric
}

func NewAggregator() *Aggregator {
	return &Aggregator{metrics: map[string]*Metric{}}
}

// AddTimes adds one run per timing. Repeated names within the same call are
// counted as separate runs.
func (a *Aggregator) AddTimes(times []chrono.Timing) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.metrics == nil {
		a.metrics = map[string]*Metric{}
	}
	for _, t := range times {
		m, ok := a.metrics[t.Name]
		if !ok {
			m = &Metric{}
			a.metrics[t.Name] = m
		}
		m.Add(t.Duration)
	}
}

// Reset forgets everything added so far.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metrics = map[string]*Metric{}
}

// Entries returns the aggregated laps sorted by name.
func (a *Aggregator) Entries() ([]Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := make([]Entry, 0, len(a.metrics))
	for name, m := range a.metrics {
		mean, err := m.Mean()
		if err != nil {
			return nil, xerrors.Errorf("lap %q: %w", name, err)
		}
		res = append(res, Entry{Name: name, Runs: m.Count, Mean: mean, Total: m.Sum})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

// Report writes the aggregated laps to w using f.
func (a *Aggregator) Report(w io.Writer, f Formatter) error {
	entries, err := a.Entries()
	if err != nil {
		return xerrors.Errorf("entries: %w", err)
	}
	if err := f.Format(w, entries); err != nil {
		return xerrors.Errorf("format: %w", err)
	}
	return nil
}
