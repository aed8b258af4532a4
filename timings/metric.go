package timings

import (
	"time"

	"golang.org/x/xerrors"
)

// ErrNoRuns means a metric is being reported before anything was added to it.
var ErrNoRuns = xerrors.New("no runs recorded")

type Metric struct {
	Count int
	Sum   time.Duration
}

func (m *Metric) Add(v time.Duration) {
	m.Count++
	m.Sum += v
}

func (m *Metric) Mean() (time.Duration, error) {
	if m.Count == 0 {
		return 0, ErrNoRuns
	}
	return m.Sum / time.Duration(m.Count), nil
}
