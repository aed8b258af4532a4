package timings

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const DefaultPrecision = 6

var ErrUnknownFormat = xerrors.New("unknown report format")

type Formatter interface {
	Format(w io.Writer, entries []Entry) error
}

// Seconds renders d as seconds with prec decimals. Negative prec means the
// shortest exact representation.
func Seconds(d time.Duration, prec int) string {
	return strconv.FormatFloat(d.Seconds(), 'f', prec, 64)
}

// LineFormat prints one "<name> with <runs> runs: <mean>s" line per entry.
type LineFormat struct {
	Precision int
}

func (f LineFormat) Format(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s with %d runs: %ss\n", e.Name, e.Runs, Seconds(e.Mean, f.Precision)); err != nil {
			return xerrors.Errorf("write %s: %w", e.Name, err)
		}
	}
	return nil
}

type TableFormat struct {
	Precision int
}

func (f TableFormat) Format(w io.Writer, entries []Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header("Lap", "Runs", "Mean (s)", "Total (s)")
	for _, e := range entries {
		if err := table.Append(
			e.Name,
			strconv.Itoa(e.Runs),
			Seconds(e.Mean, f.Precision),
			Seconds(e.Total, f.Precision),
		); err != nil {
			return xerrors.Errorf("append %s: %w", e.Name, err)
		}
	}
	if err := table.Render(); err != nil {
		return xerrors.Errorf("render: %w", err)
	}
	return nil
}

type yamlEntry struct {
	Name  string  `yaml:"name"`
	Runs  int     `yaml:"runs"`
	Mean  float64 `yaml:"mean_seconds"`
	Total float64 `yaml:"total_seconds"`
}

type YAMLFormat struct{}

func (YAMLFormat) Format(w io.Writer, entries []Entry) error {
	out := make([]yamlEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, yamlEntry{
			Name:  e.Name,
			Runs:  e.Runs,
			Mean:  e.Mean.Seconds(),
			Total: e.Total.Seconds(),
		})
	}
	contents, err := yaml.Marshal(out)
	if err != nil {
		return xerrors.Errorf("marshal: %w", err)
	}
	if _, err := w.Write(contents); err != nil {
		return xerrors.Errorf("write: %w", err)
	}
	return nil
}

// ParseFormat maps a config name ("lines", "table", "yaml") to a formatter.
func ParseFormat(name string, precision int) (Formatter, error) {
	switch name {
	case "", "lines":
		return LineFormat{Precision: precision}, nil
	case "table":
		return TableFormat{Precision: precision}, nil
	case "yaml":
		return YAMLFormat{}, nil
	}
	return nil, xerrors.Errorf("%q: %w", name, ErrUnknownFormat)
}
