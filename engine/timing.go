//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/tabulate"
)

// Timing records timing samples and renders an execution report.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// Sample contains information about one timing sample.
type Sample struct {
	Label string
	Start time.Time
	End   time.Time
}

// NewTiming creates a new Timing instance.
func NewTiming() *Timing {
	return &Timing{
		Start: time.Now(),
	}
}

// Sample adds a timing sample with the label, covering the time since
// the previous sample.
func (t *Timing) Sample(label string) *Sample {
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	sample := &Sample{
		Label: label,
		Start: start,
		End:   time.Now(),
	}
	t.Samples = append(t.Samples, sample)
	return sample
}

// Print renders the execution report to w: per-phase durations and
// shares, then the work and transfer totals of the recursion tree.
func (t *Timing) Print(w io.Writer, stats *Stats) {
	if len(t.Samples) == 0 {
		return
	}

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)

	total := t.Samples[len(t.Samples)-1].End.Sub(t.Start)
	for _, sample := range t.Samples {
		duration := sample.End.Sub(sample.Start)

		row := tab.Row()
		row.Column(sample.Label)
		row.Column(duration.String())
		row.Column(fmt.Sprintf("%.2f%%",
			float64(duration)/float64(total)*100))
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)

	counters := []struct {
		label string
		value uint64
	}{
		{"Tasks", stats.Tasks.Load()},
		{"Leaf muls", stats.LeafMuls.Load()},
		{"Sent", stats.IO.Sent.Load()},
		{"Rcvd", stats.IO.Recvd.Load()},
	}
	for idx, counter := range counters {
		var prefix string
		if idx+1 >= len(counters) {
			prefix = "╰╴"
		} else {
			prefix = "├╴"
		}
		row = tab.Row()
		row.Column(prefix + counter.label).SetFormat(tabulate.FmtItalic)
		row.Column(fmt.Sprintf("%v", counter.value)).
			SetFormat(tabulate.FmtItalic)
		row.Column("").SetFormat(tabulate.FmtItalic)
	}

	tab.Print(w)
}
