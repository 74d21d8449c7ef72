// Package report prints run results in the legacy text format that
// existing harnesses scrape, and as key/value documents.
package report

import (
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"

	db "fsyncbench/debug"
	"fsyncbench/latstats"
)

type Report struct {
	BlockSize int
	N         int
	Start     time.Time
	Total     time.Duration
	Tpt       int64
	TptOK     bool
	Rate      float64
	Stats     latstats.LatencyStats
	Summary   *latstats.Summary
}

func (r *Report) String() string {
	return fmt.Sprintf("&{ bsz:%d n:%d total:%v tpt:%d ok:%v stats:%v }", r.BlockSize, r.N, r.Total, r.Tpt, r.TptOK, r.Stats)
}

// WriteHeader prints the lines shown before the run starts.
func (r *Report) WriteHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Fsync %d bytes x %d times.\nCurrent Time: %s\n", r.BlockSize, r.N, r.Start.Format(time.ANSIC))
	return err
}

func (r *Report) rateLine() string {
	if !r.TptOK {
		return fmt.Sprintf("block_size: %d, undefined fsync/sec\n", r.BlockSize)
	}
	return fmt.Sprintf("block_size: %d, %d fsync/sec\n", r.BlockSize, r.Tpt)
}

// WriteText prints the rate and latency lines. With verbose set it
// appends the extended summary.
func (r *Report) WriteText(w io.Writer, verbose bool) error {
	db.DPrintf(db.REPORT, "WriteText %v", r)
	s := "\n" + r.rateLine()
	s += fmt.Sprintf("Latency\nAvg: %d, P95: %d, P99: %d, Max: %d\n", r.Stats.Avg, r.Stats.P95, r.Stats.P99, r.Stats.Max)
	if verbose && r.Summary != nil {
		s += fmt.Sprintf("Summary\nBlock: %s, Written: %s, Elapsed: %v, Rate: %.1f fsync/sec\nMin: %d, Median: %.1f, StdDev: %.1f\n",
			humanize.IBytes(uint64(r.BlockSize)),
			humanize.IBytes(uint64(r.BlockSize)*uint64(r.N)),
			r.Total, r.Rate, r.Summary.Min, r.Summary.Median, r.Summary.StdDev)
	}
	_, err := io.WriteString(w, s)
	return err
}

// Result is the key/value form of the report.
func (r *Report) Result() Tresult {
	res := make(Tresult)
	if r.TptOK {
		res[Key(r.BlockSize, RATE)] = r.Tpt
	}
	res[Key(r.BlockSize, LAT_AVG)] = r.Stats.Avg
	res[Key(r.BlockSize, LAT_P95)] = r.Stats.P95
	res[Key(r.BlockSize, LAT_P99)] = r.Stats.P99
	res[Key(r.BlockSize, LAT_MAX)] = r.Stats.Max
	return res
}
