// Package latstats aggregates fsync latency samples.
package latstats

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/slices"

	db "fsyncbench/debug"
	"fsyncbench/serr"
)

const (
	P95 = 0.95
	P99 = 0.99
)

// LatencyStats holds microsecond latencies of one run.
type LatencyStats struct {
	Avg int64 `json:"avg" yaml:"avg"`
	P95 int64 `json:"p95" yaml:"p95"`
	P99 int64 `json:"p99" yaml:"p99"`
	Max int64 `json:"max" yaml:"max"`
}

func (ls LatencyStats) String() string {
	return fmt.Sprintf("&{ avg:%d p95:%d p99:%d max:%d }", ls.Avg, ls.P95, ls.P99, ls.Max)
}

// Compute sorts a copy of samples and derives the run's statistics. The
// average truncates and each percentile indexes the sorted copy at the
// truncated position n*p.
func Compute(samples []int64) (LatencyStats, error) {
	n := len(samples)
	if n == 0 {
		return LatencyStats{}, serr.MkErr(serr.TErrArgs, "no samples")
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum int64
	for _, s := range sorted {
		sum += s
	}
	ls := LatencyStats{
		Avg: sum / int64(n),
		P95: sorted[pindex(n, P95)],
		P99: sorted[pindex(n, P99)],
		Max: sorted[n-1],
	}
	db.DPrintf(db.STATS, "Compute n %d sum %d %v", n, sum, ls)
	return ls, nil
}

func pindex(n int, p float64) int {
	i := int(float64(n) * p)
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Summary extends LatencyStats with the rest of the distribution.
type Summary struct {
	LatencyStats
	Min    int64   `json:"min" yaml:"min"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

func (s *Summary) String() string {
	return fmt.Sprintf("&{ %v min:%d median:%.1f stddev:%.1f }", s.LatencyStats, s.Min, s.Median, s.StdDev)
}

func Summarize(samples []int64) (*Summary, error) {
	ls, err := Compute(samples)
	if err != nil {
		return nil, err
	}
	lat := toFloats(samples)
	s := &Summary{LatencyStats: ls}
	m, err := stats.Min(lat)
	if err != nil {
		return nil, err
	}
	s.Min = int64(m)
	if s.Median, err = stats.Median(lat); err != nil {
		return nil, err
	}
	if s.StdDev, err = stats.StandardDeviation(lat); err != nil {
		return nil, err
	}
	return s, nil
}

func toFloats(samples []int64) stats.Float64Data {
	lat := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		lat[i] = float64(s)
	}
	return lat
}
