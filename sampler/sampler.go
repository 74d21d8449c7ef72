// Package sampler times write+fsync pairs against a target.
package sampler

import (
	"fmt"
	"io"
	"time"

	db "fsyncbench/debug"
	"fsyncbench/elapsed"
	"fsyncbench/serr"
)

// FILL is the byte pattern of the write buffer.
const FILL byte = 1

// Syncer is the handle under test. Sync must not return until the data
// written so far is on stable storage.
type Syncer interface {
	io.Writer
	Sync() error
}

// SampleSet holds one latency in microseconds per iteration, in
// iteration order.
type SampleSet []int64

type Trun struct {
	Samples SampleSet
	Total   time.Duration
}

func (r *Trun) String() string {
	return fmt.Sprintf("&{ n:%d total:%v }", len(r.Samples), r.Total)
}

// Rate is the exact number of write+fsync pairs per second.
func (r *Trun) Rate() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / r.Total.Seconds()
}

type Sampler struct {
	w       Syncer
	buf     []byte
	samples SampleSet
	now     func() elapsed.Tstamp
}

func NewSampler(w Syncer, n, bsz int) *Sampler {
	s := &Sampler{}
	s.w = w
	s.buf = make([]byte, bsz)
	for i := range s.buf {
		s.buf[i] = FILL
	}
	s.samples = make(SampleSet, n)
	s.now = elapsed.Now
	return s
}

// Run performs len(samples) write+fsync iterations. The first failure
// aborts the run and no samples are returned.
func (s *Sampler) Run() (*Trun, error) {
	db.DPrintf(db.SAMPLER, "Run n %d bsz %d", len(s.samples), len(s.buf))
	t0 := time.Now()
	for i := range s.samples {
		start := s.now()
		n, err := s.w.Write(s.buf)
		if err == nil && n < len(s.buf) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return nil, s.fail("write", i, err)
		}
		if err := s.w.Sync(); err != nil {
			return nil, s.fail("fsync", i, err)
		}
		stop := s.now()
		us, ok := elapsed.Usecs(stop, start).Usecs()
		if !ok {
			db.DPrintf(db.SAMPLER, "iter %d stop %v < start %v", i, stop, start)
			return nil, serr.MkErr(serr.TErrClock, fmt.Sprintf("iter %d", i))
		}
		s.samples[i] = us
	}
	r := &Trun{Samples: s.samples, Total: time.Since(t0)}
	db.DPrintf(db.SAMPLER, "Done %v", r)
	return r, nil
}

func (s *Sampler) fail(op string, i int, err error) error {
	db.DPrintf(db.FSYNC_ERR, "%v iter %d err %v", op, i, err)
	return serr.MkErrError(serr.TErrIO, fmt.Sprintf("%v iter %d", op, i), err)
}

// Throughput is n divided by the whole seconds in total. A run shorter
// than one second has no such rate.
func Throughput(n int, total time.Duration) (int64, error) {
	secs := int64(total / time.Second)
	if secs <= 0 {
		return 0, serr.MkErr(serr.TErrUndefined, fmt.Sprintf("throughput: %d ops in %v", n, total))
	}
	return int64(n) / secs, nil
}
