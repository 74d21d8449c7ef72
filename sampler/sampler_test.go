package sampler

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"fsyncbench/elapsed"
	"fsyncbench/serr"
	"fsyncbench/target"
)

type fakeSyncer struct {
	buf      bytes.Buffer
	writes   int
	syncs    int
	failW    int // 1-based iteration whose write fails; 0 never
	failS    int
	short    bool
	unsynced int
}

func (f *fakeSyncer) Write(b []byte) (int, error) {
	f.writes++
	if f.writes == f.failW {
		return 0, unix.ENOSPC
	}
	if f.short {
		f.buf.Write(b[:len(b)-1])
		return len(b) - 1, nil
	}
	f.unsynced += len(b)
	return f.buf.Write(b)
}

func (f *fakeSyncer) Sync() error {
	f.syncs++
	if f.syncs == f.failS {
		return unix.EIO
	}
	f.unsynced = 0
	return nil
}

// A clock that advances by the given steps, in microseconds.
func stepClock(steps ...int64) func() elapsed.Tstamp {
	var us int64
	i := 0
	return func() elapsed.Tstamp {
		ts := elapsed.MkTstamp(1000+us/1000000, us%1000000)
		us += steps[i%len(steps)]
		i++
		return ts
	}
}

func TestRunLength(t *testing.T) {
	for _, n := range []int{1, 2, 5, 100, 1000} {
		f := &fakeSyncer{}
		r, err := NewSampler(f, n, 512).Run()
		require.Nil(t, err)
		assert.Equal(t, n, len(r.Samples))
		assert.Equal(t, n, f.writes)
		assert.Equal(t, n, f.syncs)
		assert.Equal(t, 0, f.unsynced)
		assert.Equal(t, n*512, f.buf.Len())
		for _, us := range r.Samples {
			assert.True(t, us >= 0)
		}
	}
}

func TestBufferContents(t *testing.T) {
	f := &fakeSyncer{}
	_, err := NewSampler(f, 3, 16).Run()
	require.Nil(t, err)
	assert.Equal(t, bytes.Repeat([]byte{FILL}, 48), f.buf.Bytes())
}

func TestSamplesInOrder(t *testing.T) {
	f := &fakeSyncer{}
	s := NewSampler(f, 3, 8)
	// start/stop pairs: 10us, 20us, 30us with 5us gaps between iterations.
	s.now = stepClock(10, 5, 20, 5, 30, 5)
	r, err := s.Run()
	require.Nil(t, err)
	assert.Equal(t, SampleSet{10, 20, 30}, r.Samples)
}

func TestWriteFails(t *testing.T) {
	f := &fakeSyncer{failW: 3}
	r, err := NewSampler(f, 10, 64).Run()
	assert.Nil(t, r)
	assert.True(t, serr.IsErrCode(err, serr.TErrIO), "err %v", err)
	assert.True(t, errors.Is(err, unix.ENOSPC))
	assert.Contains(t, err.Error(), "write iter 2")
	assert.Equal(t, 3, f.writes)
	assert.Equal(t, 2, f.syncs)
}

func TestSyncFails(t *testing.T) {
	f := &fakeSyncer{failS: 3}
	r, err := NewSampler(f, 10, 64).Run()
	assert.Nil(t, r)
	assert.True(t, serr.IsErrCode(err, serr.TErrIO), "err %v", err)
	assert.True(t, errors.Is(err, unix.EIO))
	assert.Contains(t, err.Error(), "fsync iter 2")
	assert.Equal(t, 3, f.writes)
	assert.Equal(t, 3, f.syncs)
}

func TestShortWrite(t *testing.T) {
	f := &fakeSyncer{short: true}
	_, err := NewSampler(f, 10, 64).Run()
	assert.True(t, serr.IsErrCode(err, serr.TErrIO))
	assert.True(t, errors.Is(err, io.ErrShortWrite))
	assert.Equal(t, 1, f.writes)
	assert.Equal(t, 0, f.syncs)
}

func TestClockBackward(t *testing.T) {
	f := &fakeSyncer{}
	s := NewSampler(f, 5, 8)
	s.now = stepClock(10, 10, -100)
	r, err := s.Run()
	assert.Nil(t, r)
	assert.True(t, serr.IsErrCode(err, serr.TErrClock), "err %v", err)
}

func TestRealFile(t *testing.T) {
	pn := filepath.Join(t.TempDir(), "f")
	require.Nil(t, os.WriteFile(pn, nil, 0644))
	f, err := target.Open(pn)
	require.Nil(t, err)
	defer f.Close()

	r, err := NewSampler(f, 20, 4096).Run()
	require.Nil(t, err)
	assert.Equal(t, 20, len(r.Samples))
	assert.True(t, r.Total > 0)
	st, err := os.Stat(pn)
	require.Nil(t, err)
	assert.Equal(t, int64(20*4096), st.Size())
}

func TestThroughput(t *testing.T) {
	tpt, err := Throughput(1000, 2500*time.Millisecond)
	assert.Nil(t, err)
	assert.Equal(t, int64(500), tpt, "floor of 2.5s is 2s")

	tpt, err = Throughput(7, 3*time.Second)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), tpt)

	_, err = Throughput(1000, 999*time.Millisecond)
	assert.True(t, serr.IsErrCode(err, serr.TErrUndefined), "err %v", err)
	_, err = Throughput(1000, 0)
	assert.True(t, serr.IsErrCode(err, serr.TErrUndefined))
}

func TestRate(t *testing.T) {
	r := &Trun{Samples: make(SampleSet, 100), Total: 500 * time.Millisecond}
	assert.InDelta(t, 200.0, r.Rate(), 1e-9)
	assert.Equal(t, 0.0, (&Trun{}).Rate())
}
