// Package bench drives one fsync latency run: open the target, sample,
// aggregate, report.
package bench

import (
	"io"
	"time"

	db "fsyncbench/debug"
	"fsyncbench/latstats"
	"fsyncbench/report"
	"fsyncbench/sampler"
	"fsyncbench/serr"
	"fsyncbench/target"
)

// Run measures cfg.Path and writes the report to w. Nothing but the
// header is written if the run fails.
func Run(cfg *Tconfig, w io.Writer) (err error) {
	db.DPrintf(db.FSYNC, "Run %v", cfg)
	f, err := target.Open(cfg.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = serr.MkErrError(serr.TErrIO, "close "+cfg.Path, cerr)
		}
	}()
	return RunSyncer(cfg, f, w)
}

// RunSyncer is Run against an already open handle.
func RunSyncer(cfg *Tconfig, s sampler.Syncer, w io.Writer) error {
	rep := &report.Report{
		BlockSize: cfg.BlockSize,
		N:         cfg.N,
		Start:     time.Now(),
	}
	if cfg.Format == FMT_TEXT {
		if err := rep.WriteHeader(w); err != nil {
			return err
		}
	}

	run, err := sampler.NewSampler(s, cfg.N, cfg.BlockSize).Run()
	if err != nil {
		return err
	}
	rep.Total = run.Total
	rep.Rate = run.Rate()

	rep.Tpt, err = sampler.Throughput(cfg.N, run.Total)
	if err == nil {
		rep.TptOK = true
	} else if serr.IsErrCode(err, serr.TErrUndefined) {
		db.DPrintf(db.ALWAYS, "Warning: %v", err)
	} else {
		return err
	}

	if cfg.Verbose {
		rep.Summary, err = latstats.Summarize(run.Samples)
		if err != nil {
			return err
		}
		rep.Stats = rep.Summary.LatencyStats
	} else {
		rep.Stats, err = latstats.Compute(run.Samples)
		if err != nil {
			return err
		}
	}

	switch cfg.Format {
	case FMT_JSON:
		return report.WriteJSON(w, rep.Result())
	case FMT_YAML:
		return report.WriteYAML(w, rep.Result())
	default:
		return rep.WriteText(w, cfg.Verbose)
	}
}
