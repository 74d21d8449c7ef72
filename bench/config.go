package bench

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	humanize "github.com/dustin/go-humanize"

	"fsyncbench/serr"
)

const (
	DEFAULT_BLOCK_SIZE = 4096
	MAX_BLOCK_SIZE     = 1 << 30 // 1 GiB
	RECOMMENDED_FSYNCS = 1000000
)

const (
	FMT_TEXT = "text"
	FMT_JSON = "json"
	FMT_YAML = "yaml"
)

type Tconfig struct {
	Path      string
	N         int
	BlockSize int
	Format    string
	Verbose   bool
}

func (cfg *Tconfig) String() string {
	return fmt.Sprintf("&{ Path:%v N:%v BlockSize:%v Format:%v Verbose:%v }", cfg.Path, cfg.N, cfg.BlockSize, cfg.Format, cfg.Verbose)
}

func usage(name string) string {
	return fmt.Sprintf("Usage: %v [-o text|json|yaml] [-v] targetPath iterationCount [blockSizeBytes]", name)
}

// ParseArgs parses flags followed by the positional arguments. Usage
// and flag errors are printed to stderr.
func ParseArgs(name string, args []string, stderr io.Writer) (*Tconfig, error) {
	cfg := &Tconfig{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Format, "o", FMT_TEXT, "output format: text, json or yaml")
	fs.BoolVar(&cfg.Verbose, "v", false, "print the extended latency summary")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage(name))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, serr.MkErrError(serr.TErrArgs, "flags", err)
	}
	switch cfg.Format {
	case FMT_TEXT, FMT_JSON, FMT_YAML:
	default:
		return nil, serr.MkErr(serr.TErrArgs, fmt.Sprintf("format %q", cfg.Format))
	}

	pos := fs.Args()
	if len(pos) < 2 {
		return nil, serr.MkErr(serr.TErrArgs, usage(name))
	}
	cfg.Path = pos[0]
	n, err := strconv.Atoi(pos[1])
	if err != nil || n <= 0 {
		return nil, serr.MkErr(serr.TErrArgs, fmt.Sprintf("iterationCount %q", pos[1]))
	}
	cfg.N = n

	cfg.BlockSize = DEFAULT_BLOCK_SIZE
	if len(pos) > 2 {
		bsz, err := humanize.ParseBytes(pos[2])
		if err != nil || bsz == 0 || bsz > MAX_BLOCK_SIZE {
			return nil, serr.MkErr(serr.TErrArgs, fmt.Sprintf("blockSizeBytes %q", pos[2]))
		}
		cfg.BlockSize = int(bsz)
	}
	return cfg, nil
}
