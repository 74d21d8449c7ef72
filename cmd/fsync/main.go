package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"fsyncbench/bench"
)

func main() {
	cfg, err := bench.ParseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		os.Exit(1)
	}
	if err := bench.Run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v: error %v\n", os.Args[0], err)
		os.Exit(1)
	}
}
