package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	RATE    = "rate"
	LAT_AVG = "lat_avg"
	LAT_P95 = "lat_p95"
	LAT_P99 = "lat_p99"
	LAT_MAX = "lat_max"
)

var (
	ErrEmpty     = errors.New("empty output")
	ErrNoResults = errors.New("no results in output")

	rateRe = regexp.MustCompile(`block_size:\s+(\d+),\s+(\d+)\s+fsync/sec`)
	latRe  = regexp.MustCompile(`Avg:\s+(\d+),\s+P95:\s+(\d+),\s+P99:\s+(\d+),\s+Max:\s+(\d+)`)
)

// Tresult maps keys such as block_size_4096_lat_p99 to values.
type Tresult map[string]int64

func Key(bsz int, field string) string {
	return fmt.Sprintf("block_size_%d_%s", bsz, field)
}

// Parse extracts the results of a run with block size bsz from its
// text output.
func Parse(out string, bsz int) (Tresult, error) {
	if strings.TrimSpace(out) == "" {
		return nil, ErrEmpty
	}
	res := make(Tresult)
	for _, line := range strings.Split(out, "\n") {
		if m := rateRe.FindStringSubmatch(line); m != nil {
			v, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return nil, err
			}
			res[Key(bsz, RATE)] = v
		}
		if m := latRe.FindStringSubmatch(line); m != nil {
			for i, f := range []string{LAT_AVG, LAT_P95, LAT_P99, LAT_MAX} {
				v, err := strconv.ParseInt(m[i+1], 10, 64)
				if err != nil {
					return nil, err
				}
				res[Key(bsz, f)] = v
			}
		}
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w:\n%s", ErrNoResults, out)
	}
	return res, nil
}

func WriteJSON(w io.Writer, res Tresult) error {
	b, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

func WriteYAML(w io.Writer, res Tresult) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(res); err != nil {
		return err
	}
	return enc.Close()
}
