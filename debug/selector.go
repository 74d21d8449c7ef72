package debug

type Tselector string

// ALWAYS
const (
	ALWAYS Tselector = "ALWAYS"
	ERROR            = "ERROR"
	NEVER            = "NEVER"
)

// ERR
const (
	ERR Tselector = "_ERR"
)

// Benchmark driver
const (
	FSYNC     Tselector = "FSYNC"
	FSYNC_ERR           = FSYNC + ERR
	SAMPLER             = "SAMPLER"
	STATS               = "STATS"
)

// Target device/file
const (
	TARGET     Tselector = "TARGET"
	TARGET_ERR           = TARGET + ERR
)

// Output
const (
	REPORT Tselector = "REPORT"
)
