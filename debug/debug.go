package debug

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//
// Debug output is controled by FSYNCDEBUG environment variable, which
// can be a list of labels (e.g., "FSYNC;TARGET").
//

const FSYNCDEBUG = "FSYNCDEBUG"

var (
	once   sync.Once
	labels map[Tselector]bool
	logger *zap.SugaredLogger
)

func initDebug() {
	labels = debugLabels(os.Getenv(FSYNCDEBUG))
	logger = mkLogger(zapcore.Lock(os.Stderr))
}

func mkLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), ws, zapcore.DebugLevel)
	return zap.New(core).Sugar()
}

func debugLabels(s string) map[Tselector]bool {
	m := make(map[Tselector]bool)
	if s == "" {
		return m
	}
	for _, l := range strings.Split(s, ";") {
		if l = strings.TrimSpace(l); l != "" {
			m[Tselector(l)] = true
		}
	}
	return m
}

// Reset re-reads FSYNCDEBUG and redirects output to ws. For tests.
func Reset(ws zapcore.WriteSyncer) {
	once.Do(func() {})
	labels = debugLabels(os.Getenv(FSYNCDEBUG))
	logger = mkLogger(ws)
}

func WillBePrinted(label Tselector) bool {
	once.Do(initDebug)
	return label == ALWAYS || labels[label]
}

func DPrintf(label Tselector, format string, v ...interface{}) {
	if WillBePrinted(label) {
		logger.Debugf("%v %v", label, fmt.Sprintf(format, v...))
	}
}

func DFatalf(format string, v ...interface{}) {
	once.Do(initDebug)
	// Get info for the caller.
	pc, file, line, ok := runtime.Caller(1)
	fnDetails := runtime.FuncForPC(pc)
	if ok && fnDetails != nil {
		logger.Fatalf("FATAL %v %v:%v %v", fnDetails.Name(), file, line, fmt.Sprintf(format, v...))
	} else {
		logger.Fatalf("FATAL (missing details) %v", fmt.Sprintf(format, v...))
	}
}
