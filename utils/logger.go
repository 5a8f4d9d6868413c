package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

type LogLevel int

var LogFile bool
var LogFunc bool

// LogWriter receives every log line. Reports go to stdout, so logs default to stderr.
var LogWriter io.Writer = os.Stderr

const (
	LogLevelError = LogLevel(1 << iota)
	LogLevelInfo
	LogLevelNotice
	LogLevelDebug
)

var GlobalLogLevel = LogLevelError | LogLevelInfo | LogLevelNotice

var logBufPool sync.Pool
var logWriteLock sync.Mutex

//nolint:gochecknoinits
func init() {
	logBufPool.New = func() any {
		return make([]byte, 0, 512)
	}
}

func getLogBuf() []byte {
	//nolint:forcetypeassert
	return logBufPool.Get().([]byte)[:0]
}

func returnLogBuf(buf []byte) {
	//nolint:staticcheck
	logBufPool.Put(buf)
}

// SetDebug enables or disables LogLevelDebug, keeping the other levels.
func SetDebug(enabled bool) {
	if enabled {
		GlobalLogLevel |= LogLevelDebug
	} else {
		GlobalLogLevel &^= LogLevelDebug
	}
}

func Fatalf(prefix, format string, v ...any) {
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "FATAL"), format, v...))
	//nolint:revive,gocritic
	os.Exit(1)
}

func Errorf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelError == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "ERROR"), format, v...))
}

func Logf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelInfo == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "INFO"), format, v...))
}

func Noticef(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelNotice == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "NOTICE"), format, v...))
}

func IsLogLevelDebug() bool {
	return GlobalLogLevel&LogLevelDebug > 0
}

func Debugf(prefix, format string, v ...any) {
	if GlobalLogLevel&LogLevelDebug == 0 {
		return
	}
	buf := getLogBuf()
	defer returnLogBuf(buf)
	_println(fmt.Appendf(innerPrint(buf, prefix, "DEBUG"), format, v...))
}

func _println(buf []byte) {
	buf = bytes.TrimSpace(buf)
	buf = append(buf, '\n')

	logWriteLock.Lock()
	defer logWriteLock.Unlock()
	_, _ = LogWriter.Write(buf)
}

func innerPrint(buf []byte, prefix, class string) []byte {
	buf = time.Now().UTC().AppendFormat(buf, "2006-01-02 15:04:05.000")
	if !LogFile {
		return fmt.Appendf(buf, " [%s] %s ", prefix, class)
	}

	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
		pc = 0
	}
	short := file[strings.LastIndexByte(file, '/')+1:]

	if !LogFunc {
		return fmt.Appendf(buf, " %s:%d [%s] %s ", short, line, prefix, class)
	}

	var function string
	if pc != 0 {
		if details := runtime.FuncForPC(pc); details != nil {
			function = details.Name()
		}
	}
	funcItems := strings.Split(function[strings.LastIndexByte(function, '/')+1:], ".")
	return fmt.Appendf(buf, " %s:%d:%s [%s] %s ", short, line, funcItems[len(funcItems)-1], prefix, class)
}
