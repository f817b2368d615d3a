package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/curtisnewbie/timeaxis/util/strutil"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	callerField    = "caller"
	componentField = "component"
)

func init() {
	logrus.SetReportCaller(false) // caller is resolved manually in getCallerFn

	// for convenience
	logrus.SetFormatter(CustomFormatter())
}

const (
	componentWidth = 10
	fnWidth        = 30
	levelWidth     = 5
)

var (
	logBufPool = sync.Pool{
		New: func() any {
			return &bytes.Buffer{}
		},
	}

	loggerOut io.Writer = os.Stdout
)

type CTFormatter struct {
}

func (c *CTFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fn string
	var comp string
	if fields := entry.Data; fields != nil {
		if v, ok := fields[callerField].(string); ok {
			fn = v
		}
		if v, ok := fields[componentField].(string); ok {
			comp = v
		}
	}

	levelstr := toLevelStr(entry.Level)

	b := logBufPool.Get().(*bytes.Buffer)
	defer putLogBuf(b)

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelstr)
	b.WriteString(strutil.Spaces(levelWidth - len(levelstr)))

	b.WriteString(" [")
	b.WriteString(comp)
	b.WriteString(strutil.Spaces(componentWidth - len(comp)))
	b.WriteString("]  ")

	b.WriteString(fn)
	b.WriteString(strutil.Spaces(fnWidth - len(fn)))

	b.WriteString(" : ")
	b.WriteString(entry.Message)
	b.WriteByte('\n')

	// the buffer goes back to the pool, logrus needs its own copy
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

func putLogBuf(b *bytes.Buffer) {
	b.Reset()
	logBufPool.Put(b)
}

type NewRollingLogFileParam struct {
	Filename   string // filename
	MaxSize    int    // max file size in mb
	MaxAge     int    // max age in day
	MaxBackups int    // max number of files
}

// Change the output used when no rolling log file is configured, it's stdout by default.
//
// Call it before ConfigureLogging.
func SetDefaultLogOutput(w io.Writer) {
	loggerOut = w
	logrus.SetOutput(w)
}

// Create rolling file based logger
func BuildRollingLogFileWriter(p NewRollingLogFileParam) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   p.Filename,
		MaxSize:    p.MaxSize,    // megabytes
		MaxAge:     p.MaxAge,     // days
		MaxBackups: p.MaxBackups, // num of files
		LocalTime:  true,
		Compress:   false,
	}
}

// Configure logging level and output target based on loaded configuration.
//
// When a rolling log file is configured, the returned closer should be closed on exit.
func ConfigureLogging(conf *AppConfig) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	out := loggerOut

	if conf.HasProp(PropLoggingRollingFile) && !strutil.IsBlankStr(conf.GetPropStr(PropLoggingRollingFile)) {
		log := BuildRollingLogFileWriter(NewRollingLogFileParam{
			Filename:   conf.GetPropStr(PropLoggingRollingFile),
			MaxSize:    conf.GetPropInt(PropLoggingRollingFileMaxSize), // megabytes
			MaxAge:     conf.GetPropInt(PropLoggingRollingFileMaxAge),  // days
			MaxBackups: conf.GetPropInt(PropLoggingRollingFileMaxBackups),
		})
		out = log
		closer = log
	}
	logrus.SetOutput(out)

	lv := conf.GetPropStr(PropLoggingLevel)
	level, ok := ParseLogLevel(lv)
	if !ok {
		return closer, fmt.Errorf("invalid log level: '%v'", lv)
	}
	logrus.SetLevel(level)
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func toLevelStr(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.FatalLevel:
		return "FATAL"
	case logrus.PanicLevel:
		return "PANIC"
	}
	return "UNKNOWN"
}

// Get custom formatter logrus
func CustomFormatter() logrus.Formatter {
	return &CTFormatter{}
}

// Return logger that tags every line with the component name.
func ComponentLogger(name string) *logrus.Entry {
	return logrus.WithField(componentField, name)
}

// Check whether current log level is DEBUG
func IsDebugLevel() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// Parse log level
func ParseLogLevel(logLevel string) (logrus.Level, bool) {
	logLevel = strings.ToUpper(strings.TrimSpace(logLevel))
	switch logLevel {
	case "INFO":
		return logrus.InfoLevel, true
	case "DEBUG":
		return logrus.DebugLevel, true
	case "WARN":
		return logrus.WarnLevel, true
	case "ERROR":
		return logrus.ErrorLevel, true
	case "TRACE":
		return logrus.TraceLevel, true
	case "FATAL":
		return logrus.FatalLevel, true
	case "PANIC":
		return logrus.PanicLevel, true
	}
	return logrus.InfoLevel, false
}

func SetLogLevel(level string) {
	ll, ok := ParseLogLevel(level)
	if !ok {
		return
	}
	logrus.SetLevel(ll)
}

func Debugf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.WarnLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.ErrorLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Errorf(format, args...)
}

// reduce alloc, logger calls getCallerFn very frequently.
var callerUintptrPool = sync.Pool{
	New: func() any {
		p := make([]uintptr, 4)
		return &p
	},
}

func getCallerFn() string {
	pcs := callerUintptrPool.Get().(*[]uintptr)
	defer putCallerUintptrPool(pcs)

	depth := runtime.Callers(3, *pcs)
	frames := runtime.CallersFrames((*pcs)[:depth])

	// we only need the first frame
	f, _ := frames.Next()
	return getShortFnName(f.Function)
}

func putCallerUintptrPool(pcs *[]uintptr) {
	clear(*pcs)
	callerUintptrPool.Put(pcs)
}

func getShortFnName(fn string) string {
	j := strings.LastIndexByte(fn, '/')
	if j < 0 {
		return fn
	}
	return fn[j+1:]
}
