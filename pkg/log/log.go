// Package log adds a thin wrapper around logrus to improve non-debug logging
// performance.
package log

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	l     = logrus.New()
	debug int32
)

// Config selects the level and format of the logger.
type Config struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Setup applies cfg to the logger. An empty level means info.
func Setup(cfg Config) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = logrus.ParseLevel(cfg.Level)
		if err != nil {
			return errors.Wrap(err, "invalid log level")
		}
	}

	SetLevel(level)
	if cfg.JSON {
		SetFormatter(&logrus.JSONFormatter{})
	} else {
		SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// SetLevel sets the level of the logger.
func SetLevel(level logrus.Level) {
	l.SetLevel(level)
	if level >= logrus.DebugLevel {
		atomic.StoreInt32(&debug, 1)
	} else {
		atomic.StoreInt32(&debug, 0)
	}
}

// SetDebug controls debug logging.
func SetDebug(to bool) {
	if to {
		SetLevel(logrus.DebugLevel)
	} else {
		SetLevel(logrus.InfoLevel)
	}
}

// DebugEnabled reports whether debug messages are logged.
func DebugEnabled() bool {
	return atomic.LoadInt32(&debug) == 1
}

// SetFormatter sets the formatter.
func SetFormatter(to logrus.Formatter) {
	l.SetFormatter(to)
}

// SetOutput sets the output.
func SetOutput(to io.Writer) {
	l.SetOutput(to)
}

// Fields is a map of logging fields.
type Fields map[string]interface{}

// LogFields implements Fielder for Fields.
func (f Fields) LogFields() Fields {
	return f
}

// A Fielder provides Fields via the LogFields method.
type Fielder interface {
	LogFields() Fields
}

// err is a wrapper around an error.
type err struct {
	e error
}

// LogFields provides Fields for logging.
func (e err) LogFields() Fields {
	if e.e == nil {
		return Fields{}
	}
	return Fields{
		"error": e.e.Error(),
		"type":  fmt.Sprintf("%T", errors.Cause(e.e)),
	}
}

// Err is a wrapper around errors that implements Fielder. A nil error adds no
// fields.
func Err(e error) Fielder {
	return err{e}
}

// mergeFielders merges the Fields of multiple Fielders into a new map.
// Fields from the first Fielder will be used unchanged, Fields from subsequent
// Fielders will be prefixed with "%d.", starting from 1.
func mergeFielders(fielders ...Fielder) logrus.Fields {
	fields := make(logrus.Fields)
	for i, f := range fielders {
		if f == nil {
			continue
		}
		prefix := ""
		if i > 0 {
			prefix = fmt.Sprint(i, ".")
		}
		for k, v := range f.LogFields() {
			fields[prefix+k] = v
		}
	}
	return fields
}

func entry(fielders []Fielder) *logrus.Entry {
	return l.WithFields(mergeFielders(fielders...))
}

// Debug logs at the debug level if debug logging is enabled.
func Debug(v interface{}, fielders ...Fielder) {
	if DebugEnabled() {
		entry(fielders).Debug(v)
	}
}

// Info logs at the info level.
func Info(v interface{}, fielders ...Fielder) {
	entry(fielders).Info(v)
}

// Warn logs at the warning level.
func Warn(v interface{}, fielders ...Fielder) {
	entry(fielders).Warn(v)
}

// Error logs at the error level.
func Error(v interface{}, fielders ...Fielder) {
	entry(fielders).Error(v)
}

// Fatal logs at the fatal level and exits with a status code != 0.
func Fatal(v interface{}, fielders ...Fielder) {
	entry(fielders).Fatal(v)
}
