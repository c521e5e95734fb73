package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Init configures the process logger. An empty level falls back to info so a
// bare environment still boots; an unparseable one is an error.
func Init(level string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

func entry(fields []map[string]interface{}) *logrus.Entry {
	e := logrus.NewEntry(log)
	for _, f := range fields {
		e = e.WithFields(logrus.Fields(f))
	}
	return e
}

func Debug(msg string, fields ...map[string]interface{}) {
	entry(fields).Debug(msg)
}

func Info(msg string, fields ...map[string]interface{}) {
	entry(fields).Info(msg)
}

func Warn(msg string, fields ...map[string]interface{}) {
	entry(fields).Warn(msg)
}

// Error logs msg with the causing error attached as a field.
func Error(msg string, err error, fields ...map[string]interface{}) {
	entry(fields).WithError(err).Error(msg)
}
