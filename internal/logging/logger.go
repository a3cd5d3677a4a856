package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide structured logger.
var Logger = logrus.New()

var once sync.Once

// eventIDHook stamps every entry with a unique event id so log lines
// can be referenced individually.
type eventIDHook struct{}

func (eventIDHook) Levels() []logrus.Level { return logrus.AllLevels }

func (eventIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["event_id"] = uuid.NewString()
	return nil
}

// Init configures the global logger: JSON lines to stdout and to a
// size-rotated file. Safe to call more than once.
func Init(logFile string) {
	once.Do(func() {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				logrus.Fatalf("failed to create log directory %s: %v", dir, err)
			}
		}

		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		Logger.SetOutput(io.MultiWriter(os.Stdout, rotated))
		Logger.SetFormatter(&logrus.JSONFormatter{})
		Logger.SetLevel(logrus.InfoLevel)
		Logger.AddHook(eventIDHook{})

		Logger.WithField("file", logFile).Info("logger initialized")
	})
}
