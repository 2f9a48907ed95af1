package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	debugLogger = newDiscardLogger()
	logFile     *os.File
	mu          sync.Mutex
	isSetup     bool
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return l
}

// SetupLogger points the debug logger at the specified log file.
// Until it is called every log function is a no-op.
func SetupLogger(logFilePath string) error {
	mu.Lock()
	defer mu.Unlock()

	if isSetup {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	debugLogger.SetOutput(logFile)
	debugLogger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	debugLogger.Infof("--- psnreval debug log started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger closes the log file and silences the logger again
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		debugLogger.Infof("--- psnreval debug log closed at %s ---", time.Now().Format(time.RFC3339))
		logFile.Close()
		logFile = nil
		debugLogger.SetOutput(io.Discard)
		isSetup = false
	}
}

// IsEnabled reports whether a log file is attached
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return isSetup
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Infof(format, args...)
}

// DebugLog logs a debug message
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Debugf(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Errorf(format, args...)
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	debugLogger.Warnf(format, args...)
}

// LogPairProcessed logs the outcome of one matched pair
func LogPairProcessed(key string, status string, psnr float64) {
	mu.Lock()
	defer mu.Unlock()

	debugLogger.WithFields(logrus.Fields{
		"key":    key,
		"status": status,
		"psnr":   psnr,
	}).Debug("pair processed")
}

// LogImageLoaded logs when an image is loaded or fails to load
func LogImageLoaded(path string, success bool, errMsg string) {
	mu.Lock()
	defer mu.Unlock()

	if success {
		debugLogger.WithField("path", path).Debug("LOADED")
	} else {
		debugLogger.WithFields(logrus.Fields{"path": path, "error": errMsg}).Error("FAILED")
	}
}
