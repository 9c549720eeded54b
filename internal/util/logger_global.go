package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the process-wide logger. Later calls are ignored once a logger is set.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogger != nil {
		return nil
	}
	logger, err := NewLogger(logLevel, logFile, debugToConsole)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// SetLogger replaces the process-wide logger, mainly for tests
func SetLogger(logger LoggerInterface) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	globalLogger = logger
}

// GetLogger returns the process-wide logger, or nil before InitLogger
func GetLogger() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// CloseLogger flushes and detaches the process-wide logger
func CloseLogger() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if globalLogger == nil {
		return nil
	}
	err := globalLogger.Close()
	globalLogger = nil
	return err
}

func LogInfo(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Error(msg, fields...)
	}
}

