package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var InfoLogger, FatalLogger *zap.Logger

var (
	serviceName = "default"
)

type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // консольный вывод вместо JSON
}

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

// New собирает zap-логгер и заодно ставит его в глобальные InfoLogger/FatalLogger.
func New(conf Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if conf.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if conf.Level != "" {
		lvl, err := zap.ParseAtomicLevel(conf.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", conf.Level, err)
		}
		zc.Level = lvl
	}

	l, err := zc.Build(zap.Fields(zap.String("service", serviceName)))
	if err != nil {
		return nil, err
	}
	InfoLogger, FatalLogger = l, l
	return l, nil
}

// info/fatal: до New() пишем в zap.L() (по умолчанию no-op), а не паникуем.
func info() *zap.Logger {
	if InfoLogger == nil {
		return zap.L()
	}
	return InfoLogger
}

func fatal() *zap.Logger {
	if FatalLogger == nil {
		return zap.L()
	}
	return FatalLogger
}

func Info(format string, args ...interface{}) {
	info().Info(fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	info().Warn(fmt.Sprintf(format, args...))
}

func Error(format string, args ...interface{}) {
	info().Error(fmt.Sprintf(format, args...))
}

func Fatal(format string, args ...interface{}) {
	fatal().Fatal(fmt.Sprintf(format, args...))
}
