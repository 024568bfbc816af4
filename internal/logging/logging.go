// Package logging builds the CLI's zap logger.
package logging

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownLevel indicates a level other than none, normal or debug.
var ErrUnknownLevel = errors.New("unknown log level")

// Levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns a console logger writing to w. "normal" logs info and above,
// "debug" everything, "none" nothing. Output carries no caller and no color
// so it stays readable when redirected.
func New(level string, w io.Writer) (*zap.Logger, error) {
	var enabler zapcore.LevelEnabler
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelNormal, "":
		enabler = zapcore.InfoLevel
	case LevelDebug:
		enabler = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("%w: %q (must be none, normal or debug)", ErrUnknownLevel, level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.TimeKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), enabler)
	return zap.New(core), nil
}
