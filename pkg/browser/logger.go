//go:build js && wasm

package browser

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// consoleLogger writes warnings and errors to the browser console through
// stderr, which wasm_exec.js forwards to console.error.
func consoleLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
