// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package obslog builds the structured loggers cmd/recl-lsp uses. The
// merge core itself never logs — it stays a pure error-returning
// engine — so this package only ever sits at the executable boundary.
package obslog

import (
	"gopkg.in/natefinch/lumberjack.v2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the stderr logger cmd/recl-lsp uses for its foreground
// jobs: zap's production (JSON) configuration, or its development
// configuration when debug is set; it is not rotated.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = !debug
	return cfg.Build()
}

// BackgroundEvalConfig configures the rotating log file the
// --background-eval evaluator writes to, since it runs as a long-lived
// goroutine rather than exiting after one merge.
type BackgroundEvalConfig struct {
	// Path is the log file path. Required.
	Path string
	// MaxSizeMB is the size a log file may reach before it is rotated.
	MaxSizeMB int
	// MaxBackups is how many rotated files lumberjack keeps.
	MaxBackups int
	// MaxAgeDays is how long a rotated file is kept before deletion.
	MaxAgeDays int
}

// DefaultBackgroundEvalConfig is a reasonable size budget for a
// long-running evaluator's diagnostic log.
func DefaultBackgroundEvalConfig(path string) BackgroundEvalConfig {
	return BackgroundEvalConfig{
		Path:       path,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// NewBackgroundEval builds a zap logger backed by a lumberjack-rotated
// file, for the --background-eval evaluator goroutine.
func NewBackgroundEval(cfg BackgroundEvalConfig) *zap.Logger {
	writer := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(writer),
		zap.InfoLevel,
	)
	return zap.New(core)
}
