// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogContext provides the identifying details every log entry carries
type LogContext interface {
	AppName() string
	SessionID() string
}

// BasicLogContext is a minimal LogContext for code paths that have no richer
// operation context of their own
type BasicLogContext struct {
	sessionOnce sync.Once
	sessionID   string
}

// AppName returns an empty string
func (c *BasicLogContext) AppName() string {
	return ""
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	c.sessionOnce.Do(func() {
		c.sessionID = NewSessionID()
	})
	return c.sessionID
}

// NewSessionID returns a fresh session identifier
func NewSessionID() string {
	return uuid.NewString()
}

// Severity is the audit log severity
type Severity int

// Audit severities
const (
	DEBUG Severity = iota
	INFO
	NOTICE
	WARN
	ERROR
)

// LogAuditInput is the set of fields for an audit log entry
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

var (
	logMutex sync.Mutex
	zlog     *zap.SugaredLogger
)

// InitLogging configures the process-wide logger at the given level. Invalid
// levels fall back to info.
func InitLogging(level string) {
	logMutex.Lock()
	defer logMutex.Unlock()

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return
	}
	zlog = logger.Sugar()
}

func getLogger() *zap.SugaredLogger {
	logMutex.Lock()
	defer logMutex.Unlock()
	if zlog == nil {
		logger, _ := zap.NewProduction(zap.AddCallerSkip(2))
		zlog = logger.Sugar()
	}
	return zlog
}

func contextFields(context LogContext) []interface{} {
	fields := []interface{}{}
	if context.AppName() != "" {
		fields = append(fields, "app", context.AppName())
	}
	fields = append(fields, "session", context.SessionID())
	return fields
}

// LogDebug logs a debug-level message
func LogDebug(context LogContext, message string) {
	getLogger().Debugw(message, contextFields(context)...)
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	getLogger().Infow(message, contextFields(context)...)
}

// LogAlert logs a message that needs operator attention
func LogAlert(context LogContext, message string) {
	getLogger().Warnw(message, contextFields(context)...)
}

// LogSimpleErr logs a message and its underlying error, and returns an error
// wrapping both for the caller to propagate
func LogSimpleErr(context LogContext, message string, err error) error {
	getLogger().Errorw(message, append(contextFields(context), "error", err)...)
	return fmt.Errorf("%v %v", message, err)
}

// LogAudit writes an audit entry recording who did what to whom
func LogAudit(context LogContext, input LogAuditInput) {
	fields := append(contextFields(context),
		"actor", input.Actor,
		"action", input.Action,
		"actee", input.Actee,
	)
	logger := getLogger()
	switch input.Severity {
	case DEBUG:
		logger.Debugw(input.Message, fields...)
	case NOTICE, WARN:
		logger.Warnw(input.Message, fields...)
	case ERROR:
		logger.Errorw(input.Message, fields...)
	default:
		logger.Infow(input.Message, fields...)
	}
}
