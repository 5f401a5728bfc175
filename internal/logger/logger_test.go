package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, true)

	logger.Debug("selector fallthrough", map[string]interface{}{
		"source": "historical_db",
	})

	output := buf.String()
	if !strings.Contains(output, "selector fallthrough") {
		t.Error("Expected debug message in verbose mode")
	}
	if !strings.Contains(output, "historical_db") {
		t.Error("Expected field value in verbose mode")
	}
}

func TestNew_QuietSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, false)

	logger.Debug("debug message", nil)
	debugOutput := buf.String()

	buf.Reset()
	logger.Info("info message", nil)
	infoOutput := buf.String()

	if strings.Contains(debugOutput, "debug message") {
		t.Error("Debug message should not appear without verbose")
	}
	if !strings.Contains(infoOutput, "info message") {
		t.Error("Info message should appear without verbose")
	}
}

func TestInfo_Fields(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	logger.Info("parameters resolved", map[string]interface{}{
		"down_payment": 50000.0,
		"loan_term":    30,
	})

	output := buf.String()
	if !strings.Contains(output, "parameters resolved") {
		t.Error("Expected log output to contain message")
	}
	if !strings.Contains(output, "down_payment") {
		t.Error("Expected log output to contain field key")
	}
}

func TestError_IncludesErr(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	testErr := errors.New("no such table: listings")
	logger.Error("listing query failed", testErr, map[string]interface{}{
		"address": "123 Main St",
	})

	output := buf.String()
	if !strings.Contains(output, "listing query failed") {
		t.Error("Expected log output to contain message")
	}
	if !strings.Contains(output, "no such table") {
		t.Error("Expected log output to contain error message")
	}
}

func TestWith_ChildContext(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	childLogger := logger.With(map[string]interface{}{
		"component": "selector",
	})

	childLogger.Info("source miss", nil)

	if !strings.Contains(buf.String(), "selector") {
		t.Error("Expected log output to contain component field from context")
	}
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	logger := &Logger{zlog: zlog}

	runID := "run-12345"
	childLogger := logger.WithRunID(runID)

	childLogger.Info("analysis started", nil)

	output := buf.String()
	if !strings.Contains(output, runID) {
		t.Error("Expected log output to contain run ID")
	}
	if !strings.Contains(output, "run_id") {
		t.Error("Expected log output to have run_id field")
	}
}
