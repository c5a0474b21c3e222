package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	log.SetLevel(logrus.DebugLevel)

	return &buf
}

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expectError bool
	}{
		{name: "Debug level", level: "debug"},
		{name: "Info level", level: "info"},
		{name: "Warn level", level: "warn"},
		{name: "Invalid level", level: "loud", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.level)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			expected, _ := logrus.ParseLevel(tt.level)
			assert.Equal(t, expected, log.GetLevel())
		})
	}
}

func TestLogging(t *testing.T) {
	buf := captureOutput(t)

	tests := []struct {
		name          string
		logFunc       func(string, ...map[string]interface{})
		message       string
		fields        map[string]interface{}
		expectedLevel string
	}{
		{name: "Debug message", logFunc: Debug, message: "Debug test", expectedLevel: "debug"},
		{name: "Info message", logFunc: Info, message: "Info test", expectedLevel: "info"},
		{name: "Warn message", logFunc: Warn, message: "Warn test", expectedLevel: "warning"},
		{
			name:          "Info with fields",
			logFunc:       Info,
			message:       "Info with fields",
			fields:        map[string]interface{}{"page": "abc"},
			expectedLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()

			if tt.fields != nil {
				tt.logFunc(tt.message, tt.fields)
			} else {
				tt.logFunc(tt.message)
			}

			output := buf.String()
			assert.Contains(t, output, "level="+tt.expectedLevel)
			assert.Contains(t, output, tt.message)
			for k, v := range tt.fields {
				assert.Contains(t, output, k+"="+v.(string))
			}
		})
	}
}

func TestError(t *testing.T) {
	buf := captureOutput(t)

	Error("save failed", errors.New("disk full"), map[string]interface{}{"path": "config.json"})

	output := buf.String()
	assert.Contains(t, output, "level=error")
	assert.Contains(t, output, "save failed")
	assert.Contains(t, output, "disk full")
	assert.Contains(t, output, "path=config.json")
}
