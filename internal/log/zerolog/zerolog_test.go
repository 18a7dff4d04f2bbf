package zerolog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	loglib "rulegen/internal/log"
)

func TestLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer

	l := NewStdLogger(NewLogger(&Config{LogLevel: "warn", Out: &buf}))
	l.Info("hidden")
	l.WithFields(loglib.Fields{loglib.ModuleField: "extract"}).
		Warn(errors.New("boom"), "directive skipped", loglib.Fields{"target": "fullName"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "directive skipped")
	assert.Contains(t, out, "extract")
	assert.Contains(t, out, "fullName")
	assert.Contains(t, out, "boom")
}

func TestNewLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer

	l := NewStdLogger(NewLogger(&Config{LogLevel: "loud", Out: &buf}))
	l.Debug("not shown")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}
