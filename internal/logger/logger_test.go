package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "info", Out: &buf})
	defer UseTestMode()

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Step("stage %s", "three")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "-----> stage three")

	buf.Reset()
	SetLevel("debug")
	Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Options{Level: "info", JSON: true, Out: &buf})
	defer UseTestMode()

	Warn("careful")
	assert.Contains(t, buf.String(), `"msg":"⚠️ careful"`)
}
