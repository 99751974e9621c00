package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesJSONWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(DebugLevel, &buf)

	log.Info("strategy.enhanced", "scan complete", map[string]interface{}{"candidates": 3})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "strategy.enhanced", decoded["component"])
	assert.Equal(t, "scan complete", decoded["msg"])
	assert.EqualValues(t, 3, decoded["candidates"])
}

func TestFileLoggerSuppressesLevelsBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(WarnLevel, &buf)

	log.Debug("driver", "ignored", nil)
	log.Info("driver", "also ignored", nil)

	assert.Empty(t, buf.String())
}

func TestFileLoggerErrorIncludesErrorField(t *testing.T) {
	var buf bytes.Buffer
	log := NewFileLogger(ErrorLevel, &buf)

	log.Error("kernels.fallback", errors.New("boom"), nil)

	assert.True(t, strings.Contains(buf.String(), "boom"))
}

func TestNoOpDiscardsEverything(t *testing.T) {
	var log Logger = NoOp{}
	assert.NotPanics(t, func() {
		log.Debug("c", "m", nil)
		log.Info("c", "m", nil)
		log.Warning("c", "m", nil)
		log.Error("c", errors.New("x"), nil)
	})
}
