package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbook/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(config.Log{Level: "debug", Format: "json"}, &buf)

	log.WithField("book_id", "b1").Info("book created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "book created", entry["msg"])
	assert.Equal(t, "b1", entry["book_id"])
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewWithWriter_BadLevelFallsBackToInfo(t *testing.T) {
	log := NewWithWriter(config.Log{Level: "loud"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
