package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(logrus.WarnLevel, &buf)

	logger.Info("hidden")
	logger.Warnf("Test suite %q is empty.", "S")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `level=warning msg="Test suite \"S\" is empty."`)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLevel, level)

	level, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
