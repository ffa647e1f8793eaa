package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varstack/varstack/pkg/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, level := range log.AllLevels {
		parsed, err := log.ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
	}

	parsed, err := log.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, parsed)

	_, err = log.ParseLevel("nope")
	require.Error(t, err)
}

func TestLoggerSetLevel(t *testing.T) {
	t.Parallel()

	logger := log.New()
	assert.Equal(t, log.InfoLevel, logger.Level())

	require.NoError(t, logger.SetLevel("trace"))
	assert.Equal(t, log.TraceLevel, logger.Level())

	require.Error(t, logger.SetLevel("nope"))
}
