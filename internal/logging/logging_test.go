package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("trace-all")
	assert.Error(t, err)
}

func TestSetupWritesPlainConsoleOutput(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	require.NoError(t, Setup(&buf, "warn"))

	log.Info().Msg("hidden")
	log.Warn().Str("part", "adjective").Msg("no candidates")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "no candidates")
	assert.Contains(t, out, "part=adjective")
	assert.NotContains(t, out, "\x1b[", "colour codes must be off for non-terminal writers")
}
