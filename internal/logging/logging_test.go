// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("college", "1002").Int("courses", 3).Msg("seeded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "output %q", buf.String())
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "seeded", entry["message"])
	assert.Equal(t, "1002", entry["college"])
	assert.EqualValues(t, 3, entry["courses"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "", &buf)
	require.NoError(t, err)

	logger.Debug().Str("file", "CAP_Round_I.txt").Msg("parsing")
	assert.Contains(t, buf.String(), "parsing")
	assert.Contains(t, buf.String(), "CAP_Round_I.txt")
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		want    log.Level
		wantErr bool
	}{
		{level: "", want: log.InfoLevel},
		{level: "trace", want: log.TraceLevel},
		{level: "warn", want: log.WarnLevel},
		{level: "error", want: log.ErrorLevel},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level, FormatJSON, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}

func TestSetup(t *testing.T) {
	saved := log.DefaultLogger
	t.Cleanup(func() { log.DefaultLogger = saved })

	var buf bytes.Buffer
	require.NoError(t, Setup("warn", FormatJSON, &buf))
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
