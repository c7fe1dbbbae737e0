package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestSetupLogger_CloudFormat(t *testing.T) {
	prevSlog := slog.Default()
	prev := SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))
	t.Cleanup(func() {
		slog.SetDefault(prevSlog)
		SetProvider(prev)
	})

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, "info"))
	slog.Error("failed", ErrAttr(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, `"severity":"ERROR"`)
	assert.Contains(t, out, `"message":"failed"`)
	assert.Contains(t, out, StacktraceAttrKey)

	assert.Error(t, SetupLogger(&buf, "verbose"))
}
