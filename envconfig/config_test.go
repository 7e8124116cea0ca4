package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glremix/glwrap/logutil"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.MinVersion)
	assert.Equal(t, "1.1", cfg.MaxVersion)
	assert.Equal(t, []string{"GL_ARB_multitexture"}, cfg.Extensions)
	assert.Equal(t, []string{"gl", "glcore"}, cfg.APIs)
	assert.Equal(t, "glRemix_", cfg.SymbolPrefix)
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("GLWRAP_MIN_VERSION", "1.2")
	t.Setenv("GLWRAP_MAX_VERSION", " \"4.6\" ")
	t.Setenv("GLWRAP_EXTENSIONS", "GL_ARB_multitexture, GL_ARB_imaging,")
	t.Setenv("GLWRAP_APIS", "gles2")
	t.Setenv("GLWRAP_SYMBOL_PREFIX", "'shim_'")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1.2", cfg.MinVersion)
	assert.Equal(t, "4.6", cfg.MaxVersion)
	assert.Equal(t, []string{"GL_ARB_multitexture", "GL_ARB_imaging"}, cfg.Extensions)
	assert.Equal(t, []string{"gles2"}, cfg.APIs)
	assert.Equal(t, "shim_", cfg.SymbolPrefix)
}

func TestConfigLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"0":     slog.LevelInfo,
		"false": slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"yes":   slog.LevelDebug,
		"2":     logutil.LevelTrace,
		"3":     logutil.LevelTrace,
		"trace": logutil.LevelTrace,
		"TRACE": logutil.LevelTrace,
	}

	for value, expect := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("GLWRAP_DEBUG", value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, expect, cfg.LogLevel())
		})
	}
}

func TestConfigValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	vals := cfg.Values()
	assert.Equal(t, "1.0", vals["GLWRAP_MIN_VERSION"])
	assert.Equal(t, "[gl glcore]", vals["GLWRAP_APIS"])
	assert.Len(t, cfg.AsMap(), len(vals))
}
