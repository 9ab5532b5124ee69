package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/potax/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	s, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "openai", s.LLM.Provider)
	assert.Equal(t, 3, s.LLM.MaxRetries)
	assert.Equal(t, time.Second, s.LLM.RetryDelay)
	assert.Equal(t, 60, s.LLM.RateLimit)
	assert.Equal(t, 60*time.Second, s.Timeout)
	assert.Equal(t, "po_classification.json", s.ExportPath)
	assert.Equal(t, "localhost:8080", s.Server.Addr)
	assert.False(t, s.Server.TLS)
	assert.True(t, strings.HasSuffix(s.Server.CertDir, filepath.Join("potax", "certs")), s.Server.CertDir)
	assert.Equal(t, "default", s.UI.Theme)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Equal(t, "console", s.Logging.Format)
	assert.Empty(t, s.LLM.APIKey)
}

func TestLoad_APIKeyPrecedence(t *testing.T) {
	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "env-key")
		v := newViper()
		v.Set("llm.provider", "Anthropic")

		s, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "anthropic", s.LLM.Provider)
		assert.Equal(t, "env-key", s.LLM.APIKey)
	})

	t.Run("configured key wins", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		v := newViper()
		v.Set("llm.openai_api_key", "config-key")

		s, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "config-key", s.LLM.APIKey)
	})

	t.Run("gemini accepts google key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("GOOGLE_API_KEY", "google-key")
		v := newViper()
		v.Set("llm.provider", "gemini")

		s, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "google-key", s.LLM.APIKey)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{name: "missing provider", key: "llm.provider", value: "", want: common.ErrMissingConfig},
		{name: "negative timeout", key: "classifier.timeout", value: "-1s", want: common.ErrInvalidConfig},
		{name: "negative retries", key: "llm.max_retries", value: -1, want: common.ErrInvalidConfig},
		{name: "negative rate limit", key: "llm.rate_limit", value: -5, want: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/buyer")
	t.Setenv("EXPORT_DIR", "/srv/exports")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/home/buyer/po.json", ExpandPath("~/po.json"))
	assert.Equal(t, "/home/buyer", ExpandPath("~"))
	assert.Equal(t, "/srv/exports/po.json", ExpandPath("$EXPORT_DIR/po.json"))
	assert.Equal(t, "relative/po.json", ExpandPath("relative/po.json"))
}
