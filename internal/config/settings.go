package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/potax/internal/common"
	"github.com/spf13/viper"
)

// Settings is the resolved application configuration.
type Settings struct {
	LLM        LLMSettings
	Logging    LoggingSettings
	Server     ServerSettings
	UI         UISettings
	ExportPath string
	Timeout    time.Duration
}

// LLMSettings configures the classifier collaborator.
type LLMSettings struct {
	Provider       string
	Model          string
	APIKey         string
	BaseURL        string
	ClaudeCodePath string
	StaticResponse string
	TaxonomyFile   string
	MaxRetries     int
	RetryDelay     time.Duration
	RateLimit      int
	Temperature    float64
	MaxTokens      int
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string
	Format string
}

// ServerSettings configures the web view.
type ServerSettings struct {
	Addr    string
	CertDir string
	TLS     bool
}

// UISettings configures the terminal views.
type UISettings struct {
	Theme   string
	NoColor bool
}

// apiKeyEnv lists the conventional environment variables checked per provider
// when no key is configured.
var apiKeyEnv = map[string][]string{
	"openai":    {"OPENAI_API_KEY"},
	"anthropic": {"ANTHROPIC_API_KEY"},
	"gemini":    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// SetDefaults registers default values for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", time.Second)
	v.SetDefault("llm.rate_limit", 60)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.max_tokens", 200)

	v.SetDefault("classifier.timeout", 60*time.Second)
	v.SetDefault("export.path", "po_classification.json")
	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", "~/.config/potax/certs")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.no_color", false)
}

// Load resolves Settings from v. Values from the config file or POTAX_
// environment variables win over provider-specific environment variables.
func Load(v *viper.Viper) (Settings, error) {
	provider := strings.ToLower(v.GetString("llm.provider"))

	s := Settings{
		LLM: LLMSettings{
			Provider:       provider,
			Model:          v.GetString("llm.model"),
			APIKey:         v.GetString(fmt.Sprintf("llm.%s_api_key", provider)),
			BaseURL:        v.GetString("llm.base_url"),
			ClaudeCodePath: v.GetString("llm.claude_code_path"),
			StaticResponse: v.GetString("llm.static_response"),
			TaxonomyFile:   ExpandPath(v.GetString("llm.taxonomy_file")),
			MaxRetries:     v.GetInt("llm.max_retries"),
			RetryDelay:     v.GetDuration("llm.retry_delay"),
			RateLimit:      v.GetInt("llm.rate_limit"),
			Temperature:    v.GetFloat64("llm.temperature"),
			MaxTokens:      v.GetInt("llm.max_tokens"),
		},
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Server: ServerSettings{
			Addr:    v.GetString("server.addr"),
			TLS:     v.GetBool("server.tls"),
			CertDir: ExpandPath(v.GetString("server.cert_dir")),
		},
		UI: UISettings{
			Theme:   v.GetString("ui.theme"),
			NoColor: v.GetBool("ui.no_color"),
		},
		ExportPath: ExpandPath(v.GetString("export.path")),
		Timeout:    v.GetDuration("classifier.timeout"),
	}

	if s.LLM.APIKey == "" {
		for _, name := range apiKeyEnv[provider] {
			if key := os.Getenv(name); key != "" {
				s.LLM.APIKey = key
				break
			}
		}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports settings that cannot work.
func (s Settings) Validate() error {
	if s.LLM.Provider == "" {
		return fmt.Errorf("%w: llm.provider", common.ErrMissingConfig)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: classifier.timeout must not be negative", common.ErrInvalidConfig)
	}
	if s.LLM.MaxRetries < 0 {
		return fmt.Errorf("%w: llm.max_retries must not be negative", common.ErrInvalidConfig)
	}
	if s.LLM.RateLimit < 0 {
		return fmt.Errorf("%w: llm.rate_limit must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
