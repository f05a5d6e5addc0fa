package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/usecase"
)

// Config represents application configuration
type Config struct {
	// Reddit API configuration
	Reddit RedditConfig

	// Agent behavior configuration
	Agent AgentConfig

	// OpenAI configuration (optional)
	OpenAI OpenAIConfig

	// Anthropic configuration (optional)
	Anthropic AnthropicConfig

	// Store configuration
	Store StoreConfig

	// Server configuration
	Server ServerConfig

	// Prompts configuration (loaded from YAML)
	Prompts *PromptsConfig

	// Debug mode
	Debug bool
}

// RedditConfig contains Reddit API configuration
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// AgentConfig contains agent behavior configuration
type AgentConfig struct {
	AutoReplyEnabled bool
	TriggerKeyword   string
	Provider         string
}

// OpenAIConfig contains OpenAI configuration
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// AnthropicConfig contains Anthropic configuration
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// StoreConfig contains store backend configuration
type StoreConfig struct {
	Backend       string // redis, sqlite, memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBPath        string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port              int
	StatsIntervalMins int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Store DB path for the sqlite backend
	dbPath := os.Getenv("SQLITE_DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".redditor", "store.db")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if val := os.Getenv("REDIS_DB"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			redisDB = parsed
		}
	}

	port := 8787
	if val := os.Getenv("PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			port = parsed
		}
	}

	statsInterval := 60
	if val := os.Getenv("STATS_INTERVAL_MINUTES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			statsInterval = parsed
		}
	}

	triggerKeyword := os.Getenv("TRIGGER_KEYWORD")
	if triggerKeyword == "" {
		triggerKeyword = "!ask"
	}

	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = "redditor/0.1.0"
	}

	// Auto reply defaults to enabled; only an explicit "false" disables it
	autoReply := !strings.EqualFold(os.Getenv("AUTO_REPLY_ENABLED"), "false")

	// Load prompts from YAML
	promptsConfig, _ := LoadPromptsConfig(os.Getenv("PROMPTS_CONFIG_PATH"))

	return &Config{
		Reddit: RedditConfig{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			Username:     os.Getenv("REDDIT_USERNAME"),
			Password:     os.Getenv("REDDIT_PASSWORD"),
			UserAgent:    userAgent,
		},
		Agent: AgentConfig{
			AutoReplyEnabled: autoReply,
			TriggerKeyword:   triggerKeyword,
			Provider:         os.Getenv("AI_PROVIDER"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  os.Getenv("OPENAI_MODEL"),
		},
		Anthropic: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  os.Getenv("ANTHROPIC_MODEL"),
		},
		Store: StoreConfig{
			Backend:       os.Getenv("STORE_BACKEND"),
			RedisAddr:     redisAddr,
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       redisDB,
			DBPath:        dbPath,
		},
		Server: ServerConfig{
			Port:              port,
			StatsIntervalMins: statsInterval,
		},
		Prompts: promptsConfig,
		Debug:   os.Getenv("DEBUG") == "true",
	}
}

// ToAgentConfig converts to the domain agent configuration
func (c *Config) ToAgentConfig() domain.AgentConfig {
	return domain.AgentConfig{
		AutoReplyEnabled: c.Agent.AutoReplyEnabled,
		TriggerKeyword:   c.Agent.TriggerKeyword,
		Provider:         domain.Provider(c.Agent.Provider),
	}
}

// ToPromptConfig converts to the usecase prompt configuration
func (c *Config) ToPromptConfig() usecase.PromptConfig {
	if c.Prompts == nil {
		return usecase.DefaultPromptConfig
	}

	return usecase.PromptConfig{
		SystemPrompt:          c.Prompts.Generator.SystemPrompt,
		NotConfiguredTemplate: c.Prompts.Generator.NotConfiguredTemplate,
		ApologyMessage:        c.Prompts.Generator.ApologyMessage,
		EmptyQuestionPrompt:   c.Prompts.Pipeline.EmptyQuestionPrompt,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		return &ConfigError{Field: "REDDIT_CLIENT_ID/REDDIT_CLIENT_SECRET", Message: "required"}
	}
	if c.Reddit.Username == "" || c.Reddit.Password == "" {
		return &ConfigError{Field: "REDDIT_USERNAME/REDDIT_PASSWORD", Message: "required"}
	}
	switch c.Agent.Provider {
	case "", string(domain.ProviderOpenAI), string(domain.ProviderAnthropic):
	default:
		return &ConfigError{Field: "AI_PROVIDER", Message: "must be openai or anthropic"}
	}
	return nil
}

// Report returns a human-readable configuration summary for the -check flag
func (c *Config) Report() string {
	var b strings.Builder

	b.WriteString("Redditor Configuration\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Debug mode: %v\n", c.Debug)
	fmt.Fprintf(&b, "Auto reply: %v\n", c.Agent.AutoReplyEnabled)
	fmt.Fprintf(&b, "Trigger keyword: %s\n", c.Agent.TriggerKeyword)
	agentCfg := c.ToAgentConfig()
	fmt.Fprintf(&b, "Provider: %s\n", agentCfg.EffectiveProvider())
	b.WriteString("\nReddit API:\n")
	fmt.Fprintf(&b, "  Client ID: %s\n", maskSecret(c.Reddit.ClientID))
	fmt.Fprintf(&b, "  Username: %s\n", orNotSet(c.Reddit.Username))
	fmt.Fprintf(&b, "  User agent: %s\n", c.Reddit.UserAgent)
	b.WriteString("\nAI providers:\n")
	fmt.Fprintf(&b, "  OpenAI: %s\n", configuredOrNot(c.OpenAI.APIKey))
	fmt.Fprintf(&b, "  Anthropic: %s\n", configuredOrNot(c.Anthropic.APIKey))
	b.WriteString("\nStore:\n")
	backend := c.Store.Backend
	if backend == "" {
		backend = "redis"
	}
	fmt.Fprintf(&b, "  Backend: %s\n", backend)
	fmt.Fprintf(&b, "  Redis: %s\n", c.Store.RedisAddr)
	fmt.Fprintf(&b, "  SQLite path: %s\n", c.Store.DBPath)

	return b.String()
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return strings.Repeat("*", 8)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func configuredOrNot(key string) string {
	if key == "" {
		return "not configured"
	}
	return "configured"
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
