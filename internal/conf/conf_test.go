package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/redditor-labs/redditor/internal/biz/domain"
	"github.com/redditor-labs/redditor/internal/biz/usecase"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USERNAME", "agent-bot")
	t.Setenv("REDDIT_PASSWORD", "hunter2")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := LoadFromEnv()

	if !cfg.Agent.AutoReplyEnabled {
		t.Error("Expected auto reply enabled by default")
	}
	if cfg.Agent.TriggerKeyword != "!ask" {
		t.Errorf("Expected default keyword !ask, got %q", cfg.Agent.TriggerKeyword)
	}
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("Expected default redis addr, got %q", cfg.Store.RedisAddr)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("Expected default port 8787, got %d", cfg.Server.Port)
	}
	agentCfg := cfg.ToAgentConfig()
	if agentCfg.EffectiveProvider() != domain.ProviderOpenAI {
		t.Error("Expected openai as the default provider")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTO_REPLY_ENABLED", "false")
	t.Setenv("TRIGGER_KEYWORD", "!helpbot")
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("PORT", "9000")

	cfg := LoadFromEnv()

	if cfg.Agent.AutoReplyEnabled {
		t.Error("Expected auto reply disabled")
	}
	if cfg.Agent.TriggerKeyword != "!helpbot" {
		t.Errorf("Unexpected keyword %q", cfg.Agent.TriggerKeyword)
	}
	agentCfg := cfg.ToAgentConfig()
	if agentCfg.EffectiveProvider() != domain.ProviderAnthropic {
		t.Error("Expected anthropic provider")
	}
	if cfg.Store.Backend != "sqlite" {
		t.Errorf("Unexpected backend %q", cfg.Store.Backend)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Unexpected port %d", cfg.Server.Port)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error without reddit credentials")
	}
}

func TestValidate_BadProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AI_PROVIDER", "skynet")

	cfg := LoadFromEnv()
	if err := cfg.Validate(); err == nil {
		t.Error("Expected validation error for unknown provider")
	}
}

func TestLoadPromptsConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadPromptsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadPromptsConfig failed: %v", err)
	}
	if cfg.Pipeline.EmptyQuestionPrompt != usecase.DefaultPromptConfig.EmptyQuestionPrompt {
		t.Error("Expected default empty-question prompt")
	}
}

func TestLoadPromptsConfig_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "generator:\n  apology_message: \"custom apology\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write prompts file: %v", err)
	}

	cfg, err := LoadPromptsConfig(path)
	if err != nil {
		t.Fatalf("LoadPromptsConfig failed: %v", err)
	}

	if cfg.Generator.ApologyMessage != "custom apology" {
		t.Errorf("Expected custom apology, got %q", cfg.Generator.ApologyMessage)
	}
	if cfg.Generator.SystemPrompt != usecase.DefaultPromptConfig.SystemPrompt {
		t.Error("Expected default system prompt to fill in")
	}
}
