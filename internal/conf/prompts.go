package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/redditor-labs/redditor/internal/biz/usecase"
)

// PromptsConfig contains all prompt configurations loaded from YAML
type PromptsConfig struct {
	Generator GeneratorPrompts `yaml:"generator"`
	Pipeline  PipelinePrompts  `yaml:"pipeline"`
}

// GeneratorPrompts contains generator-related prompts and messages
type GeneratorPrompts struct {
	SystemPrompt          string `yaml:"system_prompt"`
	NotConfiguredTemplate string `yaml:"not_configured_template"`
	ApologyMessage        string `yaml:"apology_message"`
}

// PipelinePrompts contains pipeline-related fixed messages
type PipelinePrompts struct {
	EmptyQuestionPrompt string `yaml:"empty_question_prompt"`
}

// LoadPromptsConfig loads prompts configuration from YAML file
func LoadPromptsConfig(configPath string) (*PromptsConfig, error) {
	// Try multiple paths
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/prompts.yaml",
			"./configs/prompts.yaml",
			"/etc/redditor/prompts.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "prompts.yaml"))
		}
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, "configs", "prompts.yaml"))
		}
	}

	var data []byte
	for _, p := range paths {
		if p == "" {
			continue
		}
		if read, err := os.ReadFile(p); err == nil {
			data = read
			break
		}
	}

	if data == nil {
		// No file found, run on defaults
		return DefaultPromptsConfig(), nil
	}

	var config PromptsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse prompts.yaml: %w", err)
	}

	config.fillDefaults()

	return &config, nil
}

// fillDefaults fills in default values for empty fields
func (c *PromptsConfig) fillDefaults() {
	defaults := DefaultPromptsConfig()

	if c.Generator.SystemPrompt == "" {
		c.Generator.SystemPrompt = defaults.Generator.SystemPrompt
	}
	if c.Generator.NotConfiguredTemplate == "" {
		c.Generator.NotConfiguredTemplate = defaults.Generator.NotConfiguredTemplate
	}
	if c.Generator.ApologyMessage == "" {
		c.Generator.ApologyMessage = defaults.Generator.ApologyMessage
	}
	if c.Pipeline.EmptyQuestionPrompt == "" {
		c.Pipeline.EmptyQuestionPrompt = defaults.Pipeline.EmptyQuestionPrompt
	}
}

// DefaultPromptsConfig returns the default prompts configuration
func DefaultPromptsConfig() *PromptsConfig {
	return &PromptsConfig{
		Generator: GeneratorPrompts{
			SystemPrompt:          usecase.DefaultPromptConfig.SystemPrompt,
			NotConfiguredTemplate: usecase.DefaultPromptConfig.NotConfiguredTemplate,
			ApologyMessage:        usecase.DefaultPromptConfig.ApologyMessage,
		},
		Pipeline: PipelinePrompts{
			EmptyQuestionPrompt: usecase.DefaultPromptConfig.EmptyQuestionPrompt,
		},
	}
}
