package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func validConfig() AppConfig {
	return AppConfig{
		Project: ProjectConfig{
			RootDir:  ".accord",
			TasksDir: "tasks",
		},
		Data: DataConfig{
			File:   "tasks.json",
			Format: "json",
		},
		Cycle: CycleConfig{
			DryRun:        true,
			MinConfidence: 0.7,
		},
		Agents: AgentsConfig{
			AgentA: LLMConfig{Provider: "openai", ModelName: "gpt-4o-mini", APIKey: "test-key"},
		},
	}
}

func TestAppConfig_Structure(t *testing.T) {
	config := validConfig()

	if config.Project.RootDir != ".accord" {
		t.Errorf("Project.RootDir mismatch: got %q, want %q", config.Project.RootDir, ".accord")
	}
	if config.Data.Format != "json" {
		t.Errorf("Data.Format mismatch: got %q, want %q", config.Data.Format, "json")
	}
	if config.Agents.AgentA.Provider != "openai" {
		t.Errorf("Agents.AgentA.Provider mismatch: got %q, want %q", config.Agents.AgentA.Provider, "openai")
	}
}

func TestAppConfig_Validation(t *testing.T) {
	v := validator.New()

	if err := v.Struct(validConfig()); err != nil {
		t.Errorf("valid config should pass validation: %v", err)
	}

	// Agents without any endpoint configured are valid; the CLI falls back to
	// local reviewers.
	bare := validConfig()
	bare.Agents = AgentsConfig{}
	if err := v.Struct(bare); err != nil {
		t.Errorf("credential-free config should pass validation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{name: "unsupported data format", mutate: func(c *AppConfig) { c.Data.Format = "xml" }},
		{name: "unsupported provider", mutate: func(c *AppConfig) { c.Agents.AgentA.Provider = "bedrock" }},
		{name: "confidence above one", mutate: func(c *AppConfig) { c.Cycle.MinConfidence = 1.5 }},
		{name: "temperature out of range", mutate: func(c *AppConfig) { c.Agents.AgentA.Temperature = 3.0 }},
		{name: "timeout too small", mutate: func(c *AppConfig) { c.Agents.AgentA.RequestTimeoutSeconds = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)
			if err := v.Struct(config); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
