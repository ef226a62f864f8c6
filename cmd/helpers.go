package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/accordhq/accord/agent"
	"github.com/accordhq/accord/llm"
	"github.com/accordhq/accord/models"
	"github.com/accordhq/accord/store"
	"github.com/accordhq/accord/types"
	"github.com/accordhq/accord/workflow"
)

// GetTaskFilePath returns the full path to the tasks document.
func GetTaskFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.TasksDir, config.Data.File)
}

// GetStore initializes and returns the task store.
func GetStore() (store.TaskStore, error) {
	s := store.NewFileTaskStore()
	config := GetConfig()

	taskFilePath := GetTaskFilePath()
	err := s.Initialize(map[string]string{
		"dataFile":       taskFilePath,
		"dataFileFormat": config.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", taskFilePath, err)
	}
	return s, nil
}

// buildProvider constructs one agent's opinion provider from its endpoint
// config. Missing provider or credentials select the deterministic local
// reviewer, so the CLI works with no configuration at all.
func buildProvider(ctx context.Context, role models.AgentRole, cfg types.LLMConfig) agent.OpinionProvider {
	if cfg.Provider == "" {
		return agent.NewFallbackProvider(role)
	}
	completer, err := llm.NewCompleter(ctx, llm.Config{
		Provider:    cfg.Provider,
		Model:       cfg.ModelName,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Temperature: float32(cfg.Temperature),
	})
	if err != nil {
		LogError(fmt.Sprintf("agent %s endpoint unavailable, using local reviewer", role), err)
		return agent.NewFallbackProvider(role)
	}
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	return agent.NewRemoteProvider(role, completer, timeout, verbose)
}

// buildCoordinator wires the store and both providers.
func buildCoordinator(ctx context.Context) (*workflow.Coordinator, store.TaskStore, error) {
	taskStore, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	config := GetConfig()
	providerA := buildProvider(ctx, models.AgentA, config.Agents.AgentA)
	providerB := buildProvider(ctx, models.AgentB, config.Agents.AgentB)
	return workflow.NewCoordinator(taskStore, providerA, providerB), taskStore, nil
}

// buildRunner wires a cycle runner with the local default collaborators. The
// proposer reuses agent A's endpoint when one is configured.
func buildRunner(ctx context.Context, coordinator *workflow.Coordinator) *workflow.CycleRunner {
	config := GetConfig()

	var completer llm.Completer
	if cfg := config.Agents.AgentA; cfg.Provider != "" {
		c, err := llm.NewCompleter(ctx, llm.Config{
			Provider:    cfg.Provider,
			Model:       cfg.ModelName,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Temperature: float32(cfg.Temperature),
		})
		if err == nil {
			completer = c
		} else {
			LogError("proposal generator endpoint unavailable, using canned proposals", err)
		}
	}

	return workflow.NewCycleRunner(
		coordinator,
		&workflow.TreeAnalyzer{Root: "."},
		&workflow.LLMProposer{Completer: completer},
		&workflow.FileApplier{Root: ".", Verbose: verbose},
	)
}
