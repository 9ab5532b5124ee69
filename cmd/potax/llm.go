package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/potax/internal/config"
	"github.com/Veraticus/potax/internal/flow"
	"github.com/Veraticus/potax/internal/llm"
)

// createFlow builds the classification flow from configuration. It is
// shared by every command that classifies.
func createFlow() (*flow.Flow, config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, config.Settings{}, err
	}

	taxonomy, err := llm.LoadTaxonomy(settings.LLM.TaxonomyFile)
	if err != nil {
		return nil, settings, err
	}

	classifier, err := llm.NewClassifier(llm.Config{
		Taxonomy:       taxonomy,
		Provider:       settings.LLM.Provider,
		APIKey:         settings.LLM.APIKey,
		BaseURL:        settings.LLM.BaseURL,
		Model:          settings.LLM.Model,
		ClaudeCodePath: settings.LLM.ClaudeCodePath,
		StaticResponse: settings.LLM.StaticResponse,
		MaxRetries:     settings.LLM.MaxRetries,
		RetryDelay:     settings.LLM.RetryDelay,
		RateLimit:      settings.LLM.RateLimit,
		Temperature:    settings.LLM.Temperature,
		MaxTokens:      settings.LLM.MaxTokens,
	}, slog.Default())
	if err != nil {
		return nil, settings, fmt.Errorf("failed to create classifier: %w", err)
	}

	slog.Debug("classifier ready",
		"provider", settings.LLM.Provider,
		"model", settings.LLM.Model,
		"timeout", settings.Timeout,
		"taxonomy_paths", len(taxonomy.Paths()))

	return flow.New(classifier,
		flow.WithTimeout(settings.Timeout),
		flow.WithLogger(slog.Default()),
	), settings, nil
}
