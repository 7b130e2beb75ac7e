package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/dataset"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/fetcher/direct"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/fetcher/zenrows"
	"github.com/custodia-labs/cyberx-cli/internal/adapters/driven/storage/runlog"
	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cyberx-cli/internal/core/services"
	"github.com/custodia-labs/cyberx-cli/internal/logger"
	"github.com/custodia-labs/cyberx-cli/internal/normalisers/html"
)

// Collaborators the commands use. Tests replace them.
var (
	loadSettings = defaultLoadSettings
	newPipeline  = buildPipeline
	newValidator = func() driven.AIConfigValidator { return ai.NewConfigValidator() }
)

// defaultLoadSettings reads ~/.cyberx/config.toml and the environment.
func defaultLoadSettings() (domain.Settings, error) {
	dir, err := file.DefaultDir()
	if err != nil {
		return domain.Settings{}, err
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading config: %w", err)
	}
	return config.LoadSettings(store, os.Getenv)
}

// buildPipeline wires every adapter for one process. The returned cleanup
// releases AI services and the semantic index.
func buildPipeline(
	ctx context.Context,
	settings domain.Settings,
	reporter driven.ProgressReporter,
) (driving.Pipeline, func(), error) {
	threats, err := dataset.Threats()
	if err != nil {
		return nil, nil, err
	}
	table, err := dataset.Questions()
	if err != nil {
		return nil, nil, err
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt directory unavailable, using built-in prompts: %v", err)
		prompts = nil
	}

	aiResult := ai.Initialise(ctx, settings)

	limiter := fetcher.NewRateLimiter(settings.Collector.RatePerSecond)
	var primary driven.PageFetcher
	if key, ok := settings.Collector.ZenRows.Credential(); ok {
		zr, err := zenrows.New(zenrows.Config{
			APIKey:  key,
			Timeout: domain.PrimaryFetchTimeout,
			Limiter: limiter,
		})
		if err != nil {
			aiResult.Close()
			return nil, nil, err
		}
		primary = zr
	}
	fallback := direct.New(direct.Config{
		Timeout: domain.FallbackFetchTimeout,
		Limiter: limiter,
	})

	collector := services.NewCollectorService(primary, fallback, html.New())
	extractor := services.NewExtractorService(aiResult.LLMService, threats)
	indexer := services.NewIndexerService(aiResult.SemanticIndex, aiResult.EmbeddingService, settings.Index.Collection)
	store := runlog.NewStore(settings.RunLog.Dir, settings.RunLog.Product)

	pipeline := services.NewPipelineService(
		collector, extractor, indexer,
		aiResult.LLMService, table, store, settings.Collector.Sources,
	)
	pipeline.SetReporter(reporter)
	if prompts != nil {
		extractor.SetPromptStore(prompts)
		pipeline.SetPromptStore(prompts)
	}

	return pipeline, aiResult.Close, nil
}
