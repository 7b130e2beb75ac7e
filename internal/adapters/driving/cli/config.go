package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
)

var configCheck bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Shows the settings resolved from ~/.cyberx/config.toml and the environment.
Credentials are masked.

Use --check to ping the configured LLM and embedding providers.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configCheck, "check", false, "validate provider connectivity")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Collector]")
	cmd.Printf("  ZenRows API Key: %s\n", settings.Collector.ZenRows.Masked())
	cmd.Printf("  Sources: %d\n", len(settings.Collector.Sources))
	cmd.Printf("  Rate: %g req/s\n", settings.Collector.RatePerSecond)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.LLM.Enabled))
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", settings.LLM.Key.Masked())
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", settings.Embedding.Key.Masked())
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", settings.Index.Backend.Description())
	cmd.Printf("  Collection: %s\n", settings.Index.Collection)
	switch settings.Index.Backend {
	case domain.IndexBackendSQLite:
		path := settings.Index.SQLitePath
		if path == "" {
			path = "(in-memory)"
		}
		cmd.Printf("  Path: %s\n", path)
	case domain.IndexBackendWeaviate:
		cmd.Printf("  URL: %s\n", settings.Index.WeaviateURL)
	}
	cmd.Println()

	cmd.Println("[Run Log]")
	cmd.Printf("  Directory: %s\n", settings.RunLog.Dir)
	cmd.Printf("  Artifact: %s\n", domain.ArtifactName(settings.RunLog.Product, 1))
	cmd.Println()

	if !configCheck {
		return nil
	}

	validator := newValidator()
	ctx := commandContext(cmd)
	if err := validator.ValidateLLM(ctx, &settings.LLM); err != nil {
		cmd.Printf("LLM: %v\n", err)
	} else {
		cmd.Println("LLM: ok")
	}
	if err := validator.ValidateEmbedding(ctx, &settings.Embedding); err != nil {
		cmd.Printf("Embedding: %v\n", err)
	} else {
		cmd.Println("Embedding: ok")
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
