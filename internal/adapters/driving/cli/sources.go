package cli

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured source articles",
	Long: `Lists the article URLs the collector scrapes, in order.
Override the list with collector.sources in ~/.cyberx/config.toml.`,
	Args: cobra.NoArgs,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	sources := settings.Collector.Sources
	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	cmd.Printf("Sources (%d):\n", len(sources))
	for i, url := range sources {
		cmd.Printf("  %2d. %s\n", i+1, url)
	}
	return nil
}
