package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/leguplabs/capframe/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage capframe configuration",
	Long: `Manage capframe configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CAPFRAME_*)
3. Config file (~/.capframe/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the resolved configuration including ontology extensions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (CAPFRAME_*)")
		fmt.Println("  3. Config file (~/.capframe/config.yaml)")
		fmt.Println("  4. Defaults")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.capframe/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.capframe"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'capframe config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		// Helper for writing with error checking
		printf := func(format string, a ...interface{}) {
			if err != nil {
				return
			}
			_, err = fmt.Fprintf(f, format, a...)
		}

		defaultCfg := model.DefaultConfig()

		printf("# capframe Configuration File\n")
		printf("#\n")
		printf("# Configuration hierarchy (highest to lowest priority):\n")
		printf("#   1. CLI flags\n")
		printf("#   2. Environment variables (CAPFRAME_*)\n")
		printf("#   3. This config file\n")
		printf("#   4. Built-in defaults\n\n")

		printf("# Ontology extensions. Entries here are merged on top of the\n")
		printf("# built-in lookup tables used by entity quality validation.\n")
		printf("ontology:\n")
		printf("  # Capitalized tokens that never name a single organization.\n")
		printf("  generic_terms: []\n")
		printf("  # Place names that must not become event subjects.\n")
		printf("  places: []\n")
		printf("  # Investor/institution names; valid subjects only for\n")
		printf("  # investment frames.\n")
		printf("  investors: []\n\n")

		printf("thresholds:\n")
		printf("  # Minimum frame confidence for graph_safe=true.\n")
		printf("  graph_safe: %.2f\n\n", defaultCfg.Thresholds.GraphSafe)

		printf("concurrency:\n")
		printf("  workers: %d\n", defaultCfg.Concurrency.Workers)
		printf("  # Max emitted events per second per publisher (0 = unlimited).\n")
		printf("  publisher_rate: %.0f\n", defaultCfg.Concurrency.PublisherRate)
		printf("  publisher_burst: %d\n\n", defaultCfg.Concurrency.PublisherBurst)

		printf("cache:\n")
		printf("  enabled: %v\n", defaultCfg.Cache.Enabled)
		printf("  ttl: %s\n\n", defaultCfg.Cache.TTL)

		printf("output:\n")
		printf("  verbose: %v\n", defaultCfg.Output.Verbose)
		printf("  pretty: %v\n", defaultCfg.Output.Pretty)

		if err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Created %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
