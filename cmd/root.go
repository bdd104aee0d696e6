package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sustainlab/materiality/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "materiality",
	Short: "Sustainability materiality assessment form",
	Long: "materiality: select 10 of the 19 sustainability topics, rate each one " +
		"and export the assessment as a spreadsheet-compatible file.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (overrides MATERIALITY_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file (overrides MATERIALITY_LOG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig reads the persistent flags and builds the effective
// configuration.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Resolve(config.Overrides{
		ConfigPath: flagValue(cmd, "config"),
		LogFile:    flagValue(cmd, "log-file"),
		LogLevel:   flagValue(cmd, "log-level"),
	})
}

func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
