package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "Study/rest timer with AI session analysis",
	Long: "FocusFlow: terminal study/rest timer. Annotate finished study sessions " +
		"and ask Gemini for a wellbeing and productivity analysis.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOCUSFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (default $XDG_CONFIG_HOME/focusflow/config.toml)")

	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
