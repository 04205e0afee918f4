package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/appearance"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|system]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(appearance.Light), string(appearance.Dark), string(appearance.System)},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), env.ctrl.Theme())
			return nil
		}
		t, err := appearance.Parse(args[0])
		if err != nil {
			return err
		}
		env.ctrl.SetTheme(cmd.Context(), t)
		fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", t)
		return nil
	},
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored Gemini API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key (reads stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(os.Stderr, "API key: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("empty key; use 'focusflow key clear' to remove it")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		env.ctrl.SetAPIKey(cmd.Context(), key)
		fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		env.ctrl.SetAPIKey(cmd.Context(), "")
		fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether an API key is stored",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.ctrl.HasAPIKey() {
			fmt.Fprintf(cmd.OutOrStdout(), "API key: saved (provider %s, model %s)\n", env.cfg.LLM.Provider, env.cfg.LLM.Model)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "API key: not set")
		}
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
