package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session and analysis history as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if out == "-" {
			return env.ctrl.Export(os.Stdout)
		}
		if out == "" {
			out = backup.FileName(time.Now())
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := env.ctrl.Export(f); err != nil {
			f.Close()
			return fmt.Errorf("write backup: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions and %d analyses to %s\n",
			len(env.ctrl.Sessions()), len(env.ctrl.Analyses()), out)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace history with a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", app.MsgImportFailed, err)
		}
		defer f.Close()

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.ctrl.Import(cmd.Context(), f); err != nil {
			return fmt.Errorf("%s: %w", app.UserMessage(err), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d sessions, %d analyses.\n",
			app.MsgImported, len(env.ctrl.Sessions()), len(env.ctrl.Analyses()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file (default focusflow-backup-YYYY-MM-DD.json, - for stdout)")
}
