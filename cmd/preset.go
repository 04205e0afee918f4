package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/app"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage study/rest presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets; * marks the active one",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		activeID := env.ctrl.ActivePresetID()
		presets := env.ctrl.Presets()
		if len(presets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No presets. Add one with: focusflow preset add <name> <study> <rest>")
			return nil
		}

		t := newTable("", "Name", "Study", "Rest", "ID")
		for _, p := range presets {
			marker := ""
			if p.ID == activeID {
				marker = "*"
			}
			t.Row(marker, truncate(p.Name, 24), strconv.Itoa(p.Study), strconv.Itoa(p.Rest), p.ID)
		}
		printTable(cmd.OutOrStdout(), t)
		return nil
	},
}

var presetAddCmd = &cobra.Command{
	Use:   "add <name> <study-min> <rest-min>",
	Short: "Add a preset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		study, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid study minutes %q", args[1])
		}
		rest, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid rest minutes %q", args[2])
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := env.ctrl.AddPreset(cmd.Context(), args[0], study, rest)
		if err != nil {
			return fmt.Errorf("%s: %w", app.MsgInvalidPreset, err)
		}
		if use, _ := cmd.Flags().GetBool("use"); use {
			if err := env.ctrl.ActivatePreset(cmd.Context(), p.ID); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s) id=%s\n", p.Name, p.Summary(), p.ID)
		return nil
	},
}

var presetRmCmd = &cobra.Command{
	Use:   "rm <id|name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p, ok := env.ctrl.FindPreset(args[0])
		if !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}
		if err := env.ctrl.DeletePreset(cmd.Context(), p.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", p.Name)
		if next, ok := env.ctrl.ActivePreset(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Active preset: %s\n", next.Name)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No presets left; the timer uses Standard Focus durations.")
		}
		return nil
	},
}

var presetUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Make a preset active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p, ok := env.ctrl.FindPreset(args[0])
		if !ok {
			return fmt.Errorf("preset %q not found", args[0])
		}
		if err := env.ctrl.ActivatePreset(cmd.Context(), p.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active preset: %s (%s)\n", p.Name, p.Summary())
		return nil
	},
}

func init() {
	presetAddCmd.Flags().Bool("use", false, "Make the new preset active")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRmCmd)
	presetCmd.AddCommand(presetUseCmd)
}
