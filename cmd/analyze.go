package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze pending study sessions with the configured model",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		n := env.ctrl.PendingCount()
		if n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Analyzing %d study sessions...\n", n)
		}
		a, err := env.ctrl.Analyze(cmd.Context())
		if err != nil {
			return errors.New(app.UserMessage(err))
		}
		printAnalysis(cmd.OutOrStdout(), a)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show pending sessions, or past analyses with --analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if showAnalyses, _ := cmd.Flags().GetBool("analyses"); showAnalyses {
			analyses := env.ctrl.Analyses()
			if len(analyses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No analyses yet.")
				return nil
			}
			t := newTable("Date", "Sessions", "Min", "Conc", "Cap", "Well", "Happy")
			for _, a := range analyses {
				t.Row(a.Date.Local().Format("2006-01-02 15:04"), strconv.Itoa(a.SessionCount), strconv.Itoa(a.TotalStudyDuration),
					strconv.Itoa(a.Concentration), strconv.Itoa(a.StudyCapacity), strconv.Itoa(a.Wellbeing()), strconv.Itoa(a.Happiness))
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		}

		sessions := env.ctrl.Sessions()
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions since the last analysis.")
			return nil
		}
		t := newTable("Ended", "Type", "Min", "Notes")
		for _, s := range sessions {
			t.Row(s.EndTime.Local().Format("2006-01-02 15:04"), string(s.Type), strconv.Itoa(s.Duration), truncate(s.Notes, 40))
		}
		printTable(cmd.OutOrStdout(), t)
		study := session.FilterByType(sessions, session.Study)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d study sessions pending, %d min total\n", len(study), session.TotalMinutes(study))
		return nil
	},
}

func printAnalysis(w io.Writer, a analysis.Analysis) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Analysis of %d sessions (%d min), %s\n",
		a.SessionCount, a.TotalStudyDuration, a.Date.Local().Format(time.RFC1123))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "  Concentration   %3d\n", a.Concentration)
	fmt.Fprintf(w, "  Study capacity  %3d\n", a.StudyCapacity)
	fmt.Fprintf(w, "  Wellbeing       %3d  (stress %d)\n", a.Wellbeing(), a.Stress)
	fmt.Fprintf(w, "  Happiness       %3d\n", a.Happiness)
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Summary)
	fmt.Fprintln(w)
	for _, s := range a.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func init() {
	historyCmd.Flags().Bool("analyses", false, "List past analyses instead of pending sessions")
}
