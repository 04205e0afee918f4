package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/notify"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := app.Options{
		Controller: env.ctrl,
		Logger:     env.logger,
	}

	var (
		notifiers notify.Multi
		status    []string
	)
	if env.cfg.DesktopNotifications() {
		desktop, err := notify.ConnectDesktop()
		if err != nil {
			env.logger.Warn("desktop notifications unavailable", zap.Error(err))
			status = append(status, "desktop unavailable")
		} else {
			defer desktop.Close()
			notifiers = append(notifiers, desktop)
			status = append(status, "desktop on")
		}
	} else {
		status = append(status, "desktop off")
	}
	if env.cfg.Bell() {
		notifiers = append(notifiers, notify.NewBell(os.Stdout))
		status = append(status, "bell on")
	} else {
		status = append(status, "bell off")
	}
	if len(notifiers) > 0 {
		opts.Notifier = notifiers
	}
	opts.NotifyStatus = strings.Join(status, ", ") + " (config [notify])"

	portal, err := appearance.ConnectPortal(env.logger)
	if err != nil {
		env.logger.Info("system color scheme unavailable", zap.Error(err))
	} else {
		defer portal.Close()
		opts.Portal = portal
	}

	return app.Run(cmd.Context(), opts)
}
