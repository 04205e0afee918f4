package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	an "github.com/abhisek/focusflow/internal/analysis"
	"github.com/abhisek/focusflow/internal/appearance"
	"github.com/abhisek/focusflow/internal/backup"
	"github.com/abhisek/focusflow/internal/notify"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	analysisscreen "github.com/abhisek/focusflow/internal/screens/analysis"
	"github.com/abhisek/focusflow/internal/screens/settings"
	timerscreen "github.com/abhisek/focusflow/internal/screens/timer"
	"github.com/abhisek/focusflow/internal/session"
	"github.com/abhisek/focusflow/internal/timer"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Banner lifetimes. Zero keeps the banner until it is replaced.
const (
	shortBanner  = 3 * time.Second
	stickyBanner = 0
)

// Tab indexes.
const (
	TabTimer = iota
	TabAnalysis
	TabSettings
)

// Options are the dependencies of the root model.
type Options struct {
	Controller *Controller

	// Clock drives the timer. Defaults to the system clock.
	Clock timer.Clock

	// Notifier receives completion notices. Nil disables them.
	Notifier     notify.Notifier
	NotifyStatus string

	// Portal follows the OS color scheme. Nil means light.
	Portal *appearance.PortalWatcher

	// ExportDir receives backups exported without an explicit path.
	ExportDir string

	Logger *zap.Logger
}

type osThemeMsg struct {
	Dark bool
}

type clearBannerMsg struct {
	Seq int
}

type analysisDoneMsg struct {
	Job      Job
	Analysis an.Analysis
	Err      error
}

// AppModel is the root Bubble Tea model. It owns the timer machine and
// applies every state change requested by the screens.
type AppModel struct {
	ctrl     *Controller
	machine  *timer.Machine
	notifier notify.Notifier
	logger   *zap.Logger
	router   *router.Router

	timerScreen *timerscreen.Screen

	osDark    bool
	exportDir string
	now       func() time.Time

	banner    string
	bannerErr bool
	bannerSeq int

	width  int
	height int
}

// NewAppModel wires the screens around a shared timer machine.
func NewAppModel(opts Options) AppModel {
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ctrl := opts.Controller
	machine := timer.New(opts.Clock, ctrl.Durations())
	ts := timerscreen.New(machine, ctrl)
	tabs := router.New(ts, analysisscreen.New(ctrl), settings.New(ctrl, opts.NotifyStatus))

	m := AppModel{
		ctrl:        ctrl,
		machine:     machine,
		notifier:    opts.Notifier,
		logger:      opts.Logger.Named("ui"),
		router:      tabs,
		timerScreen: ts,
		exportDir:   opts.ExportDir,
		now:         time.Now,
	}

	if opts.Portal != nil {
		dark, err := opts.Portal.PrefersDark()
		if err != nil {
			m.logger.Debug("color scheme unavailable", zap.Error(err))
		}
		m.osDark = dark
	}
	m.applyTheme()
	return m
}

func (m AppModel) applyTheme() {
	theme.Apply(appearance.IsDark(m.ctrl.Theme(), m.osDark))
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *AppModel) setBanner(text string, isErr bool, ttl time.Duration) tea.Cmd {
	m.bannerSeq++
	m.banner = text
	m.bannerErr = isErr
	if ttl == stickyBanner {
		return nil
	}
	seq := m.bannerSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg { return clearBannerMsg{Seq: seq} })
}

// flushPending records a study session still waiting for notes so that
// quitting never loses it.
func (m *AppModel) flushPending() {
	if m.machine.Snapshot().Status != timer.AwaitingFeedback {
		return
	}
	s, err := m.machine.DismissFeedback(session.NewID())
	if err == nil {
		m.ctrl.AppendSession(context.Background(), s)
	}
}

func (m AppModel) capturing() bool {
	if c, ok := m.router.Active().(screen.InputCapturer); ok {
		return c.CapturingInput()
	}
	return false
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			m.flushPending()
			return m, tea.Quit
		}
		if !m.capturing() {
			switch key {
			case "q":
				m.flushPending()
				return m, tea.Quit
			case "1", "2", "3":
				return m, m.router.Switch(int(key[0] - '1'))
			case "tab":
				return m, m.router.Next()
			}
		}

	case timerscreen.TickMsg:
		return m.handleTick(msg)

	case clearBannerMsg:
		if msg.Seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil

	case osThemeMsg:
		m.osDark = msg.Dark
		m.applyTheme()
		return m, nil

	case screen.AnalyzeMsg:
		return m.startAnalysis()

	case analysisDoneMsg:
		m.ctrl.CompleteAnalysis(ctx, msg.Job, msg.Analysis, msg.Err)
		if msg.Err != nil {
			return m, m.setBanner(UserMessage(msg.Err), true, stickyBanner)
		}
		return m, m.setBanner("Analysis ready.", false, shortBanner)

	case screen.AddPresetMsg:
		_, err := m.ctrl.AddPreset(ctx, msg.Name, msg.Study, msg.Rest)
		return m, m.presetResult(screen.OpAddPreset, "Preset added.", err)

	case screen.DeletePresetMsg:
		err := m.ctrl.DeletePreset(ctx, msg.ID)
		return m, m.presetResult(screen.OpDeletePreset, "Preset deleted.", err)

	case screen.ActivatePresetMsg:
		err := m.ctrl.ActivatePreset(ctx, msg.ID)
		return m, m.presetResult(screen.OpActivatePreset, "Preset activated.", err)

	case screen.SetThemeMsg:
		m.ctrl.SetTheme(ctx, msg.Theme)
		m.applyTheme()
		return m, m.result(screen.OpSetTheme, "", nil)

	case screen.SaveAPIKeyMsg:
		m.ctrl.SetAPIKey(ctx, msg.Key)
		text := "API key saved!"
		if !m.ctrl.HasAPIKey() {
			text = "API key removed."
		}
		return m, m.result(screen.OpSaveAPIKey, text, nil)

	case screen.ExportMsg:
		return m, m.export(msg.Path)

	case screen.ImportMsg:
		return m, m.importFile(msg.Path)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) handleTick(msg timerscreen.TickMsg) (tea.Model, tea.Cmd) {
	ev := m.machine.HandleTick(msg.Gen)
	if !ev.Completed {
		if m.machine.Running() && m.machine.Gen() == msg.Gen {
			return m, timerscreen.Tick(msg.Gen)
		}
		return m, nil
	}

	m.logger.Info("countdown completed", zap.String("type", string(ev.Type)))
	cmds := []tea.Cmd{m.notifyCmd(ev.Type)}
	if ev.Type == session.Study {
		cmds = append(cmds, m.router.Switch(TabTimer), m.timerScreen.PromptFeedback())
	} else {
		cmds = append(cmds, m.setBanner("Break's over! Ready when you are.", false, shortBanner))
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) notifyCmd(t session.Type) tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	n, logger := m.notifier, m.logger
	title, body := notify.Completion(t)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := n.Notify(ctx, title, body); err != nil {
			logger.Warn("notification failed", zap.Error(err))
		}
		return nil
	}
}

func (m AppModel) startAnalysis() (tea.Model, tea.Cmd) {
	job, err := m.ctrl.BeginAnalysis()
	if err != nil {
		ttl := time.Duration(stickyBanner)
		if errors.Is(err, an.ErrNoSessions) {
			ttl = shortBanner
		}
		return m, m.setBanner(UserMessage(err), true, ttl)
	}
	m.banner = ""
	ctrl := m.ctrl
	return m, func() tea.Msg {
		a, err := ctrl.RunJob(context.Background(), job)
		return analysisDoneMsg{Job: job, Analysis: a, Err: err}
	}
}

// result delivers the outcome of a request to the active screen.
func (m *AppModel) result(op screen.Op, text string, err error) tea.Cmd {
	if err != nil {
		text = UserMessage(err)
	}
	return m.router.Update(screen.ResultMsg{Op: op, Text: text, Err: err})
}

// presetResult reports a preset operation. SetDurations ignores durations
// it already has, so edits to inactive presets leave the countdown alone.
func (m *AppModel) presetResult(op screen.Op, text string, err error) tea.Cmd {
	if err == nil {
		m.machine.SetDurations(m.ctrl.Durations())
	}
	return m.result(op, text, err)
}

func (m *AppModel) export(path string) tea.Cmd {
	if path == "" {
		path = filepath.Join(m.exportDir, backup.FileName(m.now()))
	}
	err := m.writeBackup(path)
	if err != nil {
		m.logger.Error("export failed", zap.String("path", path), zap.Error(err))
		return m.router.Update(screen.ResultMsg{Op: screen.OpExport, Text: "Export failed: " + err.Error(), Err: err})
	}
	return m.result(screen.OpExport, "Backup saved to "+path, nil)
}

func (m *AppModel) writeBackup(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.ctrl.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (m *AppModel) importFile(path string) tea.Cmd {
	f, err := os.Open(path)
	if err != nil {
		m.logger.Warn("import failed", zap.String("path", path), zap.Error(err))
		return m.router.Update(screen.ResultMsg{Op: screen.OpImport, Text: MsgImportFailed, Err: err})
	}
	defer f.Close()

	if err := m.ctrl.Import(context.Background(), f); err != nil {
		m.logger.Warn("import rejected", zap.String("path", path), zap.Error(err))
		text := MsgImportFailed
		var verr *backup.ValidationError
		if errors.As(err, &verr) {
			text = MsgInvalidImport
		}
		return m.router.Update(screen.ResultMsg{Op: screen.OpImport, Text: text, Err: err})
	}
	return tea.Batch(
		m.result(screen.OpImport, MsgImported, nil),
		m.setBanner(MsgImported, false, shortBanner),
	)
}

var tabBar = []layout.Tab{
	{Key: "1", Label: "Timer"},
	{Key: "2", Label: "Analysis"},
	{Key: "3", Label: "Settings"},
}

func (m AppModel) headerTabs() []layout.Tab {
	out := append([]layout.Tab(nil), tabBar...)
	if m.machine.Running() && m.router.Index() != TabTimer {
		out[TabTimer].Label += " ●"
	}
	if n := m.ctrl.PendingCount(); n > 0 {
		out[TabAnalysis].Label += fmt.Sprintf(" (%d)", n)
	}
	return out
}

func (m AppModel) status() string {
	snap := m.machine.Snapshot()
	style := lipgloss.NewStyle().Foreground(theme.SessionColor(snap.Type == session.Study)).Bold(true)
	switch snap.Status {
	case timer.Running:
		return style.Render(fmt.Sprintf("● %s %s", snap.Type.Label(), timer.FormatClock(snap.Remaining)))
	case timer.Paused:
		return style.Render(fmt.Sprintf("❚❚ %s %s", snap.Type.Label(), timer.FormatClock(snap.Remaining)))
	case timer.AwaitingFeedback:
		return style.Render("✎ Add notes")
	}
	return ""
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	frame := layout.Frame{
		Tabs:   m.headerTabs(),
		Active: m.router.Index(),
		Status: m.status(),
	}
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		frame.Hints = hp.KeyHints()
	}
	if m.banner != "" {
		style := theme.SuccessText
		if m.bannerErr {
			style = theme.ErrorText
		}
		frame.Banner = style.Render(m.banner)
	}
	return frame.Render(m.width, m.height, m.router.View)
}

// Run starts the Bubble Tea program and follows the OS color scheme while
// it runs.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewAppModel(opts))

	if opts.Portal != nil {
		logger := opts.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		go func() {
			err := opts.Portal.Watch(ctx, func(dark bool) {
				p.Send(osThemeMsg{Dark: dark})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("color scheme watch stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
