package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/api"
	"github.com/studiowebux/examcli/internal/config"
	"github.com/studiowebux/examcli/internal/examlist"
	"github.com/studiowebux/examcli/internal/fetch"
	"github.com/studiowebux/examcli/internal/history"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/logging"
	"github.com/studiowebux/examcli/internal/router"
	"github.com/studiowebux/examcli/internal/types"
)

// Options wires the model's collaborators
type Options struct {
	Client         ExamClient
	Recent         RecentStore // optional
	Logger         *logrus.Logger
	Keybinds       *keybinds.Registry
	Tab            types.Status
	MessageTimeout time.Duration // 0 disables auto-clear
}

// New creates a new TUI model
func New(opts Options) (Model, error) {
	if opts.Client == nil {
		return Model{}, errors.New("tui: client is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}

	client := opts.Client

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleTitle

	m := Model{
		client:   client,
		recent:   opts.Recent,
		logger:   opts.Logger,
		keybinds: opts.Keybinds,
		nav:      router.NewNavigator(),
		mode:     ModeList,
		view:     examlist.NewState(opts.Tab),
		exams: fetch.New[types.Status, []types.Exam](func(ctx context.Context, tab types.Status) ([]types.Exam, error) {
			return client.ListExams(ctx, tab)
		}),
		detail: fetch.New[int64, *types.Exam](func(ctx context.Context, id int64) (*types.Exam, error) {
			return client.GetExam(ctx, id)
		}),
		spinner:        s,
		create:         newCreateForm(),
		requestState:   &RequestState{},
		detailView:     viewport.New(80, 20),
		modalView:      viewport.New(80, 20), // For scrollable modals
		messageTimeout: opts.MessageTimeout,
	}

	return m, nil
}

// Run starts the TUI against the configured backend
func Run(settings config.Settings, tab types.Status) error {
	logger, closer, err := logging.NewFileLogger(settings.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := api.New(api.Options{
		BaseURL: settings.API.BaseURL,
		Timeout: settings.API.Timeout,
		Token:   settings.API.Token,
		TLS:     settings.TLS(),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	registry, err := keybinds.LoadOrDefault(filepath.Join(config.ConfigDir, keybinds.FileName))
	if err != nil {
		return err
	}

	// history is optional, the list works without it
	var recent RecentStore
	if mgr, err := history.NewManager(config.DatabasePath, client.BaseURL()); err != nil {
		logger.WithError(err).Warn("recently viewed exams disabled")
	} else {
		recent = mgr
	}

	if tab == "" {
		tab = settings.DefaultTab()
	}

	m, err := New(Options{
		Client:         client,
		Recent:         recent,
		Logger:         logger,
		Keybinds:       registry,
		Tab:            tab,
		MessageTimeout: settings.UI.MessageTimeout,
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"base_url": client.BaseURL(), "tab": m.view.Tab}).Info("starting tui")

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}

	return nil
}
