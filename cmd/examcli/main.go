package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/studiowebux/examcli/internal/api"
	"github.com/studiowebux/examcli/internal/cli"
	"github.com/studiowebux/examcli/internal/config"
	"github.com/studiowebux/examcli/internal/history"
	"github.com/studiowebux/examcli/internal/logging"
	"github.com/studiowebux/examcli/internal/mock"
	"github.com/studiowebux/examcli/internal/tui"
	"github.com/studiowebux/examcli/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "examcli",
	Short: "examcli - terminal client for the exam backend",
	Long: `examcli browses and creates exams from the terminal.

Run without arguments to start the TUI. Subcommands reach the same API
non-interactively, and 'examcli mock' runs a local backend to try it against.

Settings live in ~/.examcli/config.yaml and can be overridden with
EXAMCLI_ environment variables (EXAMCLI_API_BASE_URL, EXAMCLI_LOG_LEVEL...).

Examples:
  examcli                               # Start interactive TUI
  examcli tui --tab prepared            # Start on the prepared tab
  examcli list --status all -o json     # Both tabs as JSON
  examcli list --query "[].title"       # JMESPath over the result
  examcli show 42                       # One exam
  examcli create --title "Midterm"      # New exam (starts as preparing)
  examcli mock --fixtures exams.yaml    # Local backend on :8080
  examcli mock --log --fail-rate 0.2    # Flaky backend with an access log`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(flagTab)
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive exam browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(flagTab)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exams by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}
		return cli.List(cmd.Context(), env.client, cli.ListOptions{
			Status: flagStatus,
			Output: env.output,
			Logger: env.logger,
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one exam (pick interactively when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}

		var id int64
		if len(args) == 1 {
			id, err = parseID(args[0])
			if err != nil {
				return err
			}
		} else {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("exam id is required when stdin is not a terminal")
			}
			id, err = pickExam(cmd.Context(), env.client)
			if err != nil {
				return err
			}
		}

		return cli.Show(cmd.Context(), env.client, id, env.output)
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an exam (new exams start as preparing)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}

		title := flagTitle
		if title == "" && isatty.IsTerminal(os.Stdin.Fd()) {
			title, err = cli.PromptForField(os.Stdin, "Title")
			if err != nil {
				return fmt.Errorf("failed to read title: %w", err)
			}
		}

		req := types.CreateExamRequest{
			Title:           title,
			Subject:         flagSubject,
			Description:     flagDescription,
			DurationMinutes: flagDuration,
		}
		return cli.Create(cmd.Context(), env.client, req, env.output)
	},
}

var prepareCmd = &cobra.Command{
	Use:   "prepare <id>",
	Short: "Mark an exam as prepared",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		env, err := newEnv()
		if err != nil {
			return err
		}
		return cli.Prepare(cmd.Context(), env.client, id, env.output)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed exams for the configured backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv()
		if err != nil {
			return err
		}

		mgr, err := history.NewManager(config.DatabasePath, env.client.BaseURL())
		if err != nil {
			return err
		}
		defer mgr.Close()

		if flagClear {
			if err := mgr.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Recently viewed exams cleared")
			return nil
		}
		return cli.Recent(mgr, flagLimit, env.output)
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run the in-memory mock exam backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd.Context())
	},
}

// Global flags
var (
	flagBaseURL string
	flagOutput  string
	flagQuery   string
)

// Flags for tui/root
var flagTab string

// Flags for list
var flagStatus string

// Flags for create
var (
	flagTitle       string
	flagSubject     string
	flagDescription string
	flagDuration    int
)

// Flags for recent
var (
	flagLimit int
	flagClear bool
)

// Flags for mock
var (
	mockPort     int
	mockHost     string
	mockFixtures string
	mockDelay    time.Duration
	mockFailRate float64
	mockLog      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides api.base_url)")

	rootCmd.Flags().StringVarP(&flagTab, "tab", "t", "", "Initial tab (preparing/prepared)")
	tuiCmd.Flags().StringVarP(&flagTab, "tab", "t", "", "Initial tab (preparing/prepared)")

	for _, c := range []*cobra.Command{listCmd, showCmd, createCmd, prepareCmd, recentCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", cli.FormatTable, "Output format (table/json/yaml)")
		c.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath expression applied to the result")
	}

	listCmd.Flags().StringVarP(&flagStatus, "status", "s", string(types.StatusPreparing), "Status to list (preparing/prepared/all)")

	createCmd.Flags().StringVar(&flagTitle, "title", "", "Exam title (prompted when omitted on a terminal)")
	createCmd.Flags().StringVar(&flagSubject, "subject", "", "Subject")
	createCmd.Flags().StringVar(&flagDescription, "description", "", "Description")
	createCmd.Flags().IntVar(&flagDuration, "duration", 0, "Duration in minutes")

	recentCmd.Flags().IntVarP(&flagLimit, "limit", "n", history.DefaultLimit, "Number of entries")
	recentCmd.Flags().BoolVar(&flagClear, "clear", false, "Clear the recently viewed list")

	mockCmd.Flags().IntVarP(&mockPort, "port", "p", 8080, "Port to listen on")
	mockCmd.Flags().StringVar(&mockHost, "host", "localhost", "Host to bind")
	mockCmd.Flags().StringVarP(&mockFixtures, "fixtures", "f", "", "Seed exams (.yaml/.yml/.json/.jsonc)")
	mockCmd.Flags().DurationVar(&mockDelay, "delay", 0, "Artificial latency per request")
	mockCmd.Flags().Float64Var(&mockFailRate, "fail-rate", 0, "Fraction of requests answered with 500 (0..1)")
	mockCmd.Flags().BoolVar(&mockLog, "log", false, "Print each request to stdout")

	rootCmd.AddCommand(tuiCmd, listCmd, showCmd, createCmd, prepareCmd, recentCmd, mockCmd)
}

// env is what the API subcommands share
type env struct {
	settings config.Settings
	logger   *logrus.Logger
	client   *api.Client
	output   cli.OutputOptions
}

func loadSettings() (config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return config.Settings{}, err
	}
	if flagBaseURL != "" {
		settings.API.BaseURL = flagBaseURL
	}
	return settings, nil
}

func newEnv() (*env, error) {
	if err := cli.ValidateFormat(flagOutput); err != nil {
		return nil, err
	}
	if err := cli.ValidateQuery(flagQuery); err != nil {
		return nil, err
	}

	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, settings.Log.Level)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL: settings.API.BaseURL,
		Timeout: settings.API.Timeout,
		Token:   settings.API.Token,
		TLS:     settings.TLS(),
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return &env{
		settings: settings,
		logger:   logger,
		client:   client,
		output: cli.OutputOptions{
			Format: flagOutput,
			Query:  flagQuery,
			Color:  cli.UseColor(os.Stdout),
			Out:    os.Stdout,
		},
	}, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid exam id %q", raw)
	}
	return id, nil
}

// pickExam lets the user choose among both tabs
func pickExam(ctx context.Context, client *api.Client) (int64, error) {
	var exams []types.Exam
	for _, status := range types.AllStatuses {
		page, err := client.ListExams(ctx, status)
		if err != nil {
			return 0, fmt.Errorf("failed to list %s exams: %w", status, err)
		}
		exams = append(exams, page...)
	}
	return cli.PickExam(exams)
}

// runTUI starts the interactive TUI
func runTUI(rawTab string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var tab types.Status
	if rawTab != "" {
		tab, err = types.ParseStatus(rawTab)
		if err != nil {
			return err
		}
	}
	return tui.Run(settings, tab)
}

// runMock runs the mock backend until interrupted
func runMock(ctx context.Context) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, settings.Log.Level)
	if err != nil {
		return err
	}

	if mockFailRate < 0 || mockFailRate > 1 {
		return fmt.Errorf("--fail-rate must be between 0 and 1")
	}

	var seed []types.Exam
	if mockFixtures != "" {
		fixtures, err := mock.LoadFixtures(mockFixtures)
		if err != nil {
			return err
		}
		seed = fixtures.Exams
	}

	srv := mock.NewServer(&mock.Config{
		Port:     mockPort,
		Host:     mockHost,
		Delay:    mockDelay,
		FailRate: mockFailRate,
		Logging:  mockLog,
	}, mock.NewStore(seed), logger)

	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Mock exam backend listening on %s (ctrl+c to stop)\n", srv.GetAddress())

	if mockLog {
		srv.Follow(ctx, os.Stdout)
	} else {
		<-ctx.Done()
	}

	logger.Info("stopping mock server")
	return srv.Stop()
}
