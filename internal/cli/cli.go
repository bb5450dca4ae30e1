package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/types"
	"golang.org/x/sync/errgroup"
)

// StatusAll lists both tabs in one call
const StatusAll = "all"

// Client is the part of the API client the subcommands use
type Client interface {
	ListExams(ctx context.Context, status types.Status) ([]types.Exam, error)
	GetExam(ctx context.Context, id int64) (*types.Exam, error)
	CreateExam(ctx context.Context, req types.CreateExamRequest) (*types.Exam, error)
	UpdateStatus(ctx context.Context, id int64, status types.Status) (*types.Exam, error)
}

// RecentStore reads the local history of viewed exams
type RecentStore interface {
	Recent(limit int) ([]types.RecentEntry, error)
}

// OutputOptions controls how results are written
type OutputOptions struct {
	Format string // table, json, yaml
	Query  string // JMESPath expression applied before json/yaml output
	Color  bool
	Out    io.Writer
}

func (o OutputOptions) writer() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// ListOptions contains options for the list subcommand
type ListOptions struct {
	Status string // preparing, prepared or all
	Output OutputOptions
	Logger *logrus.Logger
}

// List prints exams for one status, or for both when Status is "all"
func List(ctx context.Context, client Client, opts ListOptions) error {
	statuses, err := resolveStatuses(opts.Status)
	if err != nil {
		return err
	}

	results := make([][]types.Exam, len(statuses))
	g, gctx := errgroup.WithContext(ctx)
	for i, status := range statuses {
		g.Go(func() error {
			exams, err := client.ListExams(gctx, status)
			if err != nil {
				return fmt.Errorf("failed to list %s exams: %w", status, err)
			}
			results[i] = exams
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// keep received order within each status, statuses in tab order
	var exams []types.Exam
	for _, r := range results {
		exams = append(exams, r...)
	}
	if exams == nil {
		exams = []types.Exam{}
	}

	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{"status": opts.Status, "count": len(exams)}).Debug("listed exams")
	}

	return writeExams(opts.Output, exams)
}

func resolveStatuses(raw string) ([]types.Status, error) {
	if raw == "" || strings.EqualFold(raw, StatusAll) {
		return types.AllStatuses, nil
	}
	status, err := types.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return []types.Status{status}, nil
}

// Show prints a single exam
func Show(ctx context.Context, client Client, id int64, out OutputOptions) error {
	exam, err := client.GetExam(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get exam %d: %w", id, err)
	}
	return writeExam(out, *exam)
}

// Create validates req, sends it and prints the created exam
func Create(ctx context.Context, client Client, req types.CreateExamRequest, out OutputOptions) error {
	if err := req.Validate(); err != nil {
		return err
	}
	exam, err := client.CreateExam(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return writeExam(out, *exam)
}

// Prepare marks an exam as prepared and prints the result
func Prepare(ctx context.Context, client Client, id int64, out OutputOptions) error {
	exam, err := client.UpdateStatus(ctx, id, types.StatusPrepared)
	if err != nil {
		return fmt.Errorf("failed to mark exam %d prepared: %w", id, err)
	}
	return writeExam(out, *exam)
}

// Recent prints the locally recorded exam visits, newest first
func Recent(store RecentStore, limit int, out OutputOptions) error {
	entries, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read recently viewed exams: %w", err)
	}
	return writeRecent(out, entries)
}

// PromptForField asks for a value on stderr and reads one line from in
func PromptForField(in io.Reader, label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	reader := bufio.NewReader(in)
	value, err := reader.ReadString('\n')
	if err != nil && value == "" {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
