package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/studiowebux/examcli/internal/filter"
	"github.com/studiowebux/examcli/internal/types"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorGray   = "\x1b[90m"
)

// UseColor reports whether f is a terminal and NO_COLOR is unset
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ValidateFormat rejects unknown output formats
func ValidateFormat(format string) error {
	switch format {
	case "", FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use table, json or yaml)", format)
	}
}

// ValidateQuery rejects a malformed JMESPath expression before any request is sent
func ValidateQuery(query string) error {
	if query == "" {
		return nil
	}
	return filter.Validate(query)
}

func writeExams(out OutputOptions, exams []types.Exam) error {
	if out.Query != "" || isStructured(out.Format) {
		return writeStructured(out, exams)
	}

	w := tabwriter.NewWriter(out.writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSUBJECT\tSTATUS\tDURATION")
	for _, e := range exams {
		duration := "-"
		if e.DurationMinutes > 0 {
			duration = fmt.Sprintf("%d min", e.DurationMinutes)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.DisplayTitle(), dash(e.Subject), colorStatus(e.Status, out.Color), duration)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(exams) == 0 {
		fmt.Fprintln(out.writer(), "No exams found")
	}
	return nil
}

func writeExam(out OutputOptions, exam types.Exam) error {
	if out.Query != "" || isStructured(out.Format) {
		return writeStructured(out, exam)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", exam.DisplayTitle(), colorStatus(exam.Status, out.Color))
	fmt.Fprintf(&b, "ID:          %d\n", exam.ID)
	fmt.Fprintf(&b, "Subject:     %s\n", dash(exam.Subject))
	if exam.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Duration:    %d min\n", exam.DurationMinutes)
	}
	if exam.QuestionCount > 0 {
		fmt.Fprintf(&b, "Questions:   %d\n", exam.QuestionCount)
	}
	if !exam.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Created:     %s\n", exam.CreatedAt.Format("2006-01-02 15:04"))
	}
	if exam.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", exam.Description)
	}
	_, err := io.WriteString(out.writer(), b.String())
	return err
}

func writeRecent(out OutputOptions, entries []types.RecentEntry) error {
	if out.Query != "" || isStructured(out.Format) {
		return writeStructured(out, entries)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(out.writer(), "No recently viewed exams")
		return err
	}

	w := tabwriter.NewWriter(out.writer(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tVIEWED\tVIEWS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			e.ExamID, e.Title, colorStatus(e.Status, out.Color), e.ViewedAt.Local().Format("2006-01-02 15:04"), e.ViewCount)
	}
	return w.Flush()
}

// writeStructured applies the query, then encodes as json (default) or yaml
func writeStructured(out OutputOptions, v any) error {
	var data any = v
	if out.Query != "" {
		filtered, err := filter.Apply(v, out.Query)
		if err != nil {
			return err
		}
		data = filtered
	}

	w := out.writer()
	if out.Format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func isStructured(format string) bool {
	return format == FormatJSON || format == FormatYAML
}

func colorStatus(status types.Status, color bool) string {
	if !color {
		return string(status)
	}
	switch status {
	case types.StatusPrepared:
		return colorGreen + string(status) + colorReset
	case types.StatusPreparing:
		return colorYellow + string(status) + colorReset
	default:
		return colorGray + string(status) + colorReset
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
