package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/examcli/internal/migrations"
	"github.com/studiowebux/examcli/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// DefaultLimit is used by Recent when limit is not positive
const DefaultLimit = 20

// Manager stores recently viewed exams in sqlite, scoped by backend base URL
type Manager struct {
	db      *sql.DB
	baseURL string
	now     func() time.Time
}

func NewManager(dbPath, baseURL string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, baseURL: baseURL, now: time.Now}, nil
}

// Record marks an exam as viewed. Repeat views bump view_count and refresh
// title/status.
func (m *Manager) Record(exam types.Exam) error {
	viewedAt := m.now().Local().Format(timestampLayout)

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin history write: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE recent_exams
		SET title = ?, status = ?, viewed_at = ?, view_count = view_count + 1
		WHERE exam_id = ? AND base_url = ?
	`, exam.DisplayTitle(), string(exam.Status), viewedAt, exam.ID, m.baseURL)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update history entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		_, err = tx.Exec(`
			INSERT INTO recent_exams (exam_id, title, status, viewed_at, view_count, base_url)
			VALUES (?, ?, ?, ?, 1, ?)
		`, exam.ID, exam.DisplayTitle(), string(exam.Status), viewedAt, m.baseURL)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history entry: %w", err)
	}
	return nil
}

// Recent returns the most recently viewed exams, newest first
func (m *Manager) Recent(limit int) ([]types.RecentEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT exam_id, title, status, viewed_at, view_count
		FROM recent_exams
		WHERE base_url = ?
		ORDER BY viewed_at DESC, rowid DESC
		LIMIT ?
	`, m.baseURL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.RecentEntry, error) {
	entries := []types.RecentEntry{}
	for rows.Next() {
		var (
			entry    types.RecentEntry
			status   string
			viewedAt string
		)
		if err := rows.Scan(&entry.ExamID, &entry.Title, &status, &viewedAt, &entry.ViewCount); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.Status = types.Status(status)

		// sqlite3 driver may hand back RFC3339 for DATETIME columns
		if t, err := time.ParseInLocation(timestampLayout, viewedAt, time.Local); err == nil {
			entry.ViewedAt = t
		} else if t, err := time.Parse(time.RFC3339, viewedAt); err == nil {
			entry.ViewedAt = t
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}

// Clear removes all entries for the current backend
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM recent_exams WHERE base_url = ?`, m.baseURL); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Count() (int, error) {
	var count int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM recent_exams WHERE base_url = ?`, m.baseURL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
