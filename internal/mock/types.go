package mock

import (
	"fmt"
	"time"

	"github.com/studiowebux/examcli/internal/types"
)

// Config represents the mock backend configuration
type Config struct {
	Port     int           `json:"port" yaml:"port"`         // Server port (default: 8080)
	Host     string        `json:"host" yaml:"host"`         // Server host (default: localhost)
	Delay    time.Duration `json:"delay" yaml:"delay"`       // Artificial latency applied to every request
	FailRate float64       `json:"failRate" yaml:"failRate"` // Fraction of requests answered with 500 (0..1)
	Logging  bool          `json:"logging" yaml:"logging"`   // Record requests for Follow
}

// Fixtures seeds the in-memory store
type Fixtures struct {
	Exams []types.Exam `json:"exams" yaml:"exams"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Query     string        `json:"query,omitempty"`
	RequestID string        `json:"requestId,omitempty"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

// String renders the entry as one access-log line
func (l RequestLog) String() string {
	target := l.Path
	if l.Query != "" {
		target += "?" + l.Query
	}
	line := fmt.Sprintf("%s %-5s %s %d %s", l.Timestamp.Format("15:04:05"), l.Method, target, l.Status, l.Duration.Round(time.Millisecond))
	if l.RequestID != "" {
		line += " id=" + l.RequestID
	}
	return line
}
