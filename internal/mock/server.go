package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/types"
)

// maxLogs bounds the in-memory request log
const maxLogs = 1000

// Server is the mock exam backend
type Server struct {
	config     *Config
	store      *Store
	logger     *logrus.Logger
	httpServer *http.Server
	logs       []RequestLog
	logsMutex  sync.RWMutex
	notifyCh   chan struct{} // Channel to notify when new log arrives
	shouldFail func() bool
}

// NewServer creates a new mock server
func NewServer(config *Config, store *Store, logger *logrus.Logger) *Server {
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.Host == "" {
		config.Host = "localhost"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		config:   config,
		store:    store,
		logger:   logger,
		logs:     make([]RequestLog, 0),
		notifyCh: make(chan struct{}, 100),
	}
	s.shouldFail = func() bool {
		return config.FailRate > 0 && rand.Float64() < config.FailRate
	}
	return s
}

// Handler returns the routed API handler
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logMiddleware, s.chaosMiddleware)

	r.HandleFunc("/api/exams", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/exams", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/api/exams/{id:[0-9]+}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/exams/{id:[0-9]+}/status", s.handleSetStatus).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Start binds the listen address and serves in the background.
// Bind failures such as a busy port are returned.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("mock server error")
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"address": s.GetAddress(),
		"exams":   s.store.Len(),
	}).Info("mock server started")
	return nil
}

// Stop stops the mock server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var status types.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := types.ParseStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}
	writeJSON(w, http.StatusOK, s.store.List(status))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	exam, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	exam, err := s.store.Create(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, exam)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	status, err := types.ParseStatus(string(req.Status))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exam, err := s.store.SetStatus(id, status)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

// chaosMiddleware applies the configured delay and failure rate
func (s *Server) chaosMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.Delay > 0 {
			select {
			case <-time.After(s.config.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if s.shouldFail() {
			writeError(w, http.StatusInternalServerError, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logMiddleware records every request
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			RequestID: r.Header.Get("X-Request-ID"),
			Status:    rec.status,
			Duration:  time.Since(start),
		}

		s.logger.WithFields(logrus.Fields{
			"method":     entry.Method,
			"path":       entry.Path,
			"query":      entry.Query,
			"status":     entry.Status,
			"request_id": entry.RequestID,
		}).Debug("mock request")

		if s.config.Logging {
			s.logRequest(entry)
		}
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}

	// Notify listeners (non-blocking)
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Drain returns the logged requests and empties the log
func (s *Server) Drain() []RequestLog {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	logs := s.logs
	s.logs = make([]RequestLog, 0)
	return logs
}

// Follow writes each logged request to w as it arrives until ctx is done.
// It needs Config.Logging.
func (s *Server) Follow(ctx context.Context, w io.Writer) {
	for {
		select {
		case <-ctx.Done():
			s.writeLogs(w)
			return
		case <-s.notifyCh:
			s.writeLogs(w)
		}
	}
}

func (s *Server) writeLogs(w io.Writer) {
	for _, entry := range s.Drain() {
		fmt.Fprintln(w, entry.String())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exam id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
