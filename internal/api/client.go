package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/types"
)

const (
	// ExamsPath is the collection resource
	ExamsPath = "/api/exams"

	// DefaultTimeout applies when Options.Timeout is zero
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds the response body copied into status errors
	maxErrorBody = 256
)

// Options configures a Client
type Options struct {
	BaseURL string
	Timeout time.Duration
	Token   string
	TLS     *types.TLSConfig
	Logger  *logrus.Logger

	// HTTPClient overrides the transport built from Timeout/TLS (tests)
	HTTPClient *http.Client
}

// Client talks to the exam backend
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	logger     *logrus.Logger
}

// New creates a client for opts.BaseURL
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base URL must use http or https: %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = buildHTTPClient(opts.Timeout, opts.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		token:      opts.Token,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListPath returns the collection path filtered by status
func ListPath(status types.Status) string {
	return ExamsPath + "?" + url.Values{"status": {string(status)}}.Encode()
}

// ExamPath returns the resource path of a single exam
func ExamPath(id int64) string {
	return ExamsPath + "/" + strconv.FormatInt(id, 10)
}

// ListExams fetches the exams with the given status, in backend order
func (c *Client) ListExams(ctx context.Context, status types.Status) ([]types.Exam, error) {
	var exams []types.Exam
	if err := c.do(ctx, "list exams", http.MethodGet, ListPath(status), nil, &exams); err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []types.Exam{}
	}
	return exams, nil
}

// GetExam fetches a single exam
func (c *Client) GetExam(ctx context.Context, id int64) (*types.Exam, error) {
	var exam types.Exam
	if err := c.do(ctx, "get exam", http.MethodGet, ExamPath(id), nil, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// CreateExam creates an exam; the backend assigns its id and status
func (c *Client) CreateExam(ctx context.Context, req types.CreateExamRequest) (*types.Exam, error) {
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Op: "create exam", Method: http.MethodPost, Path: ExamsPath, Kind: KindRequest, Err: err}
	}
	var exam types.Exam
	if err := c.do(ctx, "create exam", http.MethodPost, ExamsPath, req, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// UpdateStatus moves an exam between preparing and prepared
func (c *Client) UpdateStatus(ctx context.Context, id int64, status types.Status) (*types.Exam, error) {
	var exam types.Exam
	path := ExamPath(id) + "/status"
	if err := c.do(ctx, "update exam status", http.MethodPatch, path, types.UpdateStatusRequest{Status: status}, &exam); err != nil {
		return nil, err
	}
	return &exam, nil
}

// do performs a JSON request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	fail := func(kind ErrorKind, err error) error {
		return &RequestError{Op: op, Method: method, Path: path, Kind: kind, Err: err}
	}

	// base path prefixes are kept (http://host/backend + /api/exams)
	target, err := url.Parse(c.baseURL.String() + path)
	if err != nil {
		return fail(KindRequest, err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fail(KindRequest, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fail(KindRequest, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.logger.WithFields(logrus.Fields{
		"op":         op,
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return fail(KindTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	log = log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Warn("failed to read response body")
		return fail(KindTransport, fmt.Errorf("failed to read response body: %w", err))
	}

	if !IsSuccessStatus(resp.StatusCode) {
		log.Warn("unexpected status")
		return &RequestError{
			Op:     op,
			Method: method,
			Path:   path,
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			log.WithError(err).Warn("failed to decode response")
			return fail(KindDecode, err)
		}
	}

	log.Debug("request completed")
	return nil
}

// buildHTTPClient creates an HTTP client with optional TLS/mTLS configuration
func buildHTTPClient(timeout time.Duration, tlsConfig *types.TLSConfig) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if tlsConfig != nil {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: tlsConfig.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if tlsConfig.CertFile != "" && tlsConfig.KeyFile != "" {
			cert, err := tls.LoadX509KeyPair(tlsConfig.CertFile, tlsConfig.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if tlsConfig.CAFile != "" {
			caCert, err := os.ReadFile(tlsConfig.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// truncate caps s at n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
