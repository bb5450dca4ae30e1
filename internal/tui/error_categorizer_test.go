package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/examcli/internal/api"
)

func TestDescribeTransport(t *testing.T) {
	tests := []struct {
		name   string
		errStr string
		want   string
	}{
		{"empty", "", ""},
		{"deadline", `Get "http://exams.test/api/exams": context deadline exceeded`, msgTimeout},
		{"cancelled", `Get "http://exams.test/api/exams": context canceled`, msgCancelled},
		{"dns", "dial tcp: lookup exams.invalid: no such host", msgDNS},
		{"refused", "dial tcp 127.0.0.1:9999: connect: connection refused", msgRefused},
		{"proxy before refused", "proxyconnect tcp: dial tcp 127.0.0.1:3128: connect: connection refused", msgProxy},
		{"reset", "read tcp 127.0.0.1:8080->127.0.0.1:54321: read: connection reset by peer", msgReset},
		{"unreachable", "dial tcp: network is unreachable", msgUnreachable},
		{"no route", "dial tcp 10.0.0.1:80: connect: no route to host", msgUnreachable},
		{"redirects", `Get "http://exams.test": stopped after 10 redirects`, msgRedirects},
		{"scheme", "unsupported protocol scheme \"ftp\"", msgBadURL},
		{"eof", "unexpected EOF", msgClosed},
		{"generic timeout", "i/o timeout", msgTimeout},
		{"unknown", "something odd", "Request failed: something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeTransport(tt.errStr))
		})
	}
}

func TestDescribeTLS(t *testing.T) {
	tests := []struct {
		name   string
		errStr string
		want   string
	}{
		{"unknown authority", "x509: certificate signed by unknown authority", msgUntrustedTLS},
		{"expired", "x509: certificate has expired or is not yet valid", msgExpiredTLS},
		{"hostname", "x509: certificate is valid for exams.test, not other.test", msgHostTLS},
		{"handshake", "remote error: tls: handshake failure", msgHandshakeTLS},
		{"client cert", "remote error: tls: certificate required", msgClientCert},
		{"other", "tls: protocol version not supported", "TLS error: tls: protocol version not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeTransport(tt.errStr))
		})
	}
}

func TestCategorizeError(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"canceled", context.Canceled, msgCancelled},
		{"wrapped deadline", fmt.Errorf("failed to list exams: %w", context.DeadlineExceeded), msgTimeout},
		{"refused errno", refused, msgRefused},
		{"refused inside url error", &url.Error{Op: "Get", URL: "http://exams.test", Err: refused}, msgRefused},
		{"reset errno", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, msgReset},
		{"host unreachable", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.EHOSTUNREACH}, msgUnreachable},
		{"dns error", &net.DNSError{Err: "no such host", Name: "exams.invalid", IsNotFound: true}, msgDNS},
		{"unknown authority", &url.Error{Op: "Get", URL: "https://exams.test", Err: x509.UnknownAuthorityError{}}, msgUntrustedTLS},
		{"hostname", x509.HostnameError{Certificate: &x509.Certificate{}, Host: "exams.test"}, msgHostTLS},
		{"plain text", errors.New("connection reset by peer"), msgReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeError(tt.err))
		})
	}
}

func TestCategorizeError_RequestError(t *testing.T) {
	tests := []struct {
		name string
		err  *api.RequestError
		want string
	}{
		{
			name: "bad request with body",
			err:  &api.RequestError{Op: "create exam", Kind: api.KindStatus, Status: 400, Body: "title is required"},
			want: "Rejected by server: title is required",
		},
		{
			name: "unprocessable without body",
			err:  &api.RequestError{Op: "create exam", Kind: api.KindStatus, Status: 422},
			want: "Rejected by server - check the submitted fields",
		},
		{
			name: "unauthorized",
			err:  &api.RequestError{Op: "list exams", Kind: api.KindStatus, Status: 401},
			want: "Not authorized - check api.token in config.yaml",
		},
		{
			name: "not found",
			err:  &api.RequestError{Op: "get exam", Kind: api.KindStatus, Status: 404},
			want: "Not found - the exam may have been removed or api.base_url is wrong",
		},
		{
			name: "server error",
			err:  &api.RequestError{Op: "list exams", Kind: api.KindStatus, Status: 503},
			want: "Server error (503) - try again later",
		},
		{
			name: "teapot",
			err:  &api.RequestError{Op: "list exams", Kind: api.KindStatus, Status: 418},
			want: "Server returned 418 I'm a teapot",
		},
		{
			name: "decode",
			err:  &api.RequestError{Op: "list exams", Kind: api.KindDecode, Err: errors.New("invalid character")},
			want: msgDecode,
		},
		{
			name: "request build",
			err:  &api.RequestError{Op: "create exam", Kind: api.KindRequest, Err: errors.New("json: unsupported value")},
			want: "json: unsupported value",
		},
		{
			name: "transport uses cause",
			err: &api.RequestError{Op: "list exams", Kind: api.KindTransport,
				Err: &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}},
			want: msgRefused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizeError(tt.err))
			assert.Equal(t, tt.want, categorizeError(fmt.Errorf("failed to load: %w", tt.err)))
		})
	}
}
