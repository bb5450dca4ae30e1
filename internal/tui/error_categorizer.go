package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/studiowebux/examcli/internal/api"
)

// Footer and dialog messages for failures talking to the exam backend
const (
	msgCancelled    = "Request cancelled"
	msgTimeout      = "Exam backend timed out - raise api.timeout in config.yaml (default 30s)"
	msgRefused      = "Exam backend refused the connection - is it running at api.base_url?"
	msgReset        = "Exam backend dropped the connection - it may have restarted"
	msgUnreachable  = "Network unreachable - check your connection and firewall"
	msgDNS          = "Cannot resolve the backend host - check api.base_url"
	msgProxy        = "Proxy connection failed - check HTTP_PROXY and HTTPS_PROXY"
	msgRedirects    = "Too many redirects - check api.base_url"
	msgBadURL       = "Invalid api.base_url - use an http:// or https:// URL"
	msgClosed       = "Exam backend closed the connection before replying"
	msgDecode       = "Unexpected response from server - body is not valid exam JSON"
	msgUntrustedTLS = "TLS certificate is not trusted - set api.ca_file or api.insecure_skip_verify in config.yaml"
	msgExpiredTLS   = "TLS certificate has expired or is not yet valid"
	msgHostTLS      = "TLS certificate does not match the backend host in api.base_url"
	msgHandshakeTLS = "TLS handshake failed - the backend may require a different TLS version"
	msgClientCert   = "Backend requires a client certificate - set api.cert_file and api.key_file"
)

// hint maps lowercase error text fragments to a message. First match wins.
type hint struct {
	needles []string
	message string
}

// Proxy is checked before refused because proxy errors usually say "connection refused" too.
var transportHints = []hint{
	{[]string{"context canceled", "context cancelled"}, msgCancelled},
	{[]string{"deadline exceeded"}, msgTimeout},
	{[]string{"proxy"}, msgProxy},
	{[]string{"no such host", "dial tcp: lookup"}, msgDNS},
	{[]string{"connection refused"}, msgRefused},
	{[]string{"connection reset"}, msgReset},
	{[]string{"network is unreachable", "no route to host"}, msgUnreachable},
	{[]string{"redirects"}, msgRedirects},
	{[]string{"unsupported protocol", "invalid url"}, msgBadURL},
	{[]string{"eof"}, msgClosed},
	{[]string{"timeout", "timed out"}, msgTimeout},
}

var tlsHints = []hint{
	{[]string{"unknown authority", "not trusted"}, msgUntrustedTLS},
	{[]string{"expired", "not yet valid"}, msgExpiredTLS},
	{[]string{"is valid for", "name mismatch"}, msgHostTLS},
	{[]string{"certificate required"}, msgClientCert},
	{[]string{"handshake"}, msgHandshakeTLS},
}

func matchHint(errLower string, hints []hint) (string, bool) {
	for _, h := range hints {
		for _, n := range h.needles {
			if strings.Contains(errLower, n) {
				return h.message, true
			}
		}
	}
	return "", false
}

func isTLSText(errLower string) bool {
	for _, n := range []string{"x509", "tls", "certificate"} {
		if strings.Contains(errLower, n) {
			return true
		}
	}
	return false
}

// describeTransport turns raw error text into a footer message
func describeTransport(errStr string) string {
	if errStr == "" {
		return ""
	}
	errLower := strings.ToLower(errStr)

	if isTLSText(errLower) {
		return describeTLS(errStr)
	}
	if msg, ok := matchHint(errLower, transportHints); ok {
		return msg
	}
	return "Request failed: " + errStr
}

// describeTLS covers certificate and handshake failures
func describeTLS(errStr string) string {
	if msg, ok := matchHint(strings.ToLower(errStr), tlsHints); ok {
		return msg
	}
	return "TLS error: " + errStr
}

// categorizeError maps an error from the exam client to user-facing text.
// Typed errors are checked first, the error text is the fallback.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.Kind {
		case api.KindStatus:
			return categorizeStatus(reqErr.Status, reqErr.Body)
		case api.KindDecode:
			return msgDecode
		case api.KindRequest:
			if reqErr.Err != nil {
				return reqErr.Err.Error()
			}
		case api.KindTransport:
			if reqErr.Err != nil {
				err = reqErr.Err
			}
		}
	}

	switch {
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return msgRefused
	case errors.Is(err, syscall.ECONNRESET):
		return msgReset
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return msgUnreachable
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return msgUntrustedTLS
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		return describeTLS(invalidCert.Error())
	}
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return msgHostTLS
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return msgDNS
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return msgTimeout
	}

	return describeTransport(err.Error())
}

// categorizeStatus describes a non-2xx reply from the exam API
func categorizeStatus(status int, body string) string {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if body != "" {
			return "Rejected by server: " + body
		}
		return "Rejected by server - check the submitted fields"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return "Not authorized - check api.token in config.yaml"
	case status == http.StatusNotFound:
		return "Not found - the exam may have been removed or api.base_url is wrong"
	case status >= 500:
		return fmt.Sprintf("Server error (%d) - try again later", status)
	default:
		return fmt.Sprintf("Server returned %d %s", status, http.StatusText(status))
	}
}
