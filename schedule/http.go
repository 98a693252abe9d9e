package schedule

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAcceptLanguage = "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8"
	DefaultTimeout        = 15 * time.Second
)

// StatusError is returned when the schedule site answers with a non-2xx status
type StatusError struct {
	URL, Status string
	StatusCode  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, e.Status)
}

func checkStatus(r *http.Response) error {
	if r.StatusCode < 200 || r.StatusCode >= 300 {
		io.Copy(io.Discard, r.Body)
		r.Body.Close()
		return &StatusError{
			URL:        r.Request.URL.Redacted(),
			Status:     r.Status,
			StatusCode: r.StatusCode,
		}
	}
	return nil
}

// browserTransport makes requests look like a desktop browser; the site
// serves different markup to unknown clients.
type browserTransport struct {
	Base           http.RoundTripper
	UserAgent      string
	AcceptLanguage string
}

func (t *browserTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request = request.Clone(request.Context())
	request.Header.Set("User-Agent", t.UserAgent)
	request.Header.Set("Accept-Language", t.AcceptLanguage)
	if request.Header.Get("Accept") == "" {
		request.Header.Set("Accept", DefaultAccept)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(request)
}

// NewHTTPClient returns a client sending browser headers, bounded by timeout.
// Empty userAgent or acceptLanguage fall back to the defaults.
func NewHTTPClient(timeout time.Duration, userAgent, acceptLanguage string) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if acceptLanguage == "" {
		acceptLanguage = DefaultAcceptLanguage
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &browserTransport{
			UserAgent:      userAgent,
			AcceptLanguage: acceptLanguage,
		},
	}
}
