package xhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"

	"github.com/wuxler/kestractl/pkg/xlog"
)

// maxDumpBodyBytes caps the body bytes written per request or response.
const maxDumpBodyBytes = 16 * 1024

var redactedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

var _ http.RoundTripper = (*DumpTransport)(nil)

// NewDumpTransport returns a new [DumpTransport] wrapping inner.
func NewDumpTransport(inner http.RoundTripper) *DumpTransport {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &DumpTransport{
		Out:   os.Stderr,
		Body:  true,
		Clock: clock.New(),
		inner: inner,
	}
}

// DumpTransport is an [http.RoundTripper] that writes every request and
// response to Out with credentials redacted.
type DumpTransport struct {
	Out io.Writer
	// Body enables dumping request and response bodies.
	Body bool
	// Clock measures the round trip duration.
	Clock clock.Clock

	inner http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *DumpTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	buf := &bytes.Buffer{}
	defer func() {
		if _, err := io.Copy(t.out(), buf); err != nil {
			xlog.Warnf("failed to dump request/response: %v", err)
		}
	}()

	t.dumpRequest(buf, req)

	start := t.clock().Now()
	resp, err := t.inner.RoundTrip(req)
	elapsed := t.clock().Since(start)
	if err != nil {
		fmt.Fprintf(buf, "<-- %s %s failed after %s: %v\n\n", req.Method, req.URL.Redacted(), elapsed, err)
		return resp, err
	}
	t.dumpResponse(buf, resp, elapsed)
	return resp, nil
}

func (t *DumpTransport) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}

func (t *DumpTransport) clock() clock.Clock {
	if t.Clock != nil {
		return t.Clock
	}
	return clock.New()
}

func (t *DumpTransport) dumpRequest(w io.Writer, req *http.Request) {
	fmt.Fprintf(w, "--> %s %s\n", req.Method, req.URL.Redacted())
	writeHeader(w, req.Header)
	if t.Body && req.Body != nil && req.Body != http.NoBody {
		body, err := peekBody(&req.Body)
		if err != nil {
			fmt.Fprintf(w, "\nfailed to dump request body: %v\n", err)
		} else if len(body) > 0 {
			fmt.Fprintf(w, "\n%s\n", truncateBody(body))
		}
	}
	fmt.Fprint(w, "\n")
}

func (t *DumpTransport) dumpResponse(w io.Writer, resp *http.Response, elapsed time.Duration) {
	fmt.Fprintf(w, "<-- %d %s %s %s (%s)\n",
		resp.StatusCode, http.StatusText(resp.StatusCode),
		resp.Request.Method, resp.Request.URL.Redacted(), elapsed)
	writeHeader(w, resp.Header)
	if t.Body && resp.Body != nil && resp.Body != http.NoBody {
		body, err := peekBody(&resp.Body)
		if err != nil {
			fmt.Fprintf(w, "\nfailed to dump response body: %v\n", err)
		} else if len(body) > 0 {
			fmt.Fprintf(w, "\n%s\n", truncateBody(body))
		}
	}
	fmt.Fprint(w, "\n")
}

func writeHeader(w io.Writer, header http.Header) {
	keys := lo.Keys(header)
	slices.Sort(keys)
	for _, key := range keys {
		value := strings.Join(header.Values(key), ", ")
		if lo.Contains(redactedHeaders, http.CanonicalHeaderKey(key)) {
			value = "<redacted>"
		}
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}
}

// peekBody reads the whole body and replaces it with an in-memory copy.
func peekBody(body *io.ReadCloser) ([]byte, error) {
	content, err := io.ReadAll(*body)
	_ = (*body).Close()
	*body = io.NopCloser(bytes.NewReader(content))
	return content, err
}

func truncateBody(body []byte) string {
	if len(body) <= maxDumpBodyBytes {
		return string(body)
	}
	return string(body[:maxDumpBodyBytes]) + " ... [truncated]"
}
