package xhttp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/wuxler/kestractl/pkg/errdefs"
	"github.com/wuxler/kestractl/pkg/util/xio"
)

// maxErrorBytes specifies the default limit on how many response bytes are
// allowed in the server's error response. A typical error message is around
// 200 bytes. Hence, 8 KiB should be sufficient.
const maxErrorBytes int64 = 8 * 1024 // 8 KiB

// RequestError describes a failed HTTP exchange: either the transport failed
// (StatusCode is 0) or the server answered with a non-success status.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is the response body text, truncated to 8 KiB.
	Body string
	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "API request failed: %s %s", e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(b, ": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		fmt.Fprintf(b, ": %v", e.Err)
	}
	if e.Body != "" {
		fmt.Fprintf(b, "\nResponse body: %s", e.Body)
	}
	return b.String()
}

// Unwrap exposes the transport error and the errdefs category of the status.
func (e *RequestError) Unwrap() []error {
	var errs []error
	if category := errdefs.FromStatusCode(e.StatusCode); category != nil {
		errs = append(errs, category)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// IsSuccess reports whether the status code is 2xx or 3xx.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusBadRequest
}

// Success returns nil if the response status code is 2xx or 3xx, or a
// *RequestError carrying the response body otherwise.
//
// NOTE: This method will try to read resp.Body but not close it, so that the
// callers are expected to close resp.Body manually.
func Success(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if IsSuccess(resp.StatusCode) {
		return nil
	}
	reqErr := newRequestError(resp.Request)
	reqErr.StatusCode = resp.StatusCode
	if resp.Body != nil {
		content, truncated, err := xio.ReadAllLimit(resp.Body, maxErrorBytes)
		if err != nil {
			reqErr.Err = fmt.Errorf("unable to read response body: %w", err)
		}
		reqErr.Body = strings.TrimSpace(string(content))
		if truncated {
			reqErr.Body += " ..."
		}
	}
	return reqErr
}

// MakeRequestError wraps a transport error with the request information.
func MakeRequestError(req *http.Request, err error) error {
	if err == nil {
		return nil
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return err
	}
	reqErr = newRequestError(req)
	reqErr.Err = err
	return reqErr
}

func newRequestError(req *http.Request) *RequestError {
	if req == nil {
		return &RequestError{}
	}
	return &RequestError{
		Method: req.Method,
		URL:    req.URL.Redacted(),
	}
}
