// Package xio provides helpers around io interfaces.
package xio

import (
	"io"
	"strings"

	"github.com/wuxler/kestractl/pkg/xlog"
)

// CloseAndSkipError is used to close the io.Closer and ignore the error returned.
func CloseAndSkipError(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// CloseAndLogError closes c and logs a warning when it fails. Prefer
// "defer xio.CloseAndLogError(rc)" over "defer rc.Close()".
func CloseAndLogError(c io.Closer, messages ...string) {
	if c == nil {
		return
	}
	err := c.Close()
	if err == nil {
		return
	}
	if len(messages) == 0 {
		xlog.Warnf("unable to close: %+v", err)
		return
	}
	xlog.Warnf("unable to close: %s: %+v", strings.Join(messages, ": "), err)
}

// ReadAllLimit reads at most limit bytes from r and reports whether the
// content was truncated.
func ReadAllLimit(r io.Reader, limit int64) ([]byte, bool, error) {
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return content, false, err
	}
	if int64(len(content)) > limit {
		return content[:limit], true, nil
	}
	return content, false, nil
}
