package xio_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/kestractl/pkg/util/xio"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseHelpers(t *testing.T) {
	called := 0
	c := closerFunc(func() error {
		called++
		return errors.New("boom")
	})
	xio.CloseAndSkipError(c)
	xio.CloseAndLogError(c, "response body")
	xio.CloseAndSkipError(nil)
	xio.CloseAndLogError(nil)
	assert.Equal(t, 2, called)
}

func TestReadAllLimit(t *testing.T) {
	content, truncated, err := xio.ReadAllLimit(strings.NewReader("hello"), 10)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "hello", string(content))

	content, truncated, err = xio.ReadAllLimit(strings.NewReader("hello world"), 5)
	require.NoError(t, err)
	assert.True(t, truncated)
	assert.Equal(t, "hello", string(content))

	content, truncated, err = xio.ReadAllLimit(strings.NewReader("exact"), 5)
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, "exact", string(content))
}
