package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/testdrop/pkg/errors"
)

// CapturePanic runs fn and returns the recovered panic value, or nil.
func CapturePanic(fn func()) (recovered interface{}) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}

// RequireDropPanic checks that fn panics with a *errors.DropError carrying
// code and returns it. The test stops otherwise.
func RequireDropPanic(t *testing.T, code errors.ErrorCode, fn func(), msgAndArgs ...interface{}) *errors.DropError {
	t.Helper()

	r := CapturePanic(fn)
	msg := formatMessage(msgAndArgs...)
	require.NotNil(t, r, "%sExpected panic with code %s but function completed normally", msg, code)

	dropErr := errors.FromPanic(r)
	require.NotNil(t, dropErr, "%sExpected *errors.DropError panic, got %T: %v", msg, r, r)
	require.Equal(t, code, dropErr.Code, "%sUnexpected error code: %v", msg, dropErr)
	return dropErr
}

// AssertDropPanicMessage checks that fn panics with code and a message
// containing substr.
func AssertDropPanicMessage(t *testing.T, code errors.ErrorCode, substr string, fn func(), msgAndArgs ...interface{}) bool {
	t.Helper()

	dropErr := RequireDropPanic(t, code, fn, msgAndArgs...)
	return assert.Contains(t, dropErr.Error(), substr, msgAndArgs...)
}

// AssertNoDropPanic checks that fn completes without panicking.
func AssertNoDropPanic(t *testing.T, fn func(), msgAndArgs ...interface{}) bool {
	t.Helper()

	if r := CapturePanic(fn); r != nil {
		msg := formatMessage(msgAndArgs...)
		return assert.Fail(t, fmt.Sprintf("%sUnexpected panic: %v", msg, r))
	}
	return true
}

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}

	if len(msgAndArgs) == 1 {
		if msg, ok := msgAndArgs[0].(string); ok {
			return msg + "\n"
		}
		return fmt.Sprint(msgAndArgs[0]) + "\n"
	}

	// Check if first arg is a format string with format verbs
	if format, ok := msgAndArgs[0].(string); ok && strings.Contains(format, "%") {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + "\n"
	}

	parts := make([]string, len(msgAndArgs))
	for i, arg := range msgAndArgs {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ") + "\n"
}
