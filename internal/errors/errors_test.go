package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWithStackTrace(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, ErrorWithStackTrace(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "boom", ErrorWithStackTrace(fmt.Errorf("boom")))
	})

	t.Run("wrapped error carries the call stack", func(t *testing.T) {
		err := WithStackTrace(ModuleNotFoundError{Module: "tests.Missing"})

		out := ErrorWithStackTrace(err)
		assert.Contains(t, out, `no module named "tests.Missing"`)
		assert.Contains(t, out, "errors_test.go")
	})

	t.Run("stack found behind another wrapper", func(t *testing.T) {
		err := fmt.Errorf("loading suite: %w", WithStackTrace(ModuleNotFoundError{Module: "tests.Missing"}))

		assert.Contains(t, ErrorWithStackTrace(err), "errors_test.go")
	})
}
