package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests run without a TTY, so the action is executed directly.
func TestRunWithSpinner_NoTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("stdout is a terminal")
	}

	called := false
	err := RunWithSpinner(context.Background(), func() error {
		called = true
		return nil
	}, WithTitle("cargo new"))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestRunWithSpinner_ReturnsActionError(t *testing.T) {
	if IsTTY() {
		t.Skip("stdout is a terminal")
	}

	want := errors.New("cargo exited with status 101")
	err := RunWithSpinner(context.Background(), func() error { return want })
	assert.ErrorIs(t, err, want)
}
