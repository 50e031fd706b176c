//go:build !windows

package cargo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracel-ai/burn-cli/internal/testutil"
)

func TestProbe_Found(t *testing.T) {
	testutil.InstallFakeCargo(t, testutil.FakeCargo{})

	ok, err := NewProbe().Available(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProbe_Missing(t *testing.T) {
	testutil.InstallWhichOnly(t)

	ok, err := NewProbe().Available(context.Background())
	require.NoError(t, err, "absence is a normal false result")
	assert.False(t, ok)
}

func TestProbe_SpawnFailure(t *testing.T) {
	p := &Probe{Which: "/nonexistent/which"}

	ok, err := p.Available(context.Background())
	assert.False(t, ok)

	var checkErr *ToolCheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Contains(t, checkErr.Command, "/nonexistent/which")
}
