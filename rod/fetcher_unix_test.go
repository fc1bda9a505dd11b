//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizperch/perch/rod"
)

func TestFetcher_Close_StopsBrowserProcess(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)), "browser should be running")

	require.NoError(t, fetcher.Close())
	time.Sleep(100 * time.Millisecond)

	// Signal 0 probes for the process without affecting it.
	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)), "browser should be stopped")
}
