//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/depthcrawl"
	"github.com/fwojciec/depthcrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	defer manager.Close()

	firstPID := manager.LauncherPID()

	for range 3 {
		_, release, err := manager.OpenPage()
		require.NoError(t, err)
		release()
	}

	assert.Equal(t, 1, manager.Recycles())
	assert.NotEqual(t, firstPID, manager.LauncherPID())
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	firstPID := manager.LauncherPID()

	for range 5 {
		_, release, err := manager.OpenPage()
		require.NoError(t, err)
		release()
	}

	assert.Zero(t, manager.Recycles())
	assert.Equal(t, firstPID, manager.LauncherPID())
}

func TestBrowserManager_NeverRecyclesWhenDisabled(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(0))
	require.NoError(t, err)
	defer manager.Close()

	for range 3 {
		_, release, err := manager.OpenPage()
		require.NoError(t, err)
		release()
	}

	assert.Zero(t, manager.Recycles())
}

func TestBrowserManager_RecyclingKeepsLeasedTabsAlive(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer manager.Close()

	// The first tab stays open while the second lease replaces the browser.
	first, releaseFirst, err := manager.OpenPage()
	require.NoError(t, err)
	_, releaseSecond, err := manager.OpenPage()
	require.NoError(t, err)
	require.Equal(t, 1, manager.Recycles())

	result, err := first.Eval(`() => 40 + 2`)
	require.NoError(t, err)
	assert.Equal(t, 42, result.Value.Int())

	releaseFirst()
	releaseSecond()
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)

		require.NoError(t, manager.Close())
		require.NoError(t, manager.Close())
		assert.Zero(t, manager.LauncherPID())
	})

	t.Run("rejects new tabs afterwards", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)
		require.NoError(t, manager.Close())

		_, _, err = manager.OpenPage()

		assert.Equal(t, depthcrawl.EINVALID, depthcrawl.ErrorCode(err))
	})
}
