//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeywordSearch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	backend := newMockBackend()
	defer backend.Close()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp(backend.Env()...)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should show the title bar")
	require.True(t, tf.SeePlain("3개 결과"), "Initial search should return all rooms")

	// Enter keyword mode and search
	require.NoError(t, tf.SendKeys(KeyKeyword))
	require.True(t, tf.SeePlain("검색어:"), "Should show the keyword prompt")
	require.NoError(t, tf.TypeLine("신촌"))

	// The keyword commit goes through the debounce, then fetches
	require.True(t, tf.SeePlainWithin("1개 결과", 5*time.Second),
		"Keyword search should narrow to one room")

	tf.Quit()
}

func TestManualRefresh(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	backend := newMockBackend()
	defer backend.Close()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")

	err = tf.StartApp(backend.Env()...)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should show the title bar")
	require.True(t, tf.SeePlain("3개 결과"), "Initial search should complete")

	before := backend.SearchCount()
	require.NoError(t, tf.SendKeys(KeyRefresh))

	require.True(t, tf.WaitFor(func(string) bool {
		return backend.SearchCount() > before
	}, 3*time.Second), "Refresh should issue another search request")

	tf.Quit()
}
