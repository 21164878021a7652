package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AcquireCreatesUniqueDirectories(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, err)

	a, err := m.Acquire()
	require.NoError(t, err)
	defer a.Release()
	b, err := m.Acquire()
	require.NoError(t, err)
	defer b.Release()

	assert.NotEqual(t, a.Dir(), b.Dir())
	assert.True(t, strings.HasPrefix(filepath.Base(a.Dir()), "timetable_"))

	info, err := os.Stat(a.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWorkspace_WriteFile(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	ws, err := m.Acquire()
	require.NoError(t, err)
	defer ws.Release()

	require.NoError(t, ws.WriteFile("courses.csv", []byte("course_id\nCS301\n")))

	data, err := os.ReadFile(ws.Path("courses.csv"))
	require.NoError(t, err)
	assert.Equal(t, "course_id\nCS301\n", string(data))
}

func TestWorkspace_StageMarksExecutable(t *testing.T) {
	src := filepath.Join(t.TempDir(), "engine")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\nexit 0\n"), 0o644))

	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	ws, err := m.Acquire()
	require.NoError(t, err)
	defer ws.Release()

	require.NoError(t, ws.Stage(src))

	// Staged under the base name, executable bit set.
	info, err := os.Stat(ws.Path("engine"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestWorkspace_StageMissingSourceFails(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	ws, err := m.Acquire()
	require.NoError(t, err)
	defer ws.Release()

	err = ws.Stage(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestWorkspace_ReleaseRemovesEverything(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	ws, err := m.Acquire()
	require.NoError(t, err)

	require.NoError(t, ws.WriteFile("schedule.csv", []byte("Course,Slot,Room\n")))
	ws.Release()

	_, err = os.Stat(ws.Dir())
	assert.True(t, os.IsNotExist(err))

	// Releasing twice is harmless.
	ws.Release()
}
