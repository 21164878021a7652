// Package workspace provides isolated per-run working directories for
// solver invocations.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tunahan/uniplanner/internal/pkg/logger"
)

// Manager allocates workspaces under a common root directory.
type Manager struct {
	root string
}

// NewManager creates a Manager, ensuring the root directory exists.
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace root %s: %w", root, err)
	}
	return &Manager{root: root}, nil
}

// Acquire creates a fresh workspace directory. The name embeds a timestamp
// and a random suffix so concurrent runs cannot collide.
func (m *Manager) Acquire() (*Workspace, error) {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := fmt.Sprintf("timetable_%d_%s", time.Now().UnixMilli(), suffix)
	dir := filepath.Join(m.root, name)

	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("Workspace acquired")
	return &Workspace{dir: dir}, nil
}

// Workspace is a private directory owned by one pipeline run.
type Workspace struct {
	dir string
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of a file inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile writes a file into the workspace.
func (w *Workspace) WriteFile(name string, data []byte) error {
	if err := os.WriteFile(w.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s into workspace: %w", name, err)
	}
	return nil
}

// Stage copies the given executables into the workspace, keeping their base
// names, and marks them executable.
func (w *Workspace) Stage(paths ...string) error {
	for _, src := range paths {
		dst := w.Path(filepath.Base(src))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to stage %s: %w", src, err)
		}
		if err := os.Chmod(dst, 0o755); err != nil {
			return fmt.Errorf("failed to mark %s executable: %w", dst, err)
		}
	}
	return nil
}

// Release removes the workspace directory and everything in it. Removal
// failures are logged, not returned: teardown must never mask the run's
// actual outcome.
func (w *Workspace) Release() {
	if err := os.RemoveAll(w.dir); err != nil {
		logger.Error().Err(err).Str("dir", w.dir).Msg("Failed to remove workspace directory")
		return
	}
	logger.Debug().Str("dir", w.dir).Msg("Workspace released")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
