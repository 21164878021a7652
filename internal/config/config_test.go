package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "uniplanner", cfg.Database.DBName)
	assert.Equal(t, "python3", cfg.Solver.PythonBin)
	assert.Equal(t, "2m", cfg.Solver.EngineTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_ParsesYamlFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	configYAML := `
server:
  port: "9090"
  mode: "production"
solver:
  engine_path: "/opt/solver/engine"
  engine_timeout: "30s"
logging:
  level: "debug"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "/opt/solver/engine", cfg.Solver.EnginePath)
	assert.Equal(t, "30s", cfg.Solver.EngineTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("SOLVER_PYTHON_BIN", "/usr/local/bin/python3.12")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	configYAML := `
server:
  port: "9090"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "/usr/local/bin/python3.12", cfg.Solver.PythonBin)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("missing JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret")
	})

	t.Run("malformed solver timeout", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("SOLVER_ENGINE_TIMEOUT", "soon")

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "engine timeout")
	})
}
