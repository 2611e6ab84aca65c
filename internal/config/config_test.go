package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != LogLevelInfo {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != LogFormatAuto {
		t.Errorf("Logging.Format = %s, want auto", cfg.Logging.Format)
	}
	if cfg.Compose.Program != "docker-compose" {
		t.Errorf("Compose.Program = %s, want docker-compose", cfg.Compose.Program)
	}
	if cfg.Process.StopGracePeriod != 3*time.Second {
		t.Errorf("StopGracePeriod = %v, want 3s", cfg.Process.StopGracePeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[logging]
level = "debug"
format = "text"
file = "logs/sr.log"

[compose]
program = "docker compose"

[process]
stop_grace_period = "500ms"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != LogLevelDebug {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != LogFormatText {
		t.Errorf("Logging.Format = %s, want text", cfg.Logging.Format)
	}
	if cfg.Compose.Program != "docker compose" {
		t.Errorf("Compose.Program = %s, want 'docker compose'", cfg.Compose.Program)
	}
	if cfg.Process.StopGracePeriod != 500*time.Millisecond {
		t.Errorf("StopGracePeriod = %v, want 500ms", cfg.Process.StopGracePeriod)
	}
	if got := cfg.LogFile("/project"); got != filepath.Join("/project", "logs", "sr.log") {
		t.Errorf("LogFile = %s", got)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("Load should not fail for non-existent file: %v", err)
	}

	if cfg.Compose.Program != "docker-compose" {
		t.Errorf("Should return defaults, got program = %s", cfg.Compose.Program)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(configPath, []byte(`invalid = [toml content`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load should fail for invalid TOML")
	}
}

func TestLoad_ReadError(t *testing.T) {
	// Reading a directory fails with a read error, not "not found"
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Error("Load should fail when trying to read a directory")
	}
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	srDir := filepath.Join(dir, ".sr")
	if err := os.MkdirAll(srDir, 0755); err != nil {
		t.Fatalf("Failed to create .sr dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Run("no config file - uses defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv(EnvConfigPath, "")

		cfg, err := LoadFromDir(t.TempDir())
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Logging.Level != LogLevelInfo {
			t.Errorf("Logging.Level = %s, want info (default)", cfg.Logging.Level)
		}
	})

	t.Run("project overrides user global", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv(EnvConfigPath, "")

		writeConfig(t, home, "[logging]\nlevel = \"warn\"\nformat = \"json\"\n")
		project := t.TempDir()
		writeConfig(t, project, "[logging]\nlevel = \"debug\"\n")

		cfg, err := LoadFromDir(project)
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Logging.Level != LogLevelDebug {
			t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
		}
		if cfg.Logging.Format != LogFormatJSON {
			t.Errorf("Logging.Format = %s, want json from user config", cfg.Logging.Format)
		}
	})

	t.Run("SR_CONFIG applied last", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		project := t.TempDir()
		writeConfig(t, project, "[compose]\nprogram = \"podman-compose\"\n")

		extra := filepath.Join(t.TempDir(), "extra.toml")
		if err := os.WriteFile(extra, []byte("[compose]\nprogram = \"docker compose\"\n"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		t.Setenv(EnvConfigPath, extra)

		cfg, err := LoadFromDir(project)
		if err != nil {
			t.Fatalf("LoadFromDir failed: %v", err)
		}
		if cfg.Compose.Program != "docker compose" {
			t.Errorf("Compose.Program = %s, want 'docker compose'", cfg.Compose.Program)
		}
	})

	t.Run("SR_CONFIG missing file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.toml"))

		if _, err := LoadFromDir(t.TempDir()); err == nil {
			t.Error("LoadFromDir should fail when SR_CONFIG points nowhere")
		}
	})

	t.Run("invalid project config", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv(EnvConfigPath, "")
		project := t.TempDir()
		writeConfig(t, project, `invalid = [toml`)

		if _, err := LoadFromDir(project); err == nil {
			t.Error("LoadFromDir should fail with invalid TOML")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(*Config) {}, false},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty compose program", func(c *Config) { c.Compose.Program = "" }, true},
		{"negative grace period", func(c *Config) { c.Process.StopGracePeriod = -time.Second }, true},
		{"zero grace period", func(c *Config) { c.Process.StopGracePeriod = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LogFile(t *testing.T) {
	cfg := Default()
	if got := cfg.LogFile("/project"); got != "" {
		t.Errorf("LogFile = %q, want empty", got)
	}

	cfg.Logging.File = "/absolute/sr.log"
	if got := cfg.LogFile("/project"); got != "/absolute/sr.log" {
		t.Errorf("LogFile (abs) = %s, want /absolute/sr.log", got)
	}
}
