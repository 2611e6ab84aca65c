// Package testutil provides fixtures and helpers for sr tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/scenario-runner/sr/internal/types"
)

// RequireUnix skips the test on platforms without a POSIX shell.
func RequireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteScript writes an executable /bin/sh script to dir/name.
func WriteScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	RequireUnix(t)
	path := WriteFile(t, dir, name, "#!/bin/sh\n"+body+"\n")
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatalf("Failed to make %s executable: %v", path, err)
	}
	return path
}

// MarkerScript writes a script that writes content to marker and then exits
// with code. Tests use the marker to see whether the script ever ran.
func MarkerScript(t *testing.T, dir, name, marker, content string, code int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("printf '%%s' '%s' > '%s'\nexit %d", content, marker, code))
}

// Shell returns a shell action running cmd with optional args.
func Shell(cmd string, args ...string) types.Action {
	spec := types.ActionSpec{Cmd: types.Single(cmd)}
	if len(args) > 0 {
		spec.Args = types.Multiple(args...)
	}
	return types.NewShellAction(spec)
}

// Compose returns a docker-compose action running cmd with extra compose files.
func Compose(cmd string, files ...string) types.Action {
	return types.NewComposeAction(types.ActionSpec{
		Cmd:          types.Single(cmd),
		ComposeFiles: files,
	})
}

// WithExitCode sets the expected exit code on a.
func WithExitCode(a types.Action, code int) types.Action {
	a.Spec.ExitCode = &code
	return a
}

// NewScenario returns a scenario named name with the given actions.
func NewScenario(name string, actions ...types.Action) *types.Scenario {
	return &types.Scenario{Name: name, Actions: actions}
}

// NewConfiguration returns a configuration rooted at baseDir holding scenarios.
func NewConfiguration(baseDir string, scenarios ...*types.Scenario) *types.Configuration {
	cfg := &types.Configuration{
		Path:      filepath.Join(baseDir, "sr.yml"),
		BaseDir:   baseDir,
		Scenarios: make(map[string]*types.Scenario, len(scenarios)),
	}
	for _, sc := range scenarios {
		cfg.Scenarios[sc.Name] = sc
	}
	return cfg
}

// MinimalYAML is a scenario file with one passing and one failing scenario.
const MinimalYAML = `scenarios:
  hello:
    description: say hello
    actions:
      - shell:
          cmd: echo hello
  broken:
    description: always fails
    actions:
      - shell:
          cmd: sh -c 'exit 3'
`
