// Package settings computes the effective environment and compose file list
// for one action by layering the global, scenario and action scopes.
package settings

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/types"
)

// Effective holds the merged settings applied to a single action run.
// It is built fresh for every action and never shared.
type Effective struct {
	Env          map[string]string
	ComposeFiles []string
}

// Environ returns Env as sorted KEY=VALUE pairs, the form exec.Cmd expects.
func (e *Effective) Environ() []string {
	keys := make([]string, 0, len(e.Env))
	for k := range e.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+e.Env[k])
	}
	return env
}

// HostEnv returns the current process environment as a map.
func HostEnv() map[string]string {
	return ParseEnviron(os.Environ())
}

// ParseEnviron converts KEY=VALUE pairs into a map. Later duplicates win.
func ParseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			// Windows keeps per-drive cwd entries like "=C:=C:\dir".
			continue
		}
		env[k] = v
	}
	return env
}

// Merge layers host < global < scenario < action and returns the settings
// for action. Same-named variables are replaced whole by later layers.
// Compose files are concatenated global, scenario, action with no
// de-duplication. A docker-compose action that ends up with no compose
// files is a configuration error.
func Merge(host map[string]string, global types.GlobalScope, scenario *types.Scenario, action *types.Action) (*Effective, error) {
	eff := &Effective{
		Env: make(map[string]string, len(host)),
	}

	for _, layer := range []map[string]string{host, global.Env, scenario.Env, action.Spec.Env} {
		for k, v := range layer {
			eff.Env[k] = v
		}
	}

	if action.Kind != types.ActionDockerCompose {
		return eff, nil
	}

	for _, list := range [][]string{global.ComposeFiles, scenario.ComposeFiles, action.Spec.ComposeFiles} {
		for _, f := range list {
			eff.ComposeFiles = append(eff.ComposeFiles, NormalizePath(f))
		}
	}
	if len(eff.ComposeFiles) == 0 {
		return nil, errors.ConfigNoComposeFiles(scenario.Name)
	}

	return eff, nil
}

// NormalizePath converts p to the host's canonical path form without
// resolving it against any directory.
func NormalizePath(p string) string {
	return filepath.Clean(filepath.FromSlash(p))
}
