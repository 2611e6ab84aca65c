package executor

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// resolveProgram finds the executable for name the way the child would: by
// searching the PATH from env. Names containing a path separator, and
// environments that do not set PATH, are returned unchanged and left to
// os/exec. Relative PATH entries are taken relative to dir.
func resolveProgram(name string, env []string, dir string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	path, ok := lookupEnv(env, "PATH")
	if !ok {
		return name, nil
	}

	for _, entry := range filepath.SplitList(path) {
		if entry == "" {
			entry = "."
		}
		if !filepath.IsAbs(entry) && dir != "" {
			entry = filepath.Join(dir, entry)
		}
		candidate, err := filepath.Abs(filepath.Join(entry, name))
		if err != nil {
			continue
		}
		if found, err := exec.LookPath(candidate); err == nil {
			return found, nil
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// lookupEnv returns the last value of key in env. Keys are case-insensitive
// on Windows.
func lookupEnv(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if !ok {
			continue
		}
		if k == key || (runtime.GOOS == "windows" && strings.EqualFold(k, key)) {
			return v, true
		}
	}
	return "", false
}
