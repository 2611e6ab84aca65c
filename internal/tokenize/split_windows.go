//go:build windows

package tokenize

import (
	"strings"

	"golang.org/x/sys/windows"
)

// Split breaks s into words following the CommandLineToArgvW rules used by
// most Windows programs.
func Split(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return windows.DecomposeCommandLine(s)
}

// Join quotes argv so that Split returns it unchanged.
func Join(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = windows.EscapeArg(arg)
	}
	return strings.Join(quoted, " ")
}
