//go:build !windows

package tokenize

import shellquote "github.com/kballard/go-shellquote"

// Split breaks s into words the way a POSIX shell would, honoring single
// quotes, double quotes and backslash escapes. No expansion is performed.
func Split(s string) ([]string, error) {
	return shellquote.Split(s)
}

// Join quotes argv so that Split returns it unchanged.
func Join(argv []string) string {
	return shellquote.Join(argv...)
}
