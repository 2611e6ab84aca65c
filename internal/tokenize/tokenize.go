// Package tokenize expands string-or-list configuration values into command
// line tokens using the host platform's quoting rules.
package tokenize

import (
	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/types"
)

// Append splits every string held by v and appends the resulting tokens to
// dst, preserving element order and token order within each element.
//
// An absent value is a no-op unless required is set, in which case a
// configuration error naming field is returned.
func Append(dst []string, field string, v types.StringOrList, required bool) ([]string, error) {
	if v.IsAbsent() {
		if required {
			return dst, errors.ConfigMissingField(field)
		}
		return dst, nil
	}

	for _, s := range v.Values() {
		words, err := Split(s)
		if err != nil {
			return dst, errors.ConfigInvalidValue(field, s, "cannot split into arguments").WithCause(err)
		}
		dst = append(dst, words...)
	}
	return dst, nil
}

// Tokens is Append into a fresh slice.
func Tokens(field string, v types.StringOrList, required bool) ([]string, error) {
	return Append(nil, field, v, required)
}
