//go:build !windows

package tokenize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/types"
)

func TestAppend_POSIX(t *testing.T) {
	tests := []struct {
		name  string
		dst   []string
		value types.StringOrList
		want  []string
	}{
		{
			name:  "single quoted segment",
			value: types.Single("echo 'hello world'"),
			want:  []string{"echo", "hello world"},
		},
		{
			name:  "double quotes and escapes",
			value: types.Single(`printf "%s\n" a\ b`),
			want:  []string{"printf", `%s\n`, "a b"},
		},
		{
			name:  "list elements are split individually",
			value: types.Multiple("up -d", "--build"),
			want:  []string{"up", "-d", "--build"},
		},
		{
			name:  "appends after existing tokens",
			dst:   []string{"docker-compose", "-f", "a.yml"},
			value: types.Multiple("logs", "-f"),
			want:  []string{"docker-compose", "-f", "a.yml", "logs", "-f"},
		},
		{
			name:  "whitespace only contributes nothing",
			value: types.Single("   "),
			want:  nil,
		},
		{
			name:  "no variable expansion",
			value: types.Single("echo $HOME"),
			want:  []string{"echo", "$HOME"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Append(tt.dst, "cmd", tt.value, false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppend_UnterminatedQuote(t *testing.T) {
	_, err := Append(nil, "args", types.Single("echo 'oops"), false)
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if !errors.HasCode(err, errors.CodeConfigInvalidValue) {
		t.Errorf("error code = %s, want %s", errors.Code(err), errors.CodeConfigInvalidValue)
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	argv := []string{"sh", "-c", "echo 'quoted' \"twice\"", "plain"}

	got, err := Split(Join(argv))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if diff := cmp.Diff(argv, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
