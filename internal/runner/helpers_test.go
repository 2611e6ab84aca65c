package runner

import (
	"os"
	"strings"
	"sync"
)

func mkdir(path string) error {
	return os.MkdirAll(path, 0755)
}

// stringsBuilder is a goroutine-safe line collector.
type stringsBuilder struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *stringsBuilder) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *stringsBuilder) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.sb.String()), "\n")
}
