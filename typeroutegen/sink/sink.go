// Package sink provides output destinations for generated files.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// OutputSink receives generated file content. Implementations must be safe
// for concurrent calls.
type OutputSink interface {
	// WriteFile writes content at a sink-relative path.
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes into a directory on the local filesystem. Existing
// files are always replaced; a stale output is worse than an overwritten one.
type FilesystemSink struct {
	// Root is the base directory for all writes.
	Root string

	// Mode is the file permission mode (default 0644).
	Mode os.FileMode
}

// NewFilesystemSink returns a sink rooted at dir.
func NewFilesystemSink(dir string) *FilesystemSink {
	return &FilesystemSink{Root: dir, Mode: 0644}
}

// WriteFile writes content to path under Root, creating parent directories
// as needed. The write is atomic: content lands in a temp file first and is
// renamed over the target.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return fmt.Errorf("resolving root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) && absPath != absRoot {
		return fmt.Errorf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".typeroute-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tempFile.Name()

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()
	if writeErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tempPath, mode); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := ctx.Err(); err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MemorySink stores generated files in memory. All operations are
// thread-safe.
type MemorySink struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentCopy := make([]byte, len(content))
	copy(contentCopy, content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = contentCopy
	return nil
}

// Get returns a copy of a stored file, or nil if absent.
func (s *MemorySink) Get(path string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[path]
	if !ok {
		return nil
	}
	contentCopy := make([]byte, len(content))
	copy(contentCopy, content)
	return contentCopy
}

// Files returns a copy of all stored files.
func (s *MemorySink) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(s.files))
	for path, content := range s.files {
		contentCopy := make([]byte, len(content))
		copy(contentCopy, content)
		result[path] = contentCopy
	}
	return result
}

// Reset clears all stored files.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = make(map[string][]byte)
}

// ValidatePath checks that path is relative, slash-separated, clean, and
// free of traversal components.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) {
		return errors.New("absolute paths not allowed")
	}
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	if strings.Contains(path, "..") {
		return errors.New("path traversal not allowed")
	}
	cleaned := filepath.Clean(filepath.ToSlash(path))
	if cleaned != filepath.ToSlash(path) {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}
