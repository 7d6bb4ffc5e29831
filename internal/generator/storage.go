package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryLanding  writeCategory = "landing"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

var (
	// ErrArtifactMissing is returned by ReadFile when nothing is stored at the path.
	ErrArtifactMissing = errors.New("generator: artifact not found")
	errPathRequired    = errors.New("generator: write requires path")
	errPathEscapes     = errors.New("generator: path escapes output root")
)

// WriteRequest describes one generated file.
type WriteRequest struct {
	Path        string
	Data        []byte
	Category    writeCategory
	ContentType string
	Checksum    string
}

// ArtifactWriter stores generator outputs under slash-separated paths relative
// to its own root.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, req WriteRequest) error
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// DirWriter writes artifacts below a directory on disk.
type DirWriter struct {
	root string
}

// NewDirWriter roots a writer at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{root: dir}
}

// Root returns the output directory.
func (w *DirWriter) Root() string {
	return w.root
}

func (w *DirWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", req.Path, err)
	}
	if err := os.WriteFile(target, req.Data, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

func (w *DirWriter) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := w.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrArtifactMissing
	}
	return data, err
}

// Remove deletes name and prunes directories it leaves empty.
func (w *DirWriter) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("generator: remove %s: %w", name, err)
	}
	root := filepath.Clean(w.root)
	for dir := filepath.Dir(target); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

func (w *DirWriter) resolve(name string) (string, error) {
	clean, err := cleanArtifactPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.root, filepath.FromSlash(clean)), nil
}

// MemoryWriter keeps artifacts in a map. It backs previews and tests.
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryWriter returns an empty in-memory writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

func (w *MemoryWriter) WriteFile(_ context.Context, req WriteRequest) error {
	clean, err := cleanArtifactPath(req.Path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[clean] = slices.Clone(req.Data)
	return nil
}

func (w *MemoryWriter) ReadFile(_ context.Context, name string) ([]byte, error) {
	clean, err := cleanArtifactPath(name)
	if err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	data, ok := w.files[clean]
	if !ok {
		return nil, ErrArtifactMissing
	}
	return slices.Clone(data), nil
}

func (w *MemoryWriter) Remove(_ context.Context, name string) error {
	clean, err := cleanArtifactPath(name)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, clean)
	return nil
}

// Paths lists stored artifacts in lexical order.
func (w *MemoryWriter) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Sorted(maps.Keys(w.files))
}

func cleanArtifactPath(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errPathRequired
	}
	clean := path.Clean(strings.TrimLeft(trimmed, "/"))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", errPathEscapes, name)
	}
	return clean, nil
}
