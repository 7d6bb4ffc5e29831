package generator

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
)

const (
	manifestFileName    = "manifest.json"
	manifestFileVersion = 1
)

// ManifestFile is one generated output.
type ManifestFile struct {
	Path         string        `json:"path"`
	Checksum     string        `json:"checksum"`
	Size         int           `json:"size"`
	Category     writeCategory `json:"category"`
	PageID       string        `json:"page_id,omitempty"`
	LastModified time.Time     `json:"last_modified,omitzero"`
}

// buildManifest records the outputs of the last successful build so the next
// one can skip unchanged files and remove stale ones.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	Files       map[string]ManifestFile
}

type manifestDocument struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Files       []ManifestFile `json:"files"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Files:   map[string]ManifestFile{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	manifest := newBuildManifest()
	if len(data) == 0 {
		return manifest, nil
	}
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if doc.Version != 0 {
		manifest.Version = doc.Version
	}
	manifest.GeneratedAt = doc.GeneratedAt
	for _, file := range doc.Files {
		manifest.Files[file.Path] = file
	}
	return manifest, nil
}

// marshal emits files sorted by path so identical builds produce identical
// manifests.
func (m *buildManifest) marshal() ([]byte, error) {
	doc := manifestDocument{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		Files:       m.sortedFiles(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

func (m *buildManifest) sortedFiles() []ManifestFile {
	files := make([]ManifestFile, 0, len(m.Files))
	for _, key := range slices.Sorted(maps.Keys(m.Files)) {
		files = append(files, m.Files[key])
	}
	return files
}

func (m *buildManifest) set(file ManifestFile) {
	m.Files[file.Path] = file
}

// unchanged reports whether the previous build wrote the same bytes to path.
func (m *buildManifest) unchanged(path, checksum string) bool {
	if m == nil {
		return false
	}
	entry, ok := m.Files[path]
	return ok && entry.Checksum == checksum
}

// stale lists paths recorded in m that next no longer produces.
func (m *buildManifest) stale(next *buildManifest) []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, key := range slices.Sorted(maps.Keys(m.Files)) {
		if _, ok := next.Files[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}
