package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// FolderFileName holds folder metadata inside a content directory.
const FolderFileName = "_folder.md"

// LoaderConfig controls discovery under the content root.
type LoaderConfig struct {
	// Patterns filter page files by base name. Defaults to *.md and *.html.
	Patterns []string
	// Recursive flattens nested directories into their top-level folder.
	Recursive bool
}

// Loader reads a content tree: every top-level directory is a folder and the
// files inside it are pages.
type Loader struct {
	fs        fs.FS
	patterns  []string
	recursive bool
}

// FolderSource is a directory discovered under the content root.
type FolderSource struct {
	Dir   string
	Meta  FrontMatter
	Pages []PageSource
}

// PageSource is one page file with its header parsed and body normalised to
// markup.
type PageSource struct {
	Path     string
	Meta     FrontMatter
	Body     string
	Checksum [32]byte
}

// Stem is the file name without directories or extension.
func (p PageSource) Stem() string {
	base := path.Base(p.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// FileError ties a failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// NewLoader builds a loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	patterns := slices.Clone(cfg.Patterns)
	if len(patterns) == 0 {
		patterns = []string{"*.md", "*.html"}
	}
	return &Loader{fs: filesystem, patterns: patterns, recursive: cfg.Recursive}
}

// Load returns folders sorted by directory name and pages sorted by path.
// Unreadable or malformed files are reported in the error list and skipped;
// files at the root and non-matching files are counted in skipped.
func (l *Loader) Load(ctx context.Context) (folders []FolderSource, skipped int, errs []FileError, err error) {
	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return nil, 0, nil, fmt.Errorf("markdown loader: read root: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, 0, nil, err
		}
		if !entry.IsDir() {
			skipped++
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		folder, folderSkipped, folderErrs := l.loadFolder(ctx, entry.Name())
		skipped += folderSkipped
		errs = append(errs, folderErrs...)
		folders = append(folders, folder)
	}

	slices.SortFunc(folders, func(a, b FolderSource) int { return strings.Compare(a.Dir, b.Dir) })
	return folders, skipped, errs, nil
}

func (l *Loader) loadFolder(ctx context.Context, dir string) (FolderSource, int, []FileError) {
	folder := FolderSource{Dir: dir}
	skipped := 0
	var errs []FileError

	walkErr := fs.WalkDir(l.fs, dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			errs = append(errs, FileError{Path: p, Err: walkErr})
			return nil
		}
		if d.IsDir() {
			if p != dir && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if p == path.Join(dir, FolderFileName) {
			meta, err := l.readFolderMeta(p)
			if err != nil {
				errs = append(errs, FileError{Path: p, Err: err})
				return nil
			}
			folder.Meta = meta
			return nil
		}
		if !l.matches(p) {
			skipped++
			return nil
		}
		page, err := l.readPage(p)
		if err != nil {
			errs = append(errs, FileError{Path: p, Err: err})
			return nil
		}
		folder.Pages = append(folder.Pages, page)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, FileError{Path: dir, Err: walkErr})
	}

	slices.SortFunc(folder.Pages, func(a, b PageSource) int { return strings.Compare(a.Path, b.Path) })
	return folder, skipped, errs
}

func (l *Loader) matches(p string) bool {
	base := path.Base(p)
	for _, pattern := range l.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func (l *Loader) readFolderMeta(p string) (FrontMatter, error) {
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return FrontMatter{}, err
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return FrontMatter{}, err
	}
	if meta.Description == "" {
		meta.Description = strings.TrimSpace(string(body))
	}
	return meta, nil
}

func (l *Loader) readPage(p string) (PageSource, error) {
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return PageSource{}, err
	}
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return PageSource{}, err
	}

	content := string(body)
	if isHTML(p) {
		converted, err := htmltomarkdown.ConvertString(content)
		if err != nil {
			return PageSource{}, fmt.Errorf("convert html: %w", err)
		}
		content = converted
	}

	return PageSource{
		Path:     p,
		Meta:     meta,
		Body:     strings.TrimSpace(content),
		Checksum: sha256.Sum256(data),
	}, nil
}

func isHTML(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
