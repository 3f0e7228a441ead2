// Package fs exports reading notes as Markdown files.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/readtrack"
	"gopkg.in/yaml.v3"
)

var _ readtrack.NoteStore = (*FileStore)(nil)

// FileStore implements readtrack.NoteStore with atomic update semantics.
// Notes are written to baseDir/name.tmp and moved to baseDir/name on Commit.
type FileStore struct {
	baseDir string
	name    string
	now     func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock sets the clock used for the exported date.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore creates a new FileStore.
func NewFileStore(baseDir, name string, opts ...Option) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) Save(ctx context.Context, note *readtrack.Note) error {
	relPath, err := URLToPath(note.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatNote(note, s.now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

func (s *FileStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return readtrack.Errorf(readtrack.EINVALID, "nothing to commit")
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative, slash-separated file path.
// Example: https://example.com/book/ch-1.html?part=2 → book/ch-1-part-2.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", readtrack.Errorf(readtrack.EINVALID, "invalid URL %q", rawURL)
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		p = "index"
	case strings.HasSuffix(p, "/"):
		p += "index"
	default:
		p = strings.TrimSuffix(p, path.Ext(p))
	}

	if u.RawQuery != "" {
		p += "-" + slug(u.RawQuery)
	}
	return p + ".md", nil
}

// slug replaces every run of characters outside [A-Za-z0-9] with a hyphen.
func slug(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		if r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// frontmatter is the YAML header of an exported note.
type frontmatter struct {
	Source   string `yaml:"source"`
	Title    string `yaml:"title"`
	Progress *int   `yaml:"progress,omitempty"`
	Quotes   int    `yaml:"quotes"`
	Exported string `yaml:"exported"`
}

// FormatNote formats a note with YAML frontmatter followed by its Markdown
// and a list of its quotes.
func FormatNote(note *readtrack.Note, exported time.Time) (string, error) {
	meta := frontmatter{
		Source:   note.URL,
		Title:    note.Title,
		Quotes:   len(note.Quotes),
		Exported: exported.Format(time.DateOnly),
	}
	if note.Percent >= 0 {
		percent := note.Percent
		meta.Progress = &percent
	}
	header, err := yaml.Marshal(&meta)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter for %s: %w", note.URL, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(note.Markdown))
	b.WriteString("\n")

	if len(note.Quotes) > 0 {
		b.WriteString("\n## Quotes\n")
		for _, q := range note.Quotes {
			b.WriteString("\n> ")
			b.WriteString(strings.Join(strings.Fields(q.Text), " "))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
