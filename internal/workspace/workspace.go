// Package workspace finds C# sources and writes generated units through afs,
// so input and output locations may be any afs URL.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

const sourceExt = ".cs"

// File is one source file read from the workspace.
type File struct {
	URL     string
	Content []byte
}

type Workspace struct {
	fs       afs.Service
	exclude  map[string]bool
	excluded []string // directories whose content must never be read as input
	logger   *slog.Logger
}

// New creates a workspace skipping directories named in exclude and any
// file or directory below the skip locations (typically the output dir).
func New(exclude []string, skip ...string) *Workspace {
	w := &Workspace{
		fs:      afs.New(),
		exclude: make(map[string]bool, len(exclude)),
		logger:  slog.Default().With("component", "workspace"),
	}
	for _, name := range exclude {
		if name = strings.TrimSpace(name); name != "" {
			w.exclude[name] = true
		}
	}
	for _, s := range skip {
		if s != "" {
			w.excluded = append(w.excluded, strings.TrimRight(url.Normalize(s, "file"), "/"))
		}
	}
	return w
}

// Sources lists every hand-written C# file below root, ordered by URL.
// Generated units (*.g.cs) are never inputs.
func (w *Workspace) Sources(ctx context.Context, root string) ([]File, error) {
	var urls []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		location := url.Join(baseURL, path.Join(parent, info.Name()))
		if info.IsDir() {
			if w.exclude[info.Name()] || w.skipped(location) {
				w.logger.Debug("skipping directory", "dir", location)
				return false, nil
			}
			return true, nil
		}
		name := info.Name()
		if !strings.HasSuffix(name, sourceExt) || strings.HasSuffix(name, ".g"+sourceExt) || w.skipped(location) {
			return true, nil
		}
		urls = append(urls, location)
		return true, nil
	}
	if err := w.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(urls)

	files := make([]File, 0, len(urls))
	for _, u := range urls {
		content, err := w.fs.DownloadWithURL(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", u, err)
		}
		files = append(files, File{URL: u, Content: content})
	}
	w.logger.Debug("sources", "root", root, "files", len(files))
	return files, nil
}

func (w *Workspace) skipped(location string) bool {
	location = strings.TrimRight(url.Normalize(location, "file"), "/")
	for _, s := range w.excluded {
		if location == s || strings.HasPrefix(location, s+"/") {
			return true
		}
	}
	return false
}

// Read returns the content at location, or false when nothing is there.
func (w *Workspace) Read(ctx context.Context, location string) ([]byte, bool, error) {
	ok, err := w.fs.Exists(ctx, location)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", location, err)
	}
	if !ok {
		return nil, false, nil
	}
	content, err := w.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", location, err)
	}
	return content, true, nil
}

// Write replaces the content at location, creating parents as needed.
func (w *Workspace) Write(ctx context.Context, location string, content []byte) error {
	if err := w.fs.Upload(ctx, location, 0o644, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("write %s: %w", location, err)
	}
	return nil
}

// Remove deletes location if it exists.
func (w *Workspace) Remove(ctx context.Context, location string) error {
	ok, err := w.fs.Exists(ctx, location)
	if err != nil || !ok {
		return err
	}
	if err := w.fs.Delete(ctx, location); err != nil {
		return fmt.Errorf("remove %s: %w", location, err)
	}
	return nil
}

// Join resolves a generated file key against an output location.
func Join(base, key string) string {
	return url.Join(base, key)
}
