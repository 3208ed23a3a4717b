package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cmmoran/creatorgen/internal/generator"
	"github.com/cmmoran/creatorgen/internal/model"
	"github.com/cmmoran/creatorgen/internal/provider/csharp"
	"github.com/cmmoran/creatorgen/internal/workspace"
	cfg "github.com/cmmoran/creatorgen/pkg/generator"
	"github.com/cmmoran/creatorgen/pkg/manifest"
)

var (
	ErrNoSources        = errors.New("no C# sources found")
	ErrDuplicateFileKey = errors.New("duplicate generated file key")
)

// Result lists the file keys touched by Generate.
type Result struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Render loads every source under opts.InDir and returns the generated units
// without touching the output directory.
func Render(ctx context.Context, opts *cfg.Options) ([]model.Output, error) {
	ws := Workspace(opts)
	files, err := ws.Sources(ctx, opts.InDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, opts.InDir)
	}

	sources := make([]csharp.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, csharp.Source{Name: f.URL, Content: f.Content})
	}
	marker := model.TypeRef{Name: opts.MarkerName, Namespace: opts.MarkerNamespace}
	p, err := csharp.Load(ctx, marker, sources...)
	if err != nil {
		return nil, err
	}

	g, err := generator.New(p, opts)
	if err != nil {
		return nil, err
	}
	outs, err := g.Run()
	if err != nil {
		return nil, err
	}
	if err := uniqueKeys(outs); err != nil {
		return nil, err
	}
	return outs, nil
}

// Workspace is the source and output workspace for opts. An output directory
// nested in the input directory is never scanned.
func Workspace(opts *cfg.Options) *workspace.Workspace {
	var skip []string
	if strings.HasPrefix(opts.OutDir, opts.InDir+string(filepath.Separator)) {
		skip = append(skip, opts.OutDir)
	}
	return workspace.New(opts.ExcludeDirs, skip...)
}

func uniqueKeys(outs []model.Output) error {
	seen := make(map[string]string, len(outs))
	for _, o := range outs {
		if prev, ok := seen[o.FileKey]; ok {
			return fmt.Errorf("%w %s: produced by %q and %q", ErrDuplicateFileKey, o.FileKey, prev, o.Source)
		}
		seen[o.FileKey] = o.Source
	}
	return nil
}

// Generate renders every unit, writes the ones whose content differs from
// the file on disk, removes units no longer produced and records the manifest.
func Generate(ctx context.Context, opts *cfg.Options) (*Result, error) {
	logger := slog.Default().With("component", "generate")

	outs, err := Render(ctx, opts)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(opts.ManifestFile)
	if err != nil {
		return nil, err
	}
	m.Marker, m.StandIn = opts.MarkerQualifiedName(), opts.StandIn

	ws := Workspace(opts)
	res := &Result{}
	keys := make([]string, 0, len(outs))
	for _, o := range outs {
		keys = append(keys, o.FileKey)
		location := workspace.Join(opts.OutDir, o.FileKey)
		hash, err := manifest.Hash([]byte(o.Content))
		if err != nil {
			return nil, err
		}

		// Skip only when the file on disk still holds this content; hand edits
		// are overwritten.
		current, exists, err := ws.Read(ctx, location)
		if err != nil {
			return nil, err
		}
		if exists {
			onDisk, err := manifest.Hash(current)
			if err != nil {
				return nil, err
			}
			if onDisk == hash {
				m.Record(manifest.Entry{File: o.FileKey, Source: o.Source, Hash: hash})
				res.Unchanged = append(res.Unchanged, o.FileKey)
				continue
			}
		}
		if err := ws.Write(ctx, location, []byte(o.Content)); err != nil {
			return nil, err
		}
		m.Record(manifest.Entry{File: o.FileKey, Source: o.Source, Hash: hash})
		res.Written = append(res.Written, o.FileKey)
	}

	for _, e := range m.Retain(keys) {
		if err := ws.Remove(ctx, workspace.Join(opts.OutDir, e.File)); err != nil {
			return nil, err
		}
		res.Removed = append(res.Removed, e.File)
	}

	if err := m.Save(opts.ManifestFile); err != nil {
		return nil, err
	}
	logger.Info("generate complete",
		"written", len(res.Written), "unchanged", len(res.Unchanged), "removed", len(res.Removed), "out", opts.OutDir)
	return res, nil
}
