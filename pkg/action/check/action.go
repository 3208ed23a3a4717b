package check

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/creatorgen/internal/workspace"
	"github.com/cmmoran/creatorgen/pkg/action/generate"
	cfg "github.com/cmmoran/creatorgen/pkg/generator"
	"github.com/cmmoran/creatorgen/pkg/manifest"
)

var ErrStale = errors.New("generated files are stale")

// Check regenerates every unit in memory and compares it with the output
// directory. It returns the textual diff and ErrStale when any unit is
// missing or differs, or when a unit recorded in the manifest is no longer
// produced but still on disk.
func Check(ctx context.Context, opts *cfg.Options) (string, error) {
	outs, err := generate.Render(ctx, opts)
	if err != nil {
		return "", err
	}
	ws := generate.Workspace(opts)

	var (
		diff  strings.Builder
		stale int
		keys  = make([]string, 0, len(outs))
	)
	for _, o := range outs {
		keys = append(keys, o.FileKey)
		current, ok, err := ws.Read(ctx, workspace.Join(opts.OutDir, o.FileKey))
		if err != nil {
			return "", err
		}
		if d := cmp.Diff(string(current), o.Content); !ok || d != "" {
			stale++
			fmt.Fprintf(&diff, "--- %s\n%s\n", o.FileKey, d)
		}
	}

	m, err := manifest.Load(opts.ManifestFile)
	if err != nil {
		return "", err
	}
	for _, e := range m.Retain(keys) {
		if _, ok, err := ws.Read(ctx, workspace.Join(opts.OutDir, e.File)); err != nil {
			return "", err
		} else if ok {
			stale++
			fmt.Fprintf(&diff, "--- %s\nno longer generated\n", e.File)
		}
	}

	if stale > 0 {
		return diff.String(), fmt.Errorf("%w: %d file(s) in %s", ErrStale, stale, opts.OutDir)
	}
	return "", nil
}
