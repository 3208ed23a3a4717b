package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/creatorgen/pkg/action/generate"
	cfg "github.com/cmmoran/creatorgen/pkg/generator"
)

func project(t *testing.T) *cfg.Options {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"HolderTests.cs": `using CC.Generators;
namespace App.Tests
{
    [Creator(Target = typeof(App.Holder))]
    public partial class HolderTests { }
}`,
		"Holder.cs": `namespace App
{
    public class Holder
    {
        public Holder(IStore store) { }
    }
    public interface IStore { }
}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	opts, err := cfg.New(cfg.WithInDir(dir), cfg.WithOutDir(filepath.Join(dir, "Generated")))
	require.NoError(t, err)
	return opts
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	opts := project(t)

	diff, err := Check(ctx, opts)
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, diff, "--- HolderTests.g.cs")

	_, err = generate.Generate(ctx, opts)
	require.NoError(t, err)
	diff, err = Check(ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, diff)

	target := filepath.Join(opts.OutDir, "HolderTests.g.cs")
	require.NoError(t, os.WriteFile(target, []byte("// edited\n"), 0o644))
	diff, err = Check(ctx, opts)
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, diff, "--- HolderTests.g.cs")
	assert.Contains(t, diff, "Mock.Of<IStore>(defaultBehavior)")
}

func TestCheck_NoLongerGenerated(t *testing.T) {
	ctx := context.Background()
	opts := project(t)
	_, err := generate.Generate(ctx, opts)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(opts.InDir, "HolderTests.cs")))
	diff, err := Check(ctx, opts)
	require.ErrorIs(t, err, ErrStale)
	assert.Contains(t, diff, "HolderTests.g.cs\nno longer generated")
}
