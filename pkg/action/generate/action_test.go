package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/creatorgen/internal/model"
	cfg "github.com/cmmoran/creatorgen/pkg/generator"
	"github.com/cmmoran/creatorgen/pkg/manifest"
)

const hostSource = `using CC.Generators;

namespace Shop.Tests
{
    [Creator(Target = typeof(Shop.Cart))]
    public partial class CartTests { }
}
`

const cartSource = `namespace Shop
{
    public class Cart
    {
        public Cart(string owner, int capacity) { }
    }
}
`

func project(t *testing.T, files map[string]string) *cfg.Options {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	opts, err := cfg.New(cfg.WithInDir(dir), cfg.WithOutDir(filepath.Join(dir, "Generated")), cfg.WithWorkers(2))
	require.NoError(t, err)
	return opts
}

func TestGenerate_WritesAndSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	opts := project(t, map[string]string{"tests/CartTests.cs": hostSource, "src/Cart.cs": cartSource})

	res, err := Generate(ctx, opts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CreatorAttribute.g.cs", "CartTests.g.cs"}, res.Written)
	assert.Empty(t, res.Unchanged)

	content, err := os.ReadFile(filepath.Join(opts.OutDir, "CartTests.g.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "private static Cart CreateCart(MockBehavior defaultBehavior = MockBehavior.Loose,")
	assert.Contains(t, string(content), "owner ?? string.Empty,")

	m, err := manifest.Load(opts.ManifestFile)
	require.NoError(t, err)
	assert.Equal(t, "CC.Generators.CreatorAttribute", m.Marker)
	entry, ok := m.Lookup("CartTests.g.cs")
	require.True(t, ok)
	assert.Equal(t, "Shop.Tests.CartTests", entry.Source)
	hash, err := manifest.Hash(content)
	require.NoError(t, err)
	assert.Equal(t, hash, entry.Hash)

	res, err = Generate(ctx, opts)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.ElementsMatch(t, []string{"CreatorAttribute.g.cs", "CartTests.g.cs"}, res.Unchanged)

	target := filepath.Join(opts.OutDir, "CartTests.g.cs")
	require.NoError(t, os.WriteFile(target, []byte("// edited\n"), 0o644))
	res, err = Generate(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"CartTests.g.cs"}, res.Written)
	assert.Equal(t, []string{"CreatorAttribute.g.cs"}, res.Unchanged)

	restored, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(restored))
}

func TestGenerate_RemovesOrphans(t *testing.T) {
	ctx := context.Background()
	opts := project(t, map[string]string{"tests/CartTests.cs": hostSource, "src/Cart.cs": cartSource})

	_, err := Generate(ctx, opts)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(opts.InDir, "tests", "CartTests.cs")))
	res, err := Generate(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"CartTests.g.cs"}, res.Removed)
	assert.NoFileExists(t, filepath.Join(opts.OutDir, "CartTests.g.cs"))
	assert.FileExists(t, filepath.Join(opts.OutDir, "CreatorAttribute.g.cs"))
}

func TestRender_GlobalMarker(t *testing.T) {
	opts := project(t, map[string]string{
		"src/Cart.cs": cartSource,
		"tests/CartTests.cs": `namespace Shop.Tests
{
    [Make(Target = typeof(Shop.Cart))]
    public partial class CartTests { }
}`,
	})
	cfg.WithMarker("", "MakeAttribute")(opts)
	require.NoError(t, opts.Normalize())

	outs, err := Render(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, "MakeAttribute.g.cs", outs[0].FileKey)
	assert.NotContains(t, outs[0].Content, "namespace")
	assert.Contains(t, outs[0].Content, "public class MakeAttribute : Attribute")
	assert.Equal(t, "CartTests.g.cs", outs[1].FileKey)
	assert.Contains(t, outs[1].Content, "private static Cart CreateCart(")
}

func TestRender_NoSources(t *testing.T) {
	opts := project(t, map[string]string{"README.md": "nothing here"})
	_, err := Render(context.Background(), opts)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestRender_DuplicateFileKey(t *testing.T) {
	opts := project(t, map[string]string{
		"src/Cart.cs": cartSource,
		"a/CartTests.cs": `using CC.Generators;
namespace A { [Creator(Target = typeof(Shop.Cart))] public partial class CartTests { } }`,
		"b/CartTests.cs": `using CC.Generators;
namespace B { [Creator(Target = typeof(Shop.Cart))] public partial class CartTests { } }`,
	})
	_, err := Render(context.Background(), opts)
	require.ErrorIs(t, err, ErrDuplicateFileKey)
}

func TestUniqueKeys(t *testing.T) {
	require.NoError(t, uniqueKeys([]model.Output{{FileKey: "A.g.cs"}, {FileKey: "B.g.cs"}}))
	require.ErrorIs(t, uniqueKeys([]model.Output{{FileKey: "A.g.cs"}, {FileKey: "A.g.cs"}}), ErrDuplicateFileKey)
}
