package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWorkspace_Sources(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "Service.cs"), "class Service {}")
	writeFile(t, filepath.Join(root, "a", "Tests.cs"), "class Tests {}")
	writeFile(t, filepath.Join(root, "a", "Tests.g.cs"), "generated")
	writeFile(t, filepath.Join(root, "a", "notes.txt"), "not code")
	writeFile(t, filepath.Join(root, "obj", "Debug", "Assembly.cs"), "class Assembly {}")
	writeFile(t, filepath.Join(root, "Generated", "Old.cs"), "class Old {}")

	ws := New([]string{"obj"}, filepath.Join(root, "Generated"))
	files, err := ws.Sources(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.True(t, strings.HasSuffix(files[0].URL, "a/Tests.cs"), files[0].URL)
	assert.Equal(t, "class Tests {}", string(files[0].Content))
	assert.True(t, strings.HasSuffix(files[1].URL, "b/Service.cs"), files[1].URL)
}

func TestWorkspace_WriteReadRemove(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "nested", "Generated")
	location := Join(out, "AccountTests.g.cs")
	ws := New(nil)

	_, ok, err := ws.Read(ctx, location)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ws.Write(ctx, location, []byte("one")))
	content, ok, err := ws.Read(ctx, location)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", string(content))

	require.NoError(t, ws.Write(ctx, location, []byte("two")))
	content, _, err = ws.Read(ctx, location)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))

	require.NoError(t, ws.Remove(ctx, location))
	_, ok, err = ws.Read(ctx, location)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, ws.Remove(ctx, location))
}
