package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	a, err := Hash([]byte("public partial class A {}"))
	require.NoError(t, err)
	b, err := Hash([]byte("public partial class A {}"))
	require.NoError(t, err)
	c, err := Hash([]byte("public partial class B {}"))
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
}

func TestManifest_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "creator.manifest.yaml")
	m := &Manifest{Marker: "CC.Generators.CreatorAttribute", StandIn: "moq"}
	m.Record(Entry{File: "B.g.cs", Source: "App.B", Hash: "02"})
	m.Record(Entry{File: "A.g.cs", Source: "App.A", Hash: "01"})
	m.Record(Entry{File: "B.g.cs", Source: "App.B", Hash: "03"})
	require.NoError(t, m.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Manifest{
		Marker:  "CC.Generators.CreatorAttribute",
		StandIn: "moq",
		Entries: []Entry{
			{File: "A.g.cs", Source: "App.A", Hash: "01"},
			{File: "B.g.cs", Source: "App.B", Hash: "03"},
		},
	}, got)

	e, ok := got.Lookup("B.g.cs")
	require.True(t, ok)
	assert.Equal(t, "03", e.Hash)
	_, ok = got.Lookup("C.g.cs")
	assert.False(t, ok)
}

func TestManifest_Retain(t *testing.T) {
	m := &Manifest{Entries: []Entry{{File: "A.g.cs"}, {File: "B.g.cs"}, {File: "C.g.cs"}}}
	dropped := m.Retain([]string{"A.g.cs", "C.g.cs"})

	assert.Equal(t, []Entry{{File: "B.g.cs"}}, dropped)
	assert.Equal(t, []Entry{{File: "A.g.cs"}, {File: "C.g.cs"}}, m.Entries)
}
