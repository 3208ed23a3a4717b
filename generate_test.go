package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/creatorgen/pkg/action/generate"
	. "github.com/cmmoran/creatorgen/pkg/generator"
)

func TestGenerate(ttt *testing.T) {
	fixtures := "test/testdata/fixtures"
	type args struct {
		opts []Option
	}
	tests := []struct {
		name    string
		fixture string
		args    args
		wantErr bool
	}{
		{
			name:    "generate with defaults",
			fixture: "accounts",
		},
		{
			name:    "generate with fakeiteasy for records and file-scoped namespaces",
			fixture: "records",
			args: args{
				opts: []Option{
					WithStandIn("fakeiteasy"),
					WithWorkers(1),
				},
			},
		},
		{
			name:    "generate without sources",
			fixture: "empty",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			inDir := filepath.Join(fixtures, tt.fixture, "input")
			expectDir := filepath.Join(fixtures, tt.fixture, "expected")
			opts, err := New(append([]Option{WithInDir(inDir), WithOutDir(t.TempDir())}, tt.args.opts...)...)
			require.NoError(t, err)

			outs, err := generate.Render(context.Background(), opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			expected, err := os.ReadDir(expectDir)
			require.NoError(t, err)
			require.Len(t, outs, len(expected))
			for _, out := range outs {
				want, err := os.ReadFile(filepath.Join(expectDir, out.FileKey))
				require.NoErrorf(t, err, "unexpected output %s", out.FileKey)
				diff := cmp.Diff(string(want), out.Content)
				require.EqualValuesf(t, string(want), out.Content, "%s (-want +got):\n%s", out.FileKey, diff)
			}
		})
	}
}
