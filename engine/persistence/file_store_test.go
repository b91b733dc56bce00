package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) FileStore {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "saves"))
	require.NoError(t, err)
	return fs
}

func TestLoadMissingFile(t *testing.T) {
	fs := newTestStore(t)
	got, err := fs.LoadSavedMaterials(context.Background(), "shirt-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveThenLoad(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()
	want := map[string]string{"front": "jeans", "back": "houndstooth"}

	require.NoError(t, fs.SaveMaterials(ctx, "shirt-1", want))
	got, err := fs.LoadSavedMaterials(ctx, "shirt-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// A second save replaces the first.
	require.NoError(t, fs.SaveMaterials(ctx, "shirt-1", map[string]string{"front": "redplaid"}))
	got, err = fs.LoadSavedMaterials(ctx, "shirt-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"front": "redplaid"}, got)

	entries, err := os.ReadDir(fs.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "shirt-1.json", entries[0].Name())
}

func TestSaveWritesBlobShape(t *testing.T) {
	fs := newTestStore(t)
	require.NoError(t, fs.SaveMaterials(context.Background(), "f", map[string]string{"front": "jeans"}))

	path, err := fs.Path("f")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"partMaterials":{"front":"jeans"}}`, string(data))
}

func TestSaveNilMapping(t *testing.T) {
	fs := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, fs.SaveMaterials(ctx, "f", nil))

	got, err := fs.LoadSavedMaterials(ctx, "f")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLoadToleratesExtraFields(t *testing.T) {
	fs := newTestStore(t)
	path, err := fs.Path("f")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`{"version":3,"owner":"x","partMaterials":{"back":"jeans"}}`), 0o644))

	got, err := fs.LoadSavedMaterials(context.Background(), "f")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"back": "jeans"}, got)
}

func TestLoadWithoutMapping(t *testing.T) {
	fs := newTestStore(t)
	path, err := fs.Path("f")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(`{"version":3}`), 0o644))

	got, err := fs.LoadSavedMaterials(context.Background(), "f")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadCorruptBlob(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"partMaterials":`},
		{"mapping not an object", `{"partMaterials":["jeans"]}`},
		{"material not a string", `{"partMaterials":{"front":3}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newTestStore(t)
			path, err := fs.Path("f")
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			_, err = fs.LoadSavedMaterials(context.Background(), "f")
			assert.ErrorIs(t, err, ErrCorruptBlob)
		})
	}
}

func TestInvalidFileID(t *testing.T) {
	fs := newTestStore(t)
	for _, id := range []string{"", ".", "..", "../escape", `a\b`} {
		_, err := fs.LoadSavedMaterials(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidFileID, id)
		assert.ErrorIs(t, fs.SaveMaterials(context.Background(), id, nil), ErrInvalidFileID, id)
	}
}

func TestCancelledContext(t *testing.T) {
	fs := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, fs.SaveMaterials(ctx, "f", map[string]string{"front": "jeans"}), context.Canceled)
	_, err := fs.LoadSavedMaterials(ctx, "f")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileStoreRequiresDir(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}
