package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLocalProvider_CreatesBaseDir(t *testing.T) {
	t.Parallel()
	base := filepath.Join(t.TempDir(), "pages")

	provider, err := NewLocalProvider(base)
	require.NoError(t, err)
	defer provider.Close()

	info, err := os.Stat(base)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestNewLocalProvider_RequiresBaseDir(t *testing.T) {
	t.Parallel()
	_, err := NewLocalProvider("  ")
	require.Error(t, err)
}

func TestNewLocalProvider_RejectsFileAsBaseDir(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewLocalProvider(file)
	require.Error(t, err)
}

func TestLocalProvider_PutPage(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	provider, err := NewLocalProvider(base)
	require.NoError(t, err)

	uri, err := provider.PutPage(context.Background(),
		"profiles/2025-06-01/abc123.html", []byte("<html>fighter</html>"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "file://"))

	data, err := os.ReadFile(filepath.Join(base, "profiles", "2025-06-01", "abc123.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>fighter</html>", string(data))
}

func TestLocalProvider_PutPageRejectsTraversal(t *testing.T) {
	t.Parallel()
	provider, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	_, err = provider.PutPage(context.Background(), "../escape.html", []byte("x"))
	require.Error(t, err)

	_, err = provider.PutPage(context.Background(), "  ", []byte("x"))
	require.Error(t, err)
}

func TestNoOpProvider(t *testing.T) {
	t.Parallel()
	provider := NewNoOpProvider()

	uri, err := provider.PutPage(context.Background(), "profiles/x.html", []byte("x"))
	require.NoError(t, err)
	require.Empty(t, uri)
	require.NoError(t, provider.Close())
}
