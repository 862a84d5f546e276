package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toorrii_site/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "%PDF-1.4 terms"
	key := "legal/terms-of-service-fr-abc.pdf"
	size := int64(len(content))

	t.Run("Missing key", func(t *testing.T) {
		_, _, err := storage.Get(ctx, key)
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, "application/pdf", size)
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, size, result.FileSize)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)

		// no temporary files left behind
		entries, err := os.ReadDir(filepath.Join(tempDir, "legal"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Get retrieves file content", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "application/pdf", contentType)
	})

	t.Run("Delete removes file", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, key))
		assert.NoError(t, storage.Delete(ctx, key))

		_, err := os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Public URL", func(t *testing.T) {
		assert.Equal(t, "/"+filepath.ToSlash(filepath.Join(tempDir, "some/key")), storage.GetPublicURL("some/key"))
		assert.Equal(t, "local", storage.Name())
	})
}

func TestInitializeStorageWithoutR2(t *testing.T) {
	cfg := &config.Config{UploadDir: t.TempDir()}

	provider := InitializeStorage(cfg)

	assert.Equal(t, "local", provider.Name())
	assert.Same(t, provider, Storage)
}

func TestR2PublicURL(t *testing.T) {
	r2 := &R2Storage{bucket: "site", publicURL: "https://cdn.toorrii.com/"}
	assert.Equal(t, "https://cdn.toorrii.com/legal/a.pdf", r2.GetPublicURL("legal/a.pdf"))

	r2.publicURL = ""
	assert.Equal(t, "", r2.GetPublicURL("legal/a.pdf"))
	assert.Equal(t, "r2", r2.Name())
}
