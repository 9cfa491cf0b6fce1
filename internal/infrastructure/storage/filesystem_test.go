package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

var pdfBytes = []byte("%PDF-1.4\n%test document\n%%EOF\n")

func newFSStore(t *testing.T) (*FileSystemStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pdfs")
	return NewFileSystemStore(dir, logger.Nop()), dir
}

func TestFileSystemStore_EnsureDirectory(t *testing.T) {
	s, dir := newFSStore(t)
	s.EnsureDirectory(context.Background())

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	// Second call is a no-op.
	s.EnsureDirectory(context.Background())
}

func TestFileSystemStore_EnsureDirectory_FailureIsSwallowed(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewFileSystemStore(filepath.Join(blocker, "pdfs"), logger.Nop())
	assert.NotPanics(t, func() { s.EnsureDirectory(context.Background()) })
}

func TestFileSystemStore_StoreAndRetrieve(t *testing.T) {
	ctx := context.Background()
	s, dir := newFSStore(t)

	res, err := s.Store(ctx, "a_b_token.pdf", pdfBytes)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "a_b_token.pdf", res.Name)
	assert.Equal(t, int64(len(pdfBytes)), res.Size)

	ok, err := s.Exists(ctx, "a_b_token.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Retrieve(ctx, "a_b_token.pdf")
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files may remain")
	assert.Equal(t, "a_b_token.pdf", entries[0].Name())
}

func TestFileSystemStore_StoreIsWriteOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newFSStore(t)

	_, err := s.Store(ctx, "doc.pdf", pdfBytes)
	require.NoError(t, err)

	res, err := s.Store(ctx, "doc.pdf", []byte("%PDF-other"))
	require.NoError(t, err)
	assert.False(t, res.Created)

	got, err := s.Retrieve(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got, "existing content must not be replaced")
}

func TestFileSystemStore_ConcurrentStoreSameName(t *testing.T) {
	ctx := context.Background()
	s, dir := newFSStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Store(ctx, "same.pdf", pdfBytes)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Retrieve(ctx, "same.pdf")
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSystemStore_RetrieveMissing(t *testing.T) {
	s, _ := newFSStore(t)
	_, err := s.Retrieve(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := s.Exists(context.Background(), "missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileSystemStore_RejectsUnsafeNames(t *testing.T) {
	ctx := context.Background()
	s, dir := newFSStore(t)

	// A file outside the root that traversal would reach.
	outside := filepath.Join(filepath.Dir(dir), "secret.pdf")
	require.NoError(t, os.WriteFile(outside, pdfBytes, 0o644))

	for _, name := range []string{
		"", ".", "..", "../secret.pdf", "..\\secret.pdf", "a/b.pdf", "/etc/passwd",
		".hidden.pdf", ".tmp-123", "nul\x00.pdf",
	} {
		t.Run(strings.ReplaceAll(name, "/", "_"), func(t *testing.T) {
			_, err := s.Retrieve(ctx, name)
			assert.ErrorIs(t, err, domain.ErrInvalidFileName)
			_, err = s.Store(ctx, name, pdfBytes)
			assert.ErrorIs(t, err, domain.ErrInvalidFileName)
		})
	}
}

func TestCheckName(t *testing.T) {
	assert.NoError(t, CheckName("Seller_Buyer_abc.pdf"))
	assert.NoError(t, CheckName("weird name..pdf"))
	assert.ErrorIs(t, CheckName(".."), domain.ErrInvalidFileName)
	assert.ErrorIs(t, CheckName("x/../y"), domain.ErrInvalidFileName)
}
