package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushnag22/pdf-generator/internal/domain/entity"
	"github.com/sushnag22/pdf-generator/internal/domain/lineitem"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/pdf"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/printing"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/storage"
	"github.com/sushnag22/pdf-generator/pkg/config"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		PDF: config.PDFConfig{
			QuantityUnit:   "Nos",
			CurrencySymbol: "INR",
			Renderer:       config.RendererMaroto,
			RenderTimeout:  time.Second,
		},
		Storage: config.StorageConfig{
			Driver: config.StorageFS,
			Path:   filepath.Join(t.TempDir(), "pdfs"),
		},
		Labels: config.LabelConfig{Abbreviations: []string{"gstin"}},
	}
}

func TestNewDocuments_CreatesStorageRoot(t *testing.T) {
	cfg := testConfig(t)

	docs, err := NewDocuments(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer docs.Close()

	require.NotNil(t, docs.UseCase)
	fi, err := os.Stat(cfg.Storage.Path)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestNewStore_Cache(t *testing.T) {
	cfg := testConfig(t).Storage

	s, err := NewStore(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &storage.FileSystemStore{}, s)

	cfg.CacheTTL = time.Minute
	s, err = NewStore(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &storage.CachedStore{}, s)

	cfg.Driver = "ftp"
	_, err = NewStore(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestNewRenderer(t *testing.T) {
	cfg := testConfig(t).PDF
	d := &Documents{}

	r, err := NewRenderer(cfg, logger.Nop(), d)
	require.NoError(t, err)
	assert.IsType(t, &pdf.MarotoRenderer{}, r)

	cfg.Renderer = config.RendererChromedp
	cfg.ChromeRemoteURL = "ws://127.0.0.1:1"
	r, err = NewRenderer(cfg, logger.Nop(), d)
	require.NoError(t, err)
	assert.IsType(t, &printing.HTMLRenderer{}, r)
	assert.Len(t, d.close, 1)
	assert.NoError(t, d.Close())
}

func TestItemMessages(t *testing.T) {
	msgs := ItemMessages(config.ItemMessageConfig{AmountMismatch: "Amount does not match quantity x rate"})

	q := 2
	rate := decimal.RequireFromString("10")
	amount := decimal.RequireFromString("25")
	failures := lineitem.New(msgs).Validate([]entity.LineItem{{Name: "Widget", Quantity: &q, Rate: &rate, Amount: &amount}})
	require.Len(t, failures, 1)
	assert.Equal(t, "Amount does not match quantity x rate", failures[0].Message)

	empty := lineitem.New(msgs).Validate(nil)
	require.Len(t, empty, 1)
	assert.Equal(t, lineitem.DefaultMessages[lineitem.EmptyItems], empty[0].Message)
}
