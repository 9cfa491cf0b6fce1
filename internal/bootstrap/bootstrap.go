// Package bootstrap builds the document use case from configuration. Both the HTTP
// server and the CLI start from here.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/application/validation"
	"github.com/sushnag22/pdf-generator/internal/domain/fieldlabel"
	"github.com/sushnag22/pdf-generator/internal/domain/filename"
	"github.com/sushnag22/pdf-generator/internal/domain/lineitem"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/pdf"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/printing"
	"github.com/sushnag22/pdf-generator/internal/infrastructure/storage"
	"github.com/sushnag22/pdf-generator/pkg/config"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// Documents is the wired use case plus the resources to release on shutdown.
type Documents struct {
	UseCase *document.UseCase
	Store   document.Store
	close   []func() error
}

// Close releases the renderer resources (the Chrome allocator, if any).
func (d *Documents) Close() error {
	var first error
	for _, fn := range d.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewDocuments builds store, renderer, validators and use case, and prepares the
// storage root.
func NewDocuments(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Documents, error) {
	store, err := NewStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	store.EnsureDirectory(ctx)

	d := &Documents{Store: store}
	renderer, err := NewRenderer(cfg.PDF, log, d)
	if err != nil {
		return nil, err
	}

	d.UseCase = document.NewUseCase(
		validation.New(fieldlabel.New(cfg.Labels.Abbreviations...), lineitem.New(ItemMessages(cfg.Items))),
		filename.NewDeriver(),
		renderer,
		store,
		document.Config{QuantityUnit: cfg.PDF.QuantityUnit, CurrencySymbol: cfg.PDF.CurrencySymbol},
		log,
	)
	return d, nil
}

// ItemMessages maps the configured overrides to line-item failure kinds. Kinds left
// empty fall back to lineitem.DefaultMessages.
func ItemMessages(cfg config.ItemMessageConfig) lineitem.Messages {
	return lineitem.Messages{
		lineitem.EmptyItems:      cfg.Empty,
		lineitem.InvalidQuantity: cfg.InvalidQuantity,
		lineitem.InvalidRate:     cfg.InvalidRate,
		lineitem.MissingAmount:   cfg.MissingAmount,
		lineitem.AmountMismatch:  cfg.AmountMismatch,
	}
}

// NewStore selects the storage driver, optionally behind the read cache.
func NewStore(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (document.Store, error) {
	var store document.Store
	switch cfg.Driver {
	case config.StorageS3:
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		store = storage.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix, log)
	case config.StorageFS:
		store = storage.NewFileSystemStore(cfg.Path, log)
	default:
		return nil, fmt.Errorf("bootstrap: unknown storage driver %q", cfg.Driver)
	}

	if cfg.CacheTTL > 0 {
		store = storage.NewCachedStore(store, cfg.CacheTTL, log)
	}
	return store, nil
}

// NewRenderer selects the PDF renderer. Closers are registered on d.
func NewRenderer(cfg config.PDFConfig, log *logger.Logger, d *Documents) (document.Renderer, error) {
	switch cfg.Renderer {
	case config.RendererMaroto:
		return pdf.NewMarotoRenderer(), nil
	case config.RendererChromedp:
		engine, err := printing.NewTemplateEngine()
		if err != nil {
			return nil, err
		}
		conv := printing.NewChromedpConverter(printing.ChromedpConfig{
			Timeout:   cfg.RenderTimeout,
			RemoteURL: cfg.ChromeRemoteURL,
			NoSandbox: cfg.ChromeNoSandbox,
		}, log)
		d.close = append(d.close, conv.Close)
		return printing.NewHTMLRenderer(engine, conv), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown renderer %q", cfg.Renderer)
	}
}
