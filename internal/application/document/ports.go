package document

import (
	"context"

	"github.com/sushnag22/pdf-generator/internal/domain/entity"
)

// RenderInput is everything a renderer receives: the validated invoice and the two
// presentation settings from configuration.
type RenderInput struct {
	Invoice        *entity.Invoice
	QuantityUnit   string
	CurrencySymbol string
}

// Renderer turns an invoice into PDF bytes. It owns the whole visual layout.
type Renderer interface {
	Render(ctx context.Context, in RenderInput) ([]byte, error)
}

// StoreResult describes a Store call.
type StoreResult struct {
	Name     string
	Location string // absolute path or object URI
	Created  bool   // false when the document was already present
	Size     int64
}

// Store persists documents under their derived name. A name is written at most once;
// storing an existing name is a successful no-op. Missing names yield domain.ErrNotFound,
// unsafe names domain.ErrInvalidFileName.
type Store interface {
	// EnsureDirectory prepares the storage root. Failures are logged, never returned.
	EnsureDirectory(ctx context.Context)
	Exists(ctx context.Context, name string) (bool, error)
	Store(ctx context.Context, name string, data []byte) (StoreResult, error)
	Retrieve(ctx context.Context, name string) ([]byte, error)
}
