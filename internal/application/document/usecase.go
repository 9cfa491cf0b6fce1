// Package document implements generate-and-store and download of invoice PDFs.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/h2non/filetype"

	"github.com/sushnag22/pdf-generator/internal/application/dto"
	"github.com/sushnag22/pdf-generator/internal/application/validation"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/filename"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// Config presentation settings passed to the renderer, fixed for the process lifetime.
type Config struct {
	QuantityUnit   string
	CurrencySymbol string
}

// GenerateResult outcome of GenerateAndStore.
type GenerateResult struct {
	FileName string
	Created  bool // false when the same content had already been generated
}

// Document a retrieved PDF.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

const defaultContentType = "application/octet-stream"

// UseCase generates, stores and serves invoice documents.
type UseCase struct {
	validator *validation.Validator
	deriver   *filename.Deriver
	renderer  Renderer
	store     Store
	cfg       Config
	log       *logger.Logger
}

// NewUseCase wires the use case with all of its dependencies.
func NewUseCase(
	validator *validation.Validator,
	deriver *filename.Deriver,
	renderer Renderer,
	store Store,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		validator: validator,
		deriver:   deriver,
		renderer:  renderer,
		store:     store,
		cfg:       cfg,
		log:       log.Named("document"),
	}
}

// GenerateAndStore validates the request, derives the file name and, unless a document
// with that name already exists, renders and stores the PDF.
//
// Returns:
//   - *validation.Error (errors.Is domain.ErrInvalidInput) when any check fails.
//   - domain.ErrHashDerivation when no name could be derived; storage is not touched.
//   - domain.ErrRender when the renderer fails or does not return a PDF; nothing is written.
//   - domain.ErrStorage on I/O failures.
func (uc *UseCase) GenerateAndStore(ctx context.Context, req *dto.GenerateRequest) (*GenerateResult, error) {
	inv := req.ToEntity()

	// ── 1. Field and line-item validation ─────────────────────────────────────
	if err := uc.validator.Validate(req, inv); err != nil {
		uc.log.Warn().Str("errors", err.Error()).Msg("validation errors in the PDF data")
		return nil, err
	}

	// ── 2. Content-derived name ───────────────────────────────────────────────
	name, err := uc.deriver.Derive(inv)
	if err != nil || name == "" {
		uc.log.Error().Err(err).Msg("error generating hash for PDF data")
		if err == nil {
			err = domain.ErrHashDerivation
		}
		return nil, err
	}

	// ── 3. Dedup: an existing name means identical content ────────────────────
	exists, err := uc.store.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("document: check existence: %w", err)
	}
	if exists {
		uc.log.Info().Str("file", name).Msg("PDF already exists")
		return &GenerateResult{FileName: name}, nil
	}

	// ── 4. Render ─────────────────────────────────────────────────────────────
	data, err := uc.renderer.Render(ctx, RenderInput{
		Invoice:        inv,
		QuantityUnit:   uc.cfg.QuantityUnit,
		CurrencySymbol: uc.cfg.CurrencySymbol,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRender) {
			return nil, err
		}
		return nil, fmt.Errorf("document: render: %w: %w", domain.ErrRender, err)
	}
	if !filetype.IsMIME(data, "application/pdf") {
		return nil, fmt.Errorf("document: render: %w: output is not a PDF (%d bytes)", domain.ErrRender, len(data))
	}

	// ── 5. Store ──────────────────────────────────────────────────────────────
	res, err := uc.store.Store(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("document: store: %w", err)
	}
	if res.Created {
		uc.log.Info().Str("file", name).Str("location", res.Location).Int64("size", res.Size).
			Msg("PDF generated and saved")
	} else {
		uc.log.Info().Str("file", name).Msg("PDF already exists")
	}
	return &GenerateResult{FileName: name, Created: res.Created}, nil
}

// Download returns the stored document with the media type detected from its bytes.
//
// Returns domain.ErrNotFound for unknown names and domain.ErrInvalidFileName for names
// that are not a single file name under the storage root.
func (uc *UseCase) Download(ctx context.Context, name string) (*Document, error) {
	data, err := uc.store.Retrieve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("document: retrieve %q: %w", name, err)
	}

	contentType := defaultContentType
	if kind, mErr := filetype.Match(data); mErr == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}
	return &Document{FileName: name, ContentType: contentType, Data: data}, nil
}
