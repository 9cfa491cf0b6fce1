package document_test

import (
	"context"
	"errors"
	"hash"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/application/dto"
	"github.com/sushnag22/pdf-generator/internal/application/validation"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/internal/domain/fieldlabel"
	"github.com/sushnag22/pdf-generator/internal/domain/filename"
	"github.com/sushnag22/pdf-generator/internal/domain/lineitem"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeRenderer struct {
	mu    sync.Mutex
	calls int
	out   []byte
	err   error
	last  document.RenderInput
}

func (f *fakeRenderer) Render(_ context.Context, in document.RenderInput) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return []byte("%PDF-1.4\n%fake\n%%EOF\n"), nil
}

type memStore struct {
	mu     sync.Mutex
	files  map[string][]byte
	stores int
	err    error
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) EnsureDirectory(context.Context) {}

func (s *memStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

func (s *memStore) Store(_ context.Context, name string, data []byte) (document.StoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return document.StoreResult{}, s.err
	}
	if _, ok := s.files[name]; ok {
		return document.StoreResult{Name: name}, nil
	}
	s.files[name] = data
	s.stores++
	return document.StoreResult{Name: name, Created: true, Size: int64(len(data))}, nil
}

func (s *memStore) Retrieve(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newUseCase(r document.Renderer, s document.Store) *document.UseCase {
	return newUseCaseWithDeriver(filename.NewDeriver(), r, s)
}

func newUseCaseWithDeriver(d *filename.Deriver, r document.Renderer, s document.Store) *document.UseCase {
	v := validation.New(fieldlabel.New(), lineitem.New(nil))
	cfg := document.Config{QuantityUnit: "Nos", CurrencySymbol: "INR"}
	return document.NewUseCase(v, d, r, s, cfg, logger.Nop())
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intp(n int) *int { return &n }

func validRequest() *dto.GenerateRequest {
	return &dto.GenerateRequest{
		SellerName:    "Seller Company",
		SellerAddress: "12 Market Road, Pune",
		SellerGstin:   "27ABCDE1234F1Z5",
		BuyerName:     "Buyer Company",
		BuyerAddress:  "4 Lake View, Chennai",
		BuyerGstin:    "33ABCDE1234F1Z5",
		Items: []dto.ItemRequest{
			{Name: "Widget", Quantity: intp(2), Rate: dec("100.00"), Amount: dec("200.00")},
		},
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestGenerateAndStore_CreatesDocument(t *testing.T) {
	r, s := &fakeRenderer{}, newMemStore()
	uc := newUseCase(r, s)

	res, err := uc.GenerateAndStore(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, strings.HasPrefix(res.FileName, "Seller_Company_Buyer_Company_"))
	assert.True(t, strings.HasSuffix(res.FileName, ".pdf"))
	assert.Contains(t, s.files, res.FileName)
	assert.Equal(t, "Nos", r.last.QuantityUnit)
	assert.Equal(t, "INR", r.last.CurrencySymbol)
}

func TestGenerateAndStore_IsIdempotent(t *testing.T) {
	r, s := &fakeRenderer{}, newMemStore()
	uc := newUseCase(r, s)

	first, err := uc.GenerateAndStore(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := uc.GenerateAndStore(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first.FileName, second.FileName)
	assert.False(t, second.Created)
	assert.Equal(t, 1, r.calls, "an existing document is not rendered again")
	assert.Equal(t, 1, s.stores)
}

func TestGenerateAndStore_ValidationFailure(t *testing.T) {
	r, s := &fakeRenderer{}, newMemStore()
	req := validRequest()
	req.SellerName = ""

	_, err := newUseCase(r, s).GenerateAndStore(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	ve, ok := validation.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "'Seller Name' is mandatory", ve.Message)
	assert.Zero(t, r.calls)
	assert.Empty(t, s.files)
}

func TestGenerateAndStore_RenderFailure(t *testing.T) {
	s := newMemStore()
	_, err := newUseCase(&fakeRenderer{err: errors.New("boom")}, s).
		GenerateAndStore(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Empty(t, s.files)
}

func TestGenerateAndStore_RejectsNonPDFOutput(t *testing.T) {
	s := newMemStore()
	_, err := newUseCase(&fakeRenderer{out: []byte("<html></html>")}, s).
		GenerateAndStore(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Empty(t, s.files)
}

func TestGenerateAndStore_StorageFailure(t *testing.T) {
	s := newMemStore()
	s.err = domain.ErrStorage
	_, err := newUseCase(&fakeRenderer{}, s).GenerateAndStore(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

type brokenHash struct{ hash.Hash }

func (brokenHash) Write([]byte) (int, error) { return 0, errors.New("hash unavailable") }

func TestGenerateAndStore_HashFailureTouchesNothing(t *testing.T) {
	r, s := &fakeRenderer{}, newMemStore()
	d := filename.NewDeriverWithHash(func() hash.Hash { return brokenHash{} })

	_, err := newUseCaseWithDeriver(d, r, s).GenerateAndStore(context.Background(), validRequest())
	assert.ErrorIs(t, err, domain.ErrHashDerivation)
	assert.Zero(t, r.calls)
	assert.Empty(t, s.files)
}

func TestDownload(t *testing.T) {
	r, s := &fakeRenderer{}, newMemStore()
	uc := newUseCase(r, s)

	res, err := uc.GenerateAndStore(context.Background(), validRequest())
	require.NoError(t, err)

	doc, err := uc.Download(context.Background(), res.FileName)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, s.files[res.FileName], doc.Data)

	_, err = uc.Download(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownload_UnknownContentType(t *testing.T) {
	s := newMemStore()
	s.files["notes.pdf"] = []byte("plain text")

	doc, err := newUseCase(&fakeRenderer{}, s).Download(context.Background(), "notes.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", doc.ContentType)
}
