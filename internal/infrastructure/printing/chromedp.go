package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/sushnag22/pdf-generator/pkg/logger"
)

const (
	defaultChromeTimeout = 30 * time.Second

	// A4 in inches, 10mm margins.
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 10 / 25.4
)

// ChromedpConfig configures the HTML to PDF converter.
type ChromedpConfig struct {
	Timeout   time.Duration
	RemoteURL string // DevTools URL of a running browser; empty launches a local one
	NoSandbox bool   // required when Chrome runs as root in a container
}

// ChromedpConverter prints HTML to PDF through the Chrome DevTools Protocol. One browser
// allocator is shared; every conversion opens its own tab.
type ChromedpConverter struct {
	cfg         ChromedpConfig
	log         *logger.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpConverter prepares the browser allocator. The browser itself starts lazily
// on the first conversion.
func NewChromedpConverter(cfg ChromedpConfig, log *logger.Logger) *ChromedpConverter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	c := &ChromedpConverter{cfg: cfg, log: log.Named("printing.chromedp")}

	if cfg.RemoteURL != "" {
		c.allocCtx, c.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return c
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return c
}

// Convert prints a complete HTML document to an A4 PDF.
func (c *ChromedpConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(c.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			c.log.Debug().Msg(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()

	// The tab lives under the allocator context, so the request deadline is enforced here.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var pdfData []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginRight(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", c.cfg.Timeout), err)
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		c.log.Error().Err(err).Msg("chromedp rendering failed")
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	c.log.Debug().Int("bytes", len(pdfData)).Dur("duration", time.Since(start)).Msg("PDF printed")
	return pdfData, nil
}

// Close shuts the browser down.
func (c *ChromedpConverter) Close() error {
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}
