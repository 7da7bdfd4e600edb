package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 30 * time.Second

// PDFOptions contains the paper settings for the print sheet
type PDFOptions struct {
	PageSize  string  // A4 or letter, always landscape
	MarginMM  float64 // same margin on every side
	ChromeExe string  // optional Chrome/Chromium path
}

// PaperInches returns the landscape paper size in inches
func (o PDFOptions) PaperInches() (width, height float64) {
	switch strings.ToLower(o.PageSize) {
	case "letter":
		return 11.0, 8.5
	default: // A4
		return 11.69, 8.27
	}
}

// PDFService prints the card sheet with headless Chrome
type PDFService struct {
	options PDFOptions
}

// NewPDFService creates a new PDFService
func NewPDFService(options PDFOptions) *PDFService {
	return &PDFService{options: options}
}

// detectChromePath returns the configured Chrome path or the first common installation found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  CHROME_PATH %s not found, trying common paths", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/headless-shell/headless-shell",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// browser starts a headless Chrome context; cancel releases everything
func (s *PDFService) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, renderTimeout)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.DisableGPU,
	)
	if chromePath := detectChromePath(s.options.ChromeExe); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
		cancelTimeout()
	}
}

// loadHTML replaces the blank page content and waits for fonts and images
func loadHTML(htmlContent string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) { resolve(); return; }
							img.onload = resolve;
							img.onerror = resolve;
						});
					}))
				]);
			})();
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
}

// GeneratePDF prints the rendered sheet HTML to a single landscape page
func (s *PDFService) GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error) {
	browserCtx, cancel := s.browser(ctx)
	defer cancel()

	paperWidth, paperHeight := s.options.PaperInches()
	margin := s.options.MarginMM / 25.4

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		loadHTML(htmlContent),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(false). // paper size is already landscape
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("🖨️  PDF generated: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG screenshots the rendered sheet at print media
func (s *PDFService) GeneratePNG(ctx context.Context, htmlContent string) ([]byte, error) {
	browserCtx, cancel := s.browser(ctx)
	defer cancel()

	paperWidth, paperHeight := s.options.PaperInches()
	// 96 px per inch
	width, height := int64(paperWidth*96), int64(paperHeight*96)

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(width, height),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetEmulatedMedia().WithMedia("print").Do(ctx)
		}),
		loadHTML(htmlContent),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	log.Printf("🖼️  PNG generated: %d bytes", len(buf))
	return buf, nil
}
