package render

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeRenderer prints HTML to PDF through headless Chrome. A fresh browser
// context is created per render; Chrome startup dominates only on cold cache
// and keeps renders isolated from each other.
type ChromeRenderer struct {
	execPath string
}

// NewChromeRenderer constructs a renderer. execPath may be empty to use the
// Chrome found on PATH.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{execPath: execPath}
}

// RenderPDF converts Markdown to a PDF document.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, markdown string) ([]byte, error) {
	html, err := HTMLFromMarkdown(markdown)
	if err != nil {
		return nil, err
	}
	return r.printHTML(ctx, html)
}

func (r *ChromeRenderer) printHTML(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print to pdf: %w", err)
	}
	if len(pdfBuf) == 0 {
		return nil, fmt.Errorf("chrome print to pdf: empty output")
	}
	return pdfBuf, nil
}

var _ Renderer = (*ChromeRenderer)(nil)
