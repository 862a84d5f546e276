package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // A4, letter
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns the options used for the legal pages
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       56,
		MarginBottom:    56,
		MarginLeft:      56,
		MarginRight:     56,
	}
}

// paperSize returns width and height in inches
func (o PDFOptions) paperSize() (float64, float64) {
	var w, h float64
	switch o.PageSize {
	case "letter":
		w, h = 8.5, 11.0
	default: // A4
		w, h = 8.27, 11.69
	}
	if o.PageOrientation == "landscape" {
		w, h = h, w
	}
	return w, h
}

// PDFRenderer turns a complete HTML document into a PDF
type PDFRenderer interface {
	Render(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error)
}

// ChromePDFRenderer renders with headless Chrome
type ChromePDFRenderer struct {
	// ChromePath overrides the browser binary (headless-shell in Docker)
	ChromePath string
	// Timeout bounds one render, 30s when zero
	Timeout time.Duration
}

// NewChromePDFRenderer creates a renderer using the browser at chromePath,
// or the system Chrome when empty.
func NewChromePDFRenderer(chromePath string) *ChromePDFRenderer {
	return &ChromePDFRenderer{ChromePath: chromePath, Timeout: 30 * time.Second}
}

// Render implements PDFRenderer
func (r *ChromePDFRenderer) Render(ctx context.Context, htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	paperWidth, paperHeight := options.paperSize()

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		// let web fonts and images settle
		chromedp.Sleep(100*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(float64(options.MarginTop) / 72.0).
				WithMarginBottom(float64(options.MarginBottom) / 72.0).
				WithMarginLeft(float64(options.MarginLeft) / 72.0).
				WithMarginRight(float64(options.MarginRight) / 72.0).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
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

	return pdfBuf, nil
}

// WrapHTMLForPDF wraps a rendered legal page body in a printable document.
func WrapHTMLForPDF(title, lang, dir, body string) string {
	return `<!DOCTYPE html>
<html lang="` + html.EscapeString(lang) + `" dir="` + html.EscapeString(dir) + `">
<head>
    <meta charset="UTF-8">
    <title>` + html.EscapeString(title) + `</title>
    <style>
        body {
            font-family: "Noto Sans", "Noto Sans Arabic", Arial, sans-serif;
            font-size: 11pt;
            line-height: 1.6;
            color: #111;
        }
        h1 {
            font-size: 20pt;
            margin-bottom: 4pt;
        }
        h2 {
            font-size: 14pt;
            margin-top: 18pt;
            margin-bottom: 6pt;
        }
        h3 {
            font-size: 12pt;
            margin-top: 12pt;
            margin-bottom: 4pt;
        }
        p {
            margin: 0 0 8pt;
            white-space: pre-line;
        }
        .meta {
            color: #555;
            font-size: 9pt;
        }
    </style>
</head>
<body>
` + body + `
</body>
</html>`
}
