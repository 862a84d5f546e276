package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPDFOptions(t *testing.T) {
	opts := DefaultPDFOptions()
	assert.Equal(t, "portrait", opts.PageOrientation)
	assert.Equal(t, "A4", opts.PageSize)
	assert.Equal(t, 56, opts.MarginTop)
	assert.Equal(t, 56, opts.MarginLeft)
}

func TestPaperSize(t *testing.T) {
	w, h := DefaultPDFOptions().paperSize()
	assert.Equal(t, 8.27, w)
	assert.Equal(t, 11.69, h)

	w, h = PDFOptions{PageSize: "letter", PageOrientation: "landscape"}.paperSize()
	assert.Equal(t, 11.0, w)
	assert.Equal(t, 8.5, h)
}

func TestWrapHTMLForPDF(t *testing.T) {
	body := "<h1>Conditions d'utilisation</h1><p>Texte</p>"
	doc := WrapHTMLForPDF(`Terms "v2"`, "ar", "rtl", body)

	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, `<html lang="ar" dir="rtl">`)
	assert.Contains(t, doc, "<title>Terms &#34;v2&#34;</title>")
	assert.Contains(t, doc, body)
}

func TestChromePDFRendererSmoke(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping PDF generation test: CHROME_PATH not set")
	}

	renderer := NewChromePDFRenderer(chromePath)
	pdf, err := renderer.Render(context.Background(), WrapHTMLForPDF("t", "fr", "ltr", "<h1>Bonjour</h1>"), DefaultPDFOptions())
	if err != nil {
		if os.IsNotExist(err) {
			t.Skipf("Skipping: Chrome not found at %s", chromePath)
		}
		t.Errorf("Render failed: %v", err)
		return
	}

	assert.NotEmpty(t, pdf)
	assert.Contains(t, string(pdf[:5]), "%PDF-")
}
