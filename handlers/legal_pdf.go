package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"toorrii_site/services"
	"toorrii_site/services/i18n"
	"toorrii_site/templates/components"
	"toorrii_site/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// TermsOfServicePDFHandler serves the terms of service as a PDF
func TermsOfServicePDFHandler(c echo.Context) error {
	doc := fetch(c, contentQueries.TermsOfService)
	if doc.IsLoading() {
		return contentLoading(c)
	}
	return servePDF(c, "terms-of-service", "terms.title", pages.TermsArticle(doc))
}

// PrivacyPolicyPDFHandler serves the privacy policy as a PDF
func PrivacyPolicyPDFHandler(c echo.Context) error {
	doc := fetch(c, contentQueries.PrivacyPolicy)
	if !doc.HasData() {
		if doc.IsLoading() {
			return contentLoading(c)
		}
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Privacy policy unavailable")
	}
	return servePDF(c, "privacy-policy", "privacy.title", pages.DocumentArticle(doc, pages.PrivacyPage))
}

// servePDF renders article and answers with its PDF. The ETag is the content
// hash, so unchanged pages are answered with 304.
func servePDF(c echo.Context, name, titleKey string, article templ.Component) error {
	ctx := c.Request().Context()
	lang := i18n.GetLocale(ctx)

	var body bytes.Buffer
	if err := article.Render(ctx, &body); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	document := services.WrapHTMLForPDF(i18n.T(ctx, titleKey), lang, i18n.Dir(ctx), body.String())

	etag := `"` + services.ContentHash(document)[:16] + `"`
	c.Response().Header().Set("ETag", etag)
	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	pdf, err := legalPDFs.Get(ctx, name, lang, document)
	if err != nil {
		log.Printf("[ERROR] PDF generation failed for %s (%s): %v", name, lang, err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "PDF generation failed")
	}

	filename := fmt.Sprintf("toorrii-%s-%s.pdf", name, lang)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Response().Header().Set("X-Cache", cacheLabel(pdf))
	return c.Blob(http.StatusOK, "application/pdf", pdf.Data)
}

func cacheLabel(pdf *services.LegalPDF) string {
	if pdf.Cached {
		return "HIT"
	}
	return "MISS"
}

// contentLoading answers while the content a resource needs is still loading
func contentLoading(c echo.Context) error {
	c.Response().Header().Set("Retry-After", strconv.Itoa(int(components.ReloadAfter.Seconds())))
	return echo.NewHTTPError(http.StatusServiceUnavailable, "Content is loading")
}
