package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"toorrii_site/services/content"
	"toorrii_site/templates/components"
	"toorrii_site/templates/pages"

	"github.com/labstack/echo/v4"
)

// now is replaced in tests
var now = time.Now

func HomeHandler(c echo.Context) error {
	partners := fetch(c, contentQueries.Partners)
	return renderPage(c, http.StatusOK, GetSEO(c, "home"), pages.Home(partners, now()))
}

func AboutUsHandler(c echo.Context) error {
	doc := fetch(c, contentQueries.AboutUs)
	return renderPage(c, contentStatus(doc), GetSEO(c, "about"), pages.DocumentArticle(doc, pages.AboutPage))
}

func PrivacyPolicyHandler(c echo.Context) error {
	doc := fetch(c, contentQueries.PrivacyPolicy)
	body := pages.DocumentArticle(doc, pages.PrivacyPage)
	if doc.HasData() {
		body = pages.WithPDFLink(body, "/privacy-policy.pdf")
	}
	return renderPage(c, contentStatus(doc), GetSEO(c, "privacy"), body)
}

// TermsOfServiceHandler always answers 200: the standard sections do not
// depend on the backend.
func TermsOfServiceHandler(c echo.Context) error {
	doc := fetch(c, contentQueries.TermsOfService)
	body := pages.TermsArticle(doc)
	if !doc.IsLoading() {
		body = pages.WithPDFLink(body, "/terms-of-service.pdf")
	}
	return renderPage(c, http.StatusOK, GetSEO(c, "terms"), body)
}

func ContactHandler(c echo.Context) error {
	info := fetch(c, contentQueries.ContactInfo)
	return renderPage(c, http.StatusOK, GetSEO(c, "contact"), pages.Contact(info))
}

func PartnersHandler(c echo.Context) error {
	partners := fetch(c, contentQueries.Partners)
	return renderPage(c, contentStatus(partners), GetSEO(c, "partners"), pages.PartnersList(partners, now()))
}

// PartnerDetailHandler shows one active partner, matched on partenaire_id or id.
func PartnerDetailHandler(c echo.Context) error {
	r := partnerByID(c)

	seo := GetSEO(c, "partners").WithNoIndex()
	switch {
	case errors.Is(r.Err, content.ErrPartnerNotFound), r.HasData() && !r.Data.IsActive(now()):
		return renderPage(c, http.StatusNotFound, seo, pages.NotFound("errors.partnerNotFound"))
	case r.IsLoading():
		return renderPage(c, http.StatusOK, seo, components.Loading())
	case !r.HasData():
		return renderPage(c, http.StatusServiceUnavailable, seo, components.Unavailable())
	}

	return renderPage(c, http.StatusOK, partnerSEO(c, r.Data), pages.PartnerDetail(r.Data))
}

// HTTPErrorHandler renders error pages for browsers and JSON for the API.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") || !acceptsHTML(c) {
		if writeErr := c.JSON(code, map[string]string{"error": message}); writeErr != nil {
			log.Printf("[ERROR] Failed to write error response: %v", writeErr)
		}
		return
	}

	seo := GetSEO(c, "home").WithNoIndex()
	var renderErr error
	switch {
	case code == http.StatusNotFound:
		renderErr = renderPage(c, code, seo, pages.NotFound(""))
	case code >= http.StatusInternalServerError:
		renderErr = renderPage(c, code, seo, pages.ServerError())
	default:
		renderErr = c.String(code, message)
	}
	if renderErr != nil {
		log.Printf("[ERROR] Failed to render error page: %v", renderErr)
	}
}

func acceptsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return accept == "" || strings.Contains(accept, "text/html") || strings.Contains(accept, "*/*")
}
