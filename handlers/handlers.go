package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"toorrii_site/models"
	"toorrii_site/services"
	"toorrii_site/services/query"
	"toorrii_site/templates/components"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

var (
	// pageWait bounds how long a page waits for its content before rendering
	// the loading state instead
	pageWait = 3 * time.Second

	contentQueries *query.Queries
	legalPDFs      *services.LegalPDFService
)

// Init sets the content queries and PDF service the handlers read from
func Init(queries *query.Queries, pdfs *services.LegalPDFService) {
	contentQueries = queries
	legalPDFs = pdfs
}

// fetch returns the cached content of q at once, stale or not, revalidating
// in the background. Without cached data it waits up to pageWait; a fetch
// still running when the wait ends is reported as loading and keeps going.
func fetch[T any](c echo.Context, q *query.Query[T]) query.Result[T] {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pageWait)
	defer cancel()
	return settle(ctx, q.Load(ctx))
}

// partnerByID resolves the :id route param, path-unescaped, like fetch does
// for a whole resource
func partnerByID(c echo.Context) query.Result[models.Partner] {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pageWait)
	defer cancel()
	return settle(ctx, contentQueries.PartnerByID(ctx, partnerParam(c)))
}

func partnerParam(c echo.Context) string {
	id := c.Param("id")
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}

func settle[T any](ctx context.Context, r query.Result[T]) query.Result[T] {
	if r.IsError() && !r.HasData() && ctx.Err() != nil {
		return query.Pending[T]()
	}
	return r
}

// renderPage writes body inside the site layout
func renderPage(c echo.Context, status int, seo *models.SEO, body templ.Component) error {
	ctx := c.Request().Context()
	contact := contentQueries.ContactInfo.Peek(ctx)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return components.Layout(seo, contact, body).Render(ctx, c.Response().Writer)
}

// contentStatus is the HTTP status of a page built from r
func contentStatus[T any](r query.Result[T]) int {
	if r.IsError() && !r.HasData() {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
