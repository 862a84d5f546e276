package handlers

import (
	"errors"
	"net/http"
	"time"

	"toorrii_site/models"
	"toorrii_site/services/content"
	"toorrii_site/services/query"

	"github.com/labstack/echo/v4"
)

// ContentAPIHandler returns the cached content of a resource as JSON.
// Documents are passed through as the backend sent them. While a resource
// has no data yet the answer is 503, with Retry-After when it is loading.
func ContentAPIHandler(c echo.Context) error {
	switch c.Param("resource") {
	case query.KeyAboutUs:
		return contentJSON(c, fetch(c, contentQueries.AboutUs))
	case query.KeyPartners:
		return contentJSON(c, fetch(c, contentQueries.Partners))
	case query.KeyPrivacyPolicy:
		return contentJSON(c, fetch(c, contentQueries.PrivacyPolicy))
	case query.KeyTermsOfService:
		return contentJSON(c, fetch(c, contentQueries.TermsOfService))
	case query.KeyContactInfo:
		return contentJSON(c, fetch(c, contentQueries.ContactInfo))
	}
	return echo.NewHTTPError(http.StatusNotFound, "Unknown resource")
}

// PartnerAPIHandler returns one partner, matched on partenaire_id or id.
func PartnerAPIHandler(c echo.Context) error {
	r := partnerByID(c)
	if errors.Is(r.Err, content.ErrPartnerNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, r.Err.Error())
	}
	return contentJSON(c, r)
}

func contentJSON[T any](c echo.Context, r query.Result[T]) error {
	c.Response().Header().Set("X-Content-Status", r.Status.String())

	if !r.HasData() {
		if r.IsLoading() {
			return contentLoading(c)
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": r.Status.String(),
			"error":  "content unavailable",
		})
	}

	if !r.UpdatedAt.IsZero() {
		c.Response().Header().Set(echo.HeaderLastModified, r.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if doc, ok := any(r.Data).(models.Document); ok {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, doc.RawJSON())
	}
	return c.JSON(http.StatusOK, r.Data)
}

// HealthHandler reports liveness and the state of each cached resource
func HealthHandler(c echo.Context) error {
	cache := contentQueries.Cache()
	resources := make(map[string]map[string]any)
	for _, key := range cache.Keys() {
		e, _ := cache.Get(key)
		entry := map[string]any{
			"status":   e.Status.String(),
			"has_data": e.HasData,
			"fetching": e.Fetching,
		}
		if !e.UpdatedAt.IsZero() {
			entry["updated_at"] = e.UpdatedAt.UTC().Format(time.RFC3339)
		}
		resources[key] = entry
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    "ok",
		"resources": resources,
	})
}
