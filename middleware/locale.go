package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"toorrii_site/config"
	"toorrii_site/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("fr")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if requested := c.QueryParam("lang"); requested != "" {
				lang = i18n.Normalize(requested)
				if lang == "" {
					lang = i18n.DefaultLang
				}
				setLanguageCookie(c, lang, cfg.IsProduction())
			} else if cookie, err := c.Cookie("lang"); err == nil {
				lang = i18n.Normalize(cookie.Value)
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)

			// templ components read the locale from the request context
			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// fromAcceptLanguage returns the first supported language of the header,
// in the order the client listed them.
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if lang := i18n.Normalize(tag); lang != "" {
			return lang
		}
	}
	return i18n.DefaultLang
}

func setLanguageCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	val := c.Get("locale")
	if lang, ok := val.(string); ok {
		return lang
	}
	return i18n.DefaultLang
}
