package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/pkg/translator"
)

// LanguageMiddleware resolves the response language from the Accept-Language
// header and stores it in the request context.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", negotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// negotiateLanguage keeps only the primary subtag of the first listed
// language; anything unsupported falls back to English.
func negotiateLanguage(header string) string {
	first := header
	if idx := strings.IndexByte(first, ','); idx >= 0 {
		first = first[:idx]
	}
	if idx := strings.IndexByte(first, ';'); idx >= 0 {
		first = first[:idx]
	}
	if idx := strings.IndexByte(first, '-'); idx >= 0 {
		first = first[:idx]
	}
	first = strings.ToLower(strings.TrimSpace(first))

	switch first {
	case translator.LanguageFr, translator.LanguageEn:
		return first
	default:
		return translator.LanguageEn
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
