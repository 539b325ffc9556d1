package middleware

import (
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// LanguageMiddleware stores the preferred language of the Accept-Language header, falling back to en.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", preferredLanguage(c.GetHeader("Accept-Language")))
		c.Next()
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

func preferredLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	base, _ := tags[0].Base()
	return base.String()
}
