package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comicvault/internal/microservices/http-api/dto"
	"comicvault/internal/microservices/http-api/validation"
)

// ComicInputKey is where ValidateComic stores the sanitized body.
const ComicInputKey = "comic_input"

// ValidateComic binds the request body as a single comic, sanitizes and
// validates it, and aborts with 400 on the first failing rule.
func ValidateComic() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.ComicInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation.BodyError(err).Message})
			return
		}
		if err := validation.Comic(&in); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Set(ComicInputKey, &in)
		c.Next()
	}
}

// ComicInput returns the body stored by ValidateComic.
func ComicInput(c *gin.Context) (*dto.ComicInput, bool) {
	v, ok := c.Get(ComicInputKey)
	if !ok {
		return nil, false
	}
	in, ok := v.(*dto.ComicInput)
	return in, ok
}
