package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"tireshop/internal/domain"

	"github.com/gin-gonic/gin"
)

// sessionHeader carries the opaque session token; a session_id query
// or body field is accepted as well.
const sessionHeader = "X-Session-ID"

// abortWithError maps the domain error taxonomy onto HTTP statuses.
// Unexpected errors surface as a generic 500 so transaction internals
// never leak.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrInvalidContactType):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid contact type"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// sessionToken resolves the session token from the header or query.
func sessionToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(sessionHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Query("session_id"))
}

// absoluteImageURLs prefixes relative image paths with the configured
// media host. Already-absolute URLs are left untouched.
func absoluteImageURLs(urls []string, host string) []string {
	if host == "" || len(urls) == 0 {
		return urls
	}
	out := make([]string, len(urls))
	for i, u := range urls {
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			out[i] = u
			continue
		}
		out[i] = strings.TrimRight(host, "/") + "/" + strings.TrimLeft(u, "/")
	}
	return out
}
