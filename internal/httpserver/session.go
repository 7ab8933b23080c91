package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func sessionHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := deps.SessionSvc.Ensure(c.Request.Context(), sessionToken(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Header(sessionHeader, info.Token)
		c.JSON(http.StatusOK, info)
	}
}
