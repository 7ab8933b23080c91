package httpserver

import (
	"fmt"
	"log"
	"net/http"

	"tireshop/internal/notify"

	"github.com/gin-gonic/gin"
)

// deliveryCities is the static list of cities offered for courier
// delivery.
var deliveryCities = []string{
	"Moscow",
	"Saint Petersburg",
	"Novosibirsk",
	"Yekaterinburg",
	"Kazan",
	"Nizhny Novgorod",
	"Chelyabinsk",
	"Samara",
	"Omsk",
	"Rostov-on-Don",
}

func citiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": deliveryCities})
}

type callbackRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Question string `json:"question"`
}

// callbackHandler forwards a call-back request to the operator
// channel. Unlike order notifications there is no committed state to
// protect, so the send is awaited and its failure reported.
func callbackHandler(deps Deps, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		text := fmt.Sprintf("<b>Call-back request</b>\n<b>Name:</b> %s\n<b>Phone:</b> %s\n<b>Question:</b> %s",
			notify.EscapeHTML(req.Name), notify.EscapeHTML(req.Phone), notify.EscapeHTML(req.Question))
		if err := deps.Notifier.Send(c.Request.Context(), text); err != nil {
			logger.Printf("callback: notify error=%v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "could not submit request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "request submitted"})
	}
}
