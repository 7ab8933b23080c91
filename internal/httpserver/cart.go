package httpserver

import (
	"net/http"
	"strings"

	"tireshop/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartMutationRequest struct {
	SessionID string `json:"session_id"`
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity"`
	All       bool   `json:"all"`
}

// token from the body wins over header/query so existing clients that
// post session_id keep working.
func (r cartMutationRequest) token(c *gin.Context) string {
	if token := strings.TrimSpace(r.SessionID); token != "" {
		return token
	}
	return sessionToken(c)
}

type cartListResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice int64             `json:"total_price"`
}

func cartListHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, total, err := deps.CartSvc.List(c.Request.Context(), sessionToken(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		for i := range items {
			items[i].Product.Images = absoluteImageURLs(items[i].Product.Images, deps.MediaURLHost)
		}
		c.JSON(http.StatusOK, cartListResponse{Items: items, TotalPrice: total})
	}
}

func cartAddHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if err := deps.CartSvc.Add(c.Request.Context(), req.token(c), req.ProductID, quantity); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "product added to cart"})
	}
}

func cartRemoveHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMutationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := deps.CartSvc.Remove(c.Request.Context(), req.token(c), req.ProductID, req.All); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "product removed from cart"})
	}
}
