package httpserver

import (
	"net/http"
	"strconv"

	"tireshop/internal/domain"
	"tireshop/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

// filterValuesResponse keeps the field order stable in the payload.
type filterValuesResponse struct {
	Width        []domain.FilterValue `json:"width"`
	Profile      []domain.FilterValue `json:"profile"`
	Diameter     []domain.FilterValue `json:"diameter"`
	Season       []domain.FilterValue `json:"season"`
	Manufacturer []domain.FilterValue `json:"manufacturer"`
}

func filterValuesHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := deps.CatalogSvc.FilterValues(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, filterValuesResponse{
			Width:        values["width"],
			Profile:      values["profile"],
			Diameter:     values["diameter"],
			Season:       values["season"],
			Manufacturer: values["manufacturer"],
		})
	}
}

func productListHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := deps.CatalogSvc.List(c.Request.Context(), catalog.ListInput{
			Width:        c.QueryArray("width"),
			Profile:      c.QueryArray("profile"),
			Diameter:     c.QueryArray("diameter"),
			Season:       c.QueryArray("season"),
			Manufacturer: c.QueryArray("manufacturer"),
			Page:         c.DefaultQuery("page", "1"),
			Sort:         c.Query("sort"),
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		for i := range page.Items {
			page.Items[i].Images = absoluteImageURLs(page.Items[i].Images, deps.MediaURLHost)
		}
		c.JSON(http.StatusOK, page)
	}
}

func productDetailHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		product, err := deps.CatalogSvc.Get(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		product.Images = absoluteImageURLs(product.Images, deps.MediaURLHost)
		c.JSON(http.StatusOK, product)
	}
}
