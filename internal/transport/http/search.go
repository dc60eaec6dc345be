package httptransport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"limban-server-go/internal/domain/search"
)

// Searcher answers admin enquiry searches.
type Searcher interface {
	Search(ctx context.Context, f search.Filter) (search.Result, error)
}

func registerSearchRoutes(api *gin.RouterGroup, svc Searcher) {
	api.GET("/search", handleSearch(svc))
}

// handleSearch serves the admin search form. The response body is always the
// four-array envelope, even on failure, so the page renders regardless.
func handleSearch(svc Searcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := search.Filter{
			Term:     c.Query("query"),
			DateFrom: c.Query("dateFrom"),
			DateTo:   c.Query("dateTo"),
		}
		result, err := svc.Search(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
