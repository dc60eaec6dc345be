package httptransport

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/storage"
)

// Reviewer serves the public review feed and the import webhook.
type Reviewer interface {
	ListMore(ctx context.Context, offset, limit int) ([]storage.Review, error)
	Import(ctx context.Context, payload []byte) (int, error)
}

func registerReviewRoutes(api *gin.RouterGroup, svc Reviewer) {
	api.POST("/reviews/more", handleLoadMore(svc))
	api.POST("/reviews/import", handleImport(svc))
}

type loadMoreRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func handleLoadMore(svc Reviewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loadMoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		reviews, err := svc.ListMore(c.Request.Context(), req.Offset, req.Limit)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to load reviews", gin.H{
				"reviews": []storage.Review{},
				"hasMore": false,
			})
			return
		}
		hasMore := req.Limit > 0 && len(reviews) == req.Limit
		RespondSuccess(c, http.StatusOK, gin.H{
			"reviews": reviews,
			"hasMore": hasMore,
		}, "")
	}
}

func handleImport(svc Reviewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "failed to read body", nil)
			return
		}
		count, err := svc.Import(c.Request.Context(), payload)
		if err != nil {
			if errors.IsKind(err, errors.KindContent) {
				RespondError(c, http.StatusBadRequest, "invalid review payload", nil)
				return
			}
			RespondError(c, http.StatusInternalServerError, "import failed", nil)
			return
		}
		RespondSuccess(c, http.StatusOK, gin.H{"imported": count}, "")
	}
}
