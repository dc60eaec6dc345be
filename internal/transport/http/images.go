package httptransport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"limban-server-go/internal/domain/image"
)

// defaultRenderVariant is the rendition served when a lookup names none.
const defaultRenderVariant = "optimisedCard"

// ImageResolver answers render-time variant lookups against the processed
// mapping.
type ImageResolver interface {
	Resolve(ctx context.Context, url string, spec image.VariantSpec) string
	Metrics() image.MetricsSnapshot
}

func registerImageRoutes(api *gin.RouterGroup, svc ImageResolver, catalog map[string]image.VariantSpec) {
	api.GET("/images/resolve", handleResolveImage(svc, catalog))
}

// handleResolveImage maps a source asset URL to the public path of one of
// its renditions. Unprocessed sources resolve to themselves.
func handleResolveImage(svc ImageResolver, catalog map[string]image.VariantSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			RespondError(c, http.StatusBadRequest, "url is required", nil)
			return
		}
		name := c.DefaultQuery("variant", defaultRenderVariant)
		spec, ok := catalog[name]
		if !ok {
			RespondError(c, http.StatusNotFound, "unknown variant: "+name, nil)
			return
		}
		src := svc.Resolve(c.Request.Context(), url, spec)
		RespondSuccess(c, http.StatusOK, gin.H{"url": url, "variant": name, "src": src}, "")
	}
}

func handleImageMetrics(svc ImageResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondSuccess(c, http.StatusOK, svc.Metrics(), "")
	}
}
