package httptransport

import (
	"context"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"limban-server-go/internal/domain/content"
	"limban-server-go/internal/domain/image"
)

// ContentProvider serves the aggregated CMS content the site renders.
type ContentProvider interface {
	FetchHomepage(ctx context.Context) content.Homepage
	FetchGallery(ctx context.Context, page string) ([]content.GalleryItem, error)
}

func registerContentRoutes(api *gin.RouterGroup, provider ContentProvider, resolver ImageResolver, catalog map[string]image.VariantSpec, assetHost string) {
	api.GET("/content/homepage", handleHomepage(provider, resolver, catalog, assetHost))
	api.GET("/content/gallery/:page", handleGallery(provider, resolver, catalog, assetHost))
}

// handleHomepage serves the landing page content with every processed asset
// URL swapped for the requested rendition's public path.
func handleHomepage(provider ContentProvider, resolver ImageResolver, catalog map[string]image.VariantSpec, assetHost string) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, ok := catalog[c.DefaultQuery("variant", defaultRenderVariant)]
		if !ok {
			RespondError(c, http.StatusNotFound, "unknown variant", nil)
			return
		}

		page := provider.FetchHomepage(c.Request.Context())
		raw, err := sonic.Marshal(page)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to encode content", nil)
			return
		}
		var decoded any
		if err := sonic.Unmarshal(raw, &decoded); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to encode content", nil)
			return
		}

		RespondSuccess(c, http.StatusOK, substituteResolved(c.Request.Context(), decoded, resolver, spec, assetHost), "")
	}
}

// handleGallery serves one page gallery, enriched for rendering and with
// asset URLs swapped for the requested rendition.
func handleGallery(provider ContentProvider, resolver ImageResolver, catalog map[string]image.VariantSpec, assetHost string) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, ok := catalog[c.DefaultQuery("variant", defaultRenderVariant)]
		if !ok {
			RespondError(c, http.StatusNotFound, "unknown variant", nil)
			return
		}

		pageName := c.Param("page")
		items, err := provider.FetchGallery(c.Request.Context(), pageName)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to fetch gallery", nil)
			return
		}

		enriched := content.EnrichGallery(items, pageName, "Limban")
		if resolver != nil {
			for i := range enriched {
				if strings.Contains(enriched[i].URL, assetHost) {
					enriched[i].URL = resolver.Resolve(c.Request.Context(), enriched[i].URL, spec)
				}
			}
		}
		RespondSuccess(c, http.StatusOK, gin.H{"page": pageName, "images": enriched}, "")
	}
}

// substituteResolved swaps every asset host URL in decoded JSON through the
// resolver. Unprocessed URLs resolve to themselves, so the content always
// stays renderable.
func substituteResolved(ctx context.Context, node any, resolver ImageResolver, spec image.VariantSpec, assetHost string) any {
	if resolver == nil {
		return node
	}
	return content.Substitute(node, func(s string) (string, bool) {
		if !strings.Contains(s, assetHost) {
			return "", false
		}
		return resolver.Resolve(ctx, s, spec), true
	})
}
