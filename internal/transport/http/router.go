package httptransport

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	"limban-server-go/internal/domain/image"
	"limban-server-go/internal/platform/config"
	"limban-server-go/internal/platform/logging"
)

// Options configures the HTTP router builder. Catalog defaults to the full
// variant set when nil.
type Options struct {
	Config  *config.Config
	Logger  *logging.Logger
	Search  Searcher
	Reviews Reviewer
	Images  ImageResolver
	Content ContentProvider
	Catalog []image.VariantSpec
}

// Router bundles the gin engine and its route groups.
type Router struct {
	Engine *gin.Engine
	API    *gin.RouterGroup
}

// Build constructs a gin engine with logging, recovery, CORS, the optimized
// asset tree and the admin basic-auth guard, then mounts the API routes.
func Build(opts Options) (*Router, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("http router requires config")
	}
	cfg := opts.Config

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(opts.Logger))
	engine.SetTrustedProxies([]string{"0.0.0.0"})

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(BasicAuthForPrefix(cfg.Admin.PathPrefix, cfg.Admin.Username, cfg.Admin.Password))
	engine.Use(static.Serve(cfg.Pipeline.PublicPrefix, static.LocalFile(cfg.Pipeline.OutputDir, false)))

	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = image.DefaultCatalog()
	}
	byName := make(map[string]image.VariantSpec, len(catalog))
	for _, spec := range catalog {
		byName[spec.Name] = spec
	}

	api := engine.Group("/api")
	api.GET("/health", handleHealth)
	if opts.Search != nil {
		registerSearchRoutes(api, opts.Search)
	}
	if opts.Reviews != nil {
		registerReviewRoutes(api, opts.Reviews)
	}
	if opts.Images != nil {
		registerImageRoutes(api, opts.Images, byName)
		engine.GET(cfg.Admin.PathPrefix+"/metrics", handleImageMetrics(opts.Images))
	}
	if opts.Content != nil {
		registerContentRoutes(api, opts.Content, opts.Images, byName, cfg.CMS.AssetHost)
	}

	return &Router{Engine: engine, API: api}, nil
}

func handleHealth(c *gin.Context) {
	RespondSuccess(c, 200, gin.H{"status": "ok"}, "")
}

func loggingMiddleware(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger != nil {
			logger.Info(
				"[HTTP] %s %s -> %d (%s)",
				c.Request.Method,
				c.Request.URL.Path,
				c.Writer.Status(),
				time.Since(start),
			)
		}
	}
}
