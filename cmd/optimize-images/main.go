package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"limban-server-go/internal/domain/content"
	"limban-server-go/internal/domain/eventbus"
	"limban-server-go/internal/domain/image"
	platformconfig "limban-server-go/internal/platform/config"
	platformlogging "limban-server-go/internal/platform/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	catalogName := flag.String("catalog", "default", "variant catalog: default or semantic")
	outputDir := flag.String("out", "", "override output directory")
	flag.Parse()

	if err := run(context.Background(), *configPath, *catalogName, *outputDir, flag.Args()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "optimize-images failed: %v\n", err)
		os.Exit(1)
	}
}

// run fetches every asset URL referenced by the CMS content (plus any passed
// as arguments), derives all catalog variants and refreshes the mapping file.
func run(ctx context.Context, configPath, catalogName, outputDir string, extraURLs []string) error {
	result, err := platformconfig.NewLoader().WithPath(configPath).Load()
	if err != nil {
		return err
	}
	cfg := result.Config

	logger, err := platformlogging.New(platformlogging.Config{
		Level:    cfg.Log.Level,
		Dir:      cfg.Log.Dir,
		Filename: "optimize-images.log",
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	urls, err := collectURLs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	urls = mergeURLs(urls, extraURLs)
	logger.Info("[Pipeline] %d source images to process", len(urls))

	mapping, err := image.LoadMapping(cfg.Pipeline.MappingPath)
	if err != nil {
		return err
	}

	pipelineCfg := image.PipelineConfig{
		OutputDir:    cfg.Pipeline.OutputDir,
		PublicPrefix: cfg.Pipeline.PublicPrefix,
		Extension:    cfg.Pipeline.Extension,
		BatchSize:    cfg.Pipeline.BatchSize,
		BatchPause:   cfg.Pipeline.BatchPause,
	}
	if outputDir != "" {
		pipelineCfg.OutputDir = outputDir
	}

	backoff := image.LinearBackoff()
	backoff.MaxAttempts = cfg.Pipeline.MaxAttempts
	fetcher := image.NewFetcher(cfg.Pipeline.FetchTimeout, backoff)

	bus := eventbus.New()
	bus.Subscribe(eventbus.TopicSourceDone, func(pr eventbus.SourceProgress) {
		if pr.FellBack {
			logger.Warn("[Pipeline] (%d/%d) fell back to original: %s", pr.Index+1, pr.Total, pr.URL)
			return
		}
		logger.Info("[Pipeline] (%d/%d) %s: %d variants", pr.Index+1, pr.Total, pr.URL, pr.Variants)
	})

	pipeline := image.NewPipeline(pipelineCfg, image.CatalogByName(catalogName), fetcher, bus, logger)
	summary, err := pipeline.Run(ctx, urls, mapping)
	if err != nil {
		return err
	}
	if err := mapping.Save(cfg.Pipeline.MappingPath); err != nil {
		return err
	}

	fmt.Printf("processed %d/%d sources, %d variants written, %d fell back\n",
		summary.Processed, summary.Total, summary.Variants, summary.Failed)
	return nil
}

// collectURLs pulls every page section from the CMS and deep-walks the
// decoded content for asset references.
func collectURLs(ctx context.Context, cfg *platformconfig.Config, logger *platformlogging.Logger) ([]string, error) {
	if cfg.CMS.Endpoint == "" {
		logger.Warn("[CMS] no endpoint configured, processing explicit URLs only")
		return nil, nil
	}

	client := content.NewClient(cfg.CMS.Endpoint, cfg.CMS.Timeout, logger)
	svc := content.NewService(client, logger)

	site := struct {
		Homepage  content.Homepage                 `json:"homepage"`
		Galleries map[string][]content.GalleryItem `json:"galleries"`
	}{
		Homepage:  svc.FetchHomepage(ctx),
		Galleries: map[string][]content.GalleryItem{},
	}
	for _, pageName := range []string{"vibe", "wildlife", "corporate", "about"} {
		items, err := svc.FetchGallery(ctx, pageName)
		if err != nil {
			logger.Warn("[CMS] %s gallery failed: %v", pageName, err)
			continue
		}
		site.Galleries[pageName] = items
	}

	raw, err := sonic.Marshal(site)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return content.ExtractSourceURLs(decoded, cfg.CMS.AssetHost), nil
}

func mergeURLs(urls, extra []string) []string {
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		seen[u] = struct{}{}
	}
	for _, u := range extra {
		if _, dup := seen[u]; !dup {
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls
}
