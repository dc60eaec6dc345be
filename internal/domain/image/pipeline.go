package image

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"

	"limban-server-go/internal/domain/eventbus"
	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/logging"
)

// Downloader fetches source image bytes.
type Downloader interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TransformFunc derives one variant from source bytes.
type TransformFunc func(src []byte, spec VariantSpec) ([]byte, error)

// PipelineConfig bounds a pipeline run.
type PipelineConfig struct {
	OutputDir    string
	PublicPrefix string
	Extension    string
	BatchSize    int
	BatchPause   time.Duration
}

// Pipeline derives every catalog variant for a set of source URLs and
// records the results in a Mapping. Failures never abort a run: a source
// that cannot be fetched maps all its variants back to the original URL,
// and a variant that cannot be encoded falls back alone.
type Pipeline struct {
	cfg       PipelineConfig
	catalog   []VariantSpec
	fetcher   Downloader
	transform TransformFunc
	bus       evbus.Bus
	logger    *logging.Logger
}

func NewPipeline(cfg PipelineConfig, catalog []VariantSpec, fetcher Downloader, bus evbus.Bus, logger *logging.Logger) *Pipeline {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 4
	}
	if cfg.Extension == "" {
		cfg.Extension = "webp"
	}
	return &Pipeline{
		cfg:       cfg,
		catalog:   catalog,
		fetcher:   fetcher,
		transform: Transform,
		bus:       bus,
		logger:    logger,
	}
}

// Run processes urls in batches, updating mapping in place. The returned
// summary counts sources, not variants, as processed.
func (p *Pipeline) Run(ctx context.Context, urls []string, mapping Mapping) (eventbus.RunSummary, error) {
	summary := eventbus.RunSummary{Total: len(urls)}
	if len(urls) == 0 {
		return summary, nil
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return summary, errors.Wrap(errors.KindPipeline, "pipeline.run", "failed to create output directory", err)
	}

	var mu sync.Mutex
	for start := 0; start < len(urls); start += p.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(errors.KindPipeline, "pipeline.run", "run cancelled", err)
		}
		end := start + p.cfg.BatchSize
		if end > len(urls) {
			end = len(urls)
		}

		var wg sync.WaitGroup
		for i, url := range urls[start:end] {
			wg.Add(1)
			go func(index int, url string) {
				defer wg.Done()
				progress := p.processSource(ctx, url, mapping, &mu)
				progress.Index = index
				progress.Total = len(urls)

				mu.Lock()
				if progress.FellBack {
					summary.Failed++
				} else {
					summary.Processed++
				}
				summary.Variants += progress.Variants
				mu.Unlock()

				if p.bus != nil {
					p.bus.Publish(eventbus.TopicSourceDone, progress)
				}
			}(start+i, url)
		}
		wg.Wait()

		if end < len(urls) && p.cfg.BatchPause > 0 {
			select {
			case <-ctx.Done():
				return summary, errors.Wrap(errors.KindPipeline, "pipeline.run", "run cancelled", ctx.Err())
			case <-time.After(p.cfg.BatchPause):
			}
		}
	}

	if p.bus != nil {
		p.bus.Publish(eventbus.TopicRunDone, summary)
	}
	if p.logger != nil {
		p.logger.Info("[Pipeline] run complete: %d/%d sources, %d variants, %d failed",
			summary.Processed, summary.Total, summary.Variants, summary.Failed)
	}
	return summary, nil
}

// processSource derives every catalog variant for one url. mu guards the
// shared mapping.
func (p *Pipeline) processSource(ctx context.Context, url string, mapping Mapping, mu *sync.Mutex) eventbus.SourceProgress {
	progress := eventbus.SourceProgress{URL: url}

	src, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("[Pipeline] fetch failed, keeping original for %s: %v", url, err)
		}
		mu.Lock()
		for _, spec := range p.catalog {
			mapping.Set(url, spec.Name, url)
		}
		mu.Unlock()
		progress.FellBack = true
		progress.Fallbacks = len(p.catalog)
		return progress
	}

	for _, spec := range p.catalog {
		path, err := p.writeVariant(url, src, spec)
		mu.Lock()
		if err != nil {
			mapping.Set(url, spec.Name, url)
			progress.Fallbacks++
		} else {
			mapping.Set(url, spec.Name, path)
			progress.Variants++
		}
		mu.Unlock()
		if err != nil && p.logger != nil {
			p.logger.Warn("[Pipeline] variant %s failed for %s: %v", spec.Name, url, err)
		}
	}
	return progress
}

func (p *Pipeline) writeVariant(url string, src []byte, spec VariantSpec) (string, error) {
	out, err := p.transform(src, spec)
	if err != nil {
		return "", err
	}
	name := VariantFilename(url, spec.Name, p.cfg.Extension)
	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, name), out, 0o644); err != nil {
		return "", errors.Wrap(errors.KindPipeline, "pipeline.write", "failed to write variant file", err)
	}
	return p.cfg.PublicPrefix + "/" + name, nil
}
