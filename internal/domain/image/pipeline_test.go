package image

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"limban-server-go/internal/domain/eventbus"
)

type stubDownloader struct {
	mu      sync.Mutex
	fail    map[string]bool
	fetched []string
}

func (d *stubDownloader) Fetch(_ context.Context, url string) ([]byte, error) {
	d.mu.Lock()
	d.fetched = append(d.fetched, url)
	fail := d.fail[url]
	d.mu.Unlock()
	if fail {
		return nil, errors.New("connection reset")
	}
	return []byte("source-bytes:" + url), nil
}

func passthroughTransform(src []byte, spec VariantSpec) ([]byte, error) {
	return append([]byte(spec.Name+":"), src...), nil
}

func newTestPipeline(t *testing.T, catalog []VariantSpec, fetcher Downloader, transform TransformFunc) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	p := NewPipeline(PipelineConfig{
		OutputDir:    dir,
		PublicPrefix: "/optimized",
		Extension:    "webp",
		BatchSize:    4,
	}, catalog, fetcher, eventbus.New(), nil)
	p.transform = transform
	return p, dir
}

func TestPipelineWritesVariantsAndMapping(t *testing.T) {
	catalog := []VariantSpec{
		{Name: "grid", Width: 300, Height: h(300), Quality: 35, Fit: FitCover},
		{Name: "large", Width: 1200, Quality: 70, Fit: FitScale},
	}
	p, dir := newTestPipeline(t, catalog, &stubDownloader{}, passthroughTransform)

	url := "https://example.com/a.jpg"
	mapping := Mapping{}
	summary, err := p.Run(context.Background(), []string{url}, mapping)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Processed != 1 || summary.Failed != 0 || summary.Variants != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	want := "/optimized/" + HashURL(url) + "-grid.webp"
	if got := mapping.Lookup(url, "grid"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if _, err := os.Stat(filepath.Join(dir, HashURL(url)+"-grid.webp")); err != nil {
		t.Fatalf("variant file missing: %v", err)
	}
}

func TestPipelineFetchFailureFallsBackAllVariants(t *testing.T) {
	catalog := SemanticCatalog()
	bad := "https://example.com/broken.jpg"
	good := "https://example.com/fine.jpg"
	fetcher := &stubDownloader{fail: map[string]bool{bad: true}}
	p, _ := newTestPipeline(t, catalog, fetcher, passthroughTransform)

	mapping := Mapping{}
	summary, err := p.Run(context.Background(), []string{bad, good}, mapping)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, spec := range catalog {
		if got := mapping.Lookup(bad, spec.Name); got != bad {
			t.Fatalf("failed source should map %s to itself, got %s", spec.Name, got)
		}
	}
	if got := mapping.Lookup(good, "thumb"); !strings.HasPrefix(got, "/optimized/") {
		t.Fatalf("healthy source in same batch should still process, got %s", got)
	}
	if summary.Processed != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestPipelineVariantFailureFallsBackAlone(t *testing.T) {
	catalog := []VariantSpec{
		{Name: "grid", Width: 300, Height: h(300), Quality: 35, Fit: FitCover},
		{Name: "hero", Width: 1600, Height: h(900), Quality: 75, Fit: FitCover},
	}
	transform := func(src []byte, spec VariantSpec) ([]byte, error) {
		if spec.Name == "hero" {
			return nil, errors.New("encode failed")
		}
		return passthroughTransform(src, spec)
	}
	p, _ := newTestPipeline(t, catalog, &stubDownloader{}, transform)

	url := "https://example.com/a.jpg"
	mapping := Mapping{}
	summary, err := p.Run(context.Background(), []string{url}, mapping)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := mapping.Lookup(url, "hero"); got != url {
		t.Fatalf("failed variant should fall back to source, got %s", got)
	}
	if got := mapping.Lookup(url, "grid"); got == url {
		t.Fatal("healthy variant should not fall back")
	}
	if summary.Processed != 1 || summary.Variants != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestPipelinePublishesProgress(t *testing.T) {
	catalog := []VariantSpec{{Name: "grid", Width: 300, Height: h(300), Quality: 35, Fit: FitCover}}
	p, _ := newTestPipeline(t, catalog, &stubDownloader{}, passthroughTransform)

	var mu sync.Mutex
	var done []eventbus.SourceProgress
	if err := p.bus.Subscribe(eventbus.TopicSourceDone, func(pr eventbus.SourceProgress) {
		mu.Lock()
		done = append(done, pr)
		mu.Unlock()
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	urls := []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}
	if _, err := p.Run(context.Background(), urls, Mapping{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(done) != 2 {
		t.Fatalf("expected 2 progress events, got %d", len(done))
	}
	for _, pr := range done {
		if pr.Total != 2 {
			t.Fatalf("unexpected total in progress event: %+v", pr)
		}
	}
}

func TestPipelineRerunProducesIdenticalKeys(t *testing.T) {
	catalog := []VariantSpec{{Name: "thumb", Width: 120, Height: h(120), Quality: 30, Fit: FitCover}}
	p, _ := newTestPipeline(t, catalog, &stubDownloader{}, passthroughTransform)

	url := "https://eu-west-2.graphassets.com/a/room.jpg"
	first := Mapping{}
	if _, err := p.Run(context.Background(), []string{url}, first); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second := Mapping{}
	if _, err := p.Run(context.Background(), []string{url}, second); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	want := "/optimized/" + HashURL(url) + "-thumb.webp"
	if first.Lookup(url, "thumb") != want || second.Lookup(url, "thumb") != want {
		t.Fatalf("runs disagree: %s vs %s", first.Lookup(url, "thumb"), second.Lookup(url, "thumb"))
	}
}

func TestPipelineEmptyRun(t *testing.T) {
	p, _ := newTestPipeline(t, DefaultCatalog(), &stubDownloader{}, passthroughTransform)
	summary, err := p.Run(context.Background(), nil, Mapping{})
	if err != nil {
		t.Fatalf("empty run should succeed: %v", err)
	}
	if summary.Total != 0 || summary.Processed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
