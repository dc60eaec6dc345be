package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"limban-server-go/internal/domain/content"
	"limban-server-go/internal/domain/image"
	"limban-server-go/internal/domain/image/cache"
	"limban-server-go/internal/domain/search"
	"limban-server-go/internal/platform/config"
	platformerrors "limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/storage"
)

type stubSearcher struct {
	calls int
	err   error
}

func (s *stubSearcher) Search(_ context.Context, f search.Filter) (search.Result, error) {
	result := search.EmptyResult()
	if f.Empty() {
		return result, nil
	}
	s.calls++
	if s.err != nil {
		return result, s.err
	}
	result.Rooms = append(result.Rooms, storage.ContactSubmission{FirstName: "Asha"})
	return result, nil
}

type stubReviewer struct {
	reviews   []storage.Review
	listErr   error
	importErr error
	imported  int
}

func (s *stubReviewer) ListMore(_ context.Context, offset, limit int) ([]storage.Review, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.reviews) {
		return []storage.Review{}, nil
	}
	end := offset + limit
	if end > len(s.reviews) {
		end = len(s.reviews)
	}
	return s.reviews[offset:end], nil
}

func (s *stubReviewer) Import(_ context.Context, _ []byte) (int, error) {
	if s.importErr != nil {
		return 0, s.importErr
	}
	return s.imported, nil
}

func newTestRouter(t *testing.T, searcher Searcher, reviewer Reviewer) *Router {
	t.Helper()
	return newTestRouterOpts(t, Options{Search: searcher, Reviews: reviewer})
}

func newTestRouterOpts(t *testing.T, opts Options) *Router {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Pipeline.OutputDir = t.TempDir()
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "secret"
	opts.Config = cfg

	r, err := Build(opts)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return r
}

func newTestImageService(m image.Mapping) *image.Service {
	return image.NewService(m, cache.NewMemory(cache.Config{Capacity: 16}), "webp", nil)
}

type stubContent struct {
	page       content.Homepage
	gallery    []content.GalleryItem
	galleryErr error
}

func (s *stubContent) FetchHomepage(_ context.Context) content.Homepage { return s.page }

func (s *stubContent) FetchGallery(_ context.Context, _ string) ([]content.GalleryItem, error) {
	return s.gallery, s.galleryErr
}

func do(r *Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.Engine.ServeHTTP(w, req)
	return w
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	searcher := &stubSearcher{}
	r := newTestRouter(t, searcher, nil)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/search", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if searcher.calls != 0 {
		t.Fatal("empty query should not reach the repository")
	}

	var result search.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if result.Rooms == nil || result.Dining == nil || result.General == nil || result.Corporate == nil {
		t.Fatalf("all arrays must be present and empty: %s", w.Body.String())
	}
	if len(result.Rooms) != 0 {
		t.Fatalf("expected empty rooms, got %d", len(result.Rooms))
	}
}

func TestSearchWithTerm(t *testing.T) {
	r := newTestRouter(t, &stubSearcher{}, nil)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/search?query=asha", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result search.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(result.Rooms) != 1 || result.Rooms[0].FirstName != "Asha" {
		t.Fatalf("unexpected result: %s", w.Body.String())
	}
}

func TestSearchErrorStillReturnsEnvelope(t *testing.T) {
	r := newTestRouter(t, &stubSearcher{err: errors.New("db gone")}, nil)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/search?query=x", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var result search.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("error body must still be the envelope: %v", err)
	}
	if result.Rooms == nil {
		t.Fatal("error body must carry empty arrays")
	}
}

func TestLoadMoreReviews(t *testing.T) {
	text := "lovely stay"
	reviewer := &stubReviewer{reviews: []storage.Review{
		{Rating: 5, ReviewText: &text},
		{Rating: 4, ReviewText: &text},
		{Rating: 5, ReviewText: &text},
	}}
	r := newTestRouter(t, nil, reviewer)

	body := bytes.NewBufferString(`{"offset": 0, "limit": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/more", body)
	req.Header.Set("Content-Type", "application/json")

	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	data := resp.Data.(map[string]any)
	if data["hasMore"] != true {
		t.Fatalf("expected hasMore=true, got %v", data["hasMore"])
	}
	if len(data["reviews"].([]any)) != 2 {
		t.Fatalf("expected 2 reviews, got %v", data["reviews"])
	}
}

func TestImportReviews(t *testing.T) {
	reviewer := &stubReviewer{imported: 3}
	r := newTestRouter(t, nil, reviewer)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/import", strings.NewReader(`[]`))
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp APIResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.(map[string]any)["imported"] != float64(3) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestImportReviewsBadPayload(t *testing.T) {
	reviewer := &stubReviewer{importErr: platformerrors.New(platformerrors.KindContent, "review.import", "bad json")}
	r := newTestRouter(t, nil, reviewer)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/import", strings.NewReader(`not json`))
	w := do(r, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestResolveImageVariant(t *testing.T) {
	src := "https://eu-west-2.graphassets.com/a/room.jpg"
	m := image.Mapping{}
	m.Set(src, "grid", "/optimized/abc123-grid.webp")
	r := newTestRouterOpts(t, Options{Images: newTestImageService(m)})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/images/resolve?variant=grid&url="+url.QueryEscape(src), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got := resp.Data.(map[string]any)["src"]; got != "/optimized/abc123-grid.webp" {
		t.Fatalf("unexpected resolved path: %v", got)
	}
}

func TestResolveImageFallsBackToSource(t *testing.T) {
	src := "https://eu-west-2.graphassets.com/a/unprocessed.jpg"
	r := newTestRouterOpts(t, Options{Images: newTestImageService(image.Mapping{})})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/images/resolve?url="+url.QueryEscape(src), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got := resp.Data.(map[string]any)["src"]; got != src {
		t.Fatalf("unprocessed source must resolve to itself, got %v", got)
	}
}

func TestResolveImageRejectsBadRequests(t *testing.T) {
	r := newTestRouterOpts(t, Options{Images: newTestImageService(image.Mapping{})})

	if w := do(r, httptest.NewRequest(http.MethodGet, "/api/images/resolve", nil)); w.Code != http.StatusBadRequest {
		t.Fatalf("missing url should be 400, got %d", w.Code)
	}
	if w := do(r, httptest.NewRequest(http.MethodGet, "/api/images/resolve?url=u&variant=nope", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("unknown variant should be 404, got %d", w.Code)
	}
}

func TestAdminMetricsRoute(t *testing.T) {
	src := "https://eu-west-2.graphassets.com/a/room.jpg"
	m := image.Mapping{}
	m.Set(src, "grid", "/optimized/abc123-grid.webp")
	r := newTestRouterOpts(t, Options{Images: newTestImageService(m)})

	do(r, httptest.NewRequest(http.MethodGet, "/api/images/resolve?variant=grid&url="+url.QueryEscape(src), nil))

	if w := do(r, httptest.NewRequest(http.MethodGet, "/nabmil/metrics", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("metrics must sit behind the admin guard, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/nabmil/metrics", nil)
	req.SetBasicAuth("admin", "secret")
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got := resp.Data.(map[string]any)["processed"]; got != float64(1) {
		t.Fatalf("expected one processed lookup, got %v", got)
	}
}

func TestHomepageContentSubstitutesAssets(t *testing.T) {
	src := "https://eu-west-2.graphassets.com/a/sub.jpg"
	m := image.Mapping{}
	m.Set(src, "optimisedCard", "/optimized/def456-optimisedCard.webp")
	provider := &stubContent{page: content.Homepage{SubHero: content.ImageRef{URL: src}}}
	r := newTestRouterOpts(t, Options{Images: newTestImageService(m), Content: provider})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/content/homepage", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "/optimized/def456-optimisedCard.webp") {
		t.Fatalf("processed asset must be substituted: %s", body)
	}
	if strings.Contains(body, src) {
		t.Fatalf("source url must not leak through: %s", body)
	}
}

func TestGalleryContentRoute(t *testing.T) {
	src := "https://eu-west-2.graphassets.com/a/bonfire.jpg"
	m := image.Mapping{}
	m.Set(src, "grid", "/optimized/aaa111-grid.webp")
	provider := &stubContent{gallery: []content.GalleryItem{{Image: content.ImageRef{URL: src}}}}
	r := newTestRouterOpts(t, Options{Images: newTestImageService(m), Content: provider})

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/content/gallery/vibe?variant=grid", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	images := resp.Data.(map[string]any)["images"].([]any)
	first := images[0].(map[string]any)
	if first["url"] != "/optimized/aaa111-grid.webp" {
		t.Fatalf("gallery image must resolve to its rendition: %v", first["url"])
	}
	if first["alt"] != "Limban premium resort experience view 1" {
		t.Fatalf("unexpected synthesized alt: %v", first["alt"])
	}
}

func TestGalleryContentRouteError(t *testing.T) {
	provider := &stubContent{galleryErr: errors.New("cms down")}
	r := newTestRouterOpts(t, Options{Images: newTestImageService(image.Mapping{}), Content: provider})

	if w := do(r, httptest.NewRequest(http.MethodGet, "/api/content/gallery/vibe", nil)); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestAdminPathsRequireBasicAuth(t *testing.T) {
	r := newTestRouter(t, nil, nil)

	w := do(r, httptest.NewRequest(http.MethodGet, "/nabmil/search", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Basic") {
		t.Fatalf("missing challenge header, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/nabmil/search", nil)
	req.SetBasicAuth("admin", "secret")
	w = do(r, req)
	if w.Code == http.StatusUnauthorized {
		t.Fatal("valid credentials should pass the guard")
	}

	req = httptest.NewRequest(http.MethodGet, "/nabmil/search", nil)
	req.SetBasicAuth("admin", "wrong")
	if w := do(r, req); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password should be rejected, got %d", w.Code)
	}
}

func TestPublicPathsSkipBasicAuth(t *testing.T) {
	r := newTestRouter(t, nil, nil)
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
