package review

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/logging"
	"limban-server-go/internal/platform/storage"
)

const defaultPageSize = 9

// Repository persists and lists guest reviews.
type Repository interface {
	ListPublished(ctx context.Context, offset, limit int) ([]storage.Review, error)
	Upsert(ctx context.Context, reviews []storage.Review) (int, error)
}

// Service handles the public review feed and the scrape-import webhook.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

func NewService(repo Repository, logger *logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListMore returns the next page of displayable reviews. Only reviews with
// rating >= 4 and non-empty text are published on the site.
func (s *Service) ListMore(ctx context.Context, offset, limit int) ([]storage.Review, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	reviews, err := s.repo.ListPublished(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = make([]storage.Review, 0)
	}
	return reviews, nil
}

// Import ingests a JSON array of scraped reviews. Items are classified by
// their id fields: TripAdvisor items carry "id" and a tripadvisor URL,
// Google items carry "reviewId". Unrecognized items are skipped. Duplicate
// source ids are ignored on conflict so re-delivered webhooks stay idempotent.
func (s *Service) Import(ctx context.Context, payload []byte) (int, error) {
	var items []map[string]any
	if err := sonic.Unmarshal(payload, &items); err != nil {
		return 0, errors.Wrap(errors.KindContent, "review.import", "invalid review payload", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	batch := uuid.NewString()
	reviews := make([]storage.Review, 0, len(items))
	for _, item := range items {
		if rec, ok := transformItem(item, batch); ok {
			reviews = append(reviews, rec)
		}
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	count, err := s.repo.Upsert(ctx, reviews)
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.Info("[HTTP] imported %d/%d reviews (batch %s)", count, len(items), batch)
	}
	return count, nil
}

func transformItem(item map[string]any, batch string) (storage.Review, bool) {
	url := str(item["url"])
	switch {
	case str(item["id"]) != "" && strings.Contains(url, "tripadvisor"):
		user, _ := item["user"].(map[string]any)
		rec := storage.Review{
			Source:        "tripadvisor",
			SourceID:      "tripadvisor:" + str(item["id"]),
			ReviewerName:  str(user["name"]),
			Rating:        num(item["rating"]),
			ReviewTitle:   str(item["title"]),
			ReviewText:    optStr(item["text"]),
			ReviewURL:     url,
			PublishedDate: parseDate(str(item["publishedDate"])),
			ImportBatch:   batch,
		}
		if loc, ok := user["userLocation"].(map[string]any); ok {
			rec.ReviewerLocation = str(loc["name"])
		}
		rec.Raw, _ = sonic.Marshal(item)
		return rec, true
	case str(item["reviewId"]) != "":
		rec := storage.Review{
			Source:           "google",
			SourceID:         "google:" + str(item["reviewId"]),
			ReviewerName:     str(item["name"]),
			ReviewerLocation: str(item["location"]),
			Rating:           num(item["rating"]),
			ReviewText:       optStr(item["text"]),
			ReviewURL:        str(item["link"]),
			PublishedDate:    parseDate(str(item["date"])),
			ImportBatch:      batch,
		}
		rec.Raw, _ = sonic.Marshal(item)
		return rec, true
	}
	return storage.Review{}, false
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func optStr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func num(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "January 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
