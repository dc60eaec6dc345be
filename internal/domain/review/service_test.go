package review

import (
	"context"
	"testing"

	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/storage"
)

type fakeRepo struct {
	upserted []storage.Review
	listed   []storage.Review
	offset   int
	limit    int
}

func (f *fakeRepo) ListPublished(_ context.Context, offset, limit int) ([]storage.Review, error) {
	f.offset, f.limit = offset, limit
	return f.listed, nil
}

func (f *fakeRepo) Upsert(_ context.Context, reviews []storage.Review) (int, error) {
	f.upserted = reviews
	return len(reviews), nil
}

func TestListMoreDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	reviews, err := svc.ListMore(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.offset != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d", repo.offset)
	}
	if repo.limit != defaultPageSize {
		t.Fatalf("zero limit should default to %d, got %d", defaultPageSize, repo.limit)
	}
	if reviews == nil {
		t.Fatal("nil repo result should become empty slice")
	}
}

func TestImportTripAdvisorItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	payload := `[{
		"id": "987",
		"url": "https://www.tripadvisor.com/ShowUserReviews-987",
		"title": "Unforgettable",
		"text": "Best safari lodge we have stayed at.",
		"rating": 5,
		"publishedDate": "2026-03-14",
		"user": {"name": "Priya", "userLocation": {"name": "Mumbai"}}
	}]`

	count, err := svc.Import(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if count != 1 || len(repo.upserted) != 1 {
		t.Fatalf("expected 1 upserted review, got %d", count)
	}

	rec := repo.upserted[0]
	if rec.Source != "tripadvisor" || rec.SourceID != "tripadvisor:987" {
		t.Fatalf("unexpected source fields: %+v", rec)
	}
	if rec.ReviewerName != "Priya" || rec.ReviewerLocation != "Mumbai" {
		t.Fatalf("unexpected reviewer fields: %+v", rec)
	}
	if rec.Rating != 5 || rec.ReviewText == nil {
		t.Fatalf("unexpected review body: %+v", rec)
	}
	if rec.ImportBatch == "" {
		t.Fatal("import batch id missing")
	}
}

func TestImportGoogleItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	payload := `[{
		"reviewId": "g-123",
		"name": "Rohan",
		"rating": 4,
		"text": "Lovely rooms and food.",
		"date": "2026-02-01",
		"link": "https://maps.google.com/review/g-123"
	}]`

	count, err := svc.Import(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported, got %d", count)
	}
	rec := repo.upserted[0]
	if rec.Source != "google" || rec.SourceID != "google:g-123" {
		t.Fatalf("unexpected source fields: %+v", rec)
	}
}

func TestImportSkipsUnrecognizedItems(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	payload := `[{"something": "else"}, {"reviewId": "g-1", "name": "A", "rating": 5}]`
	count, err := svc.Import(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the recognized item, got %d", count)
	}
}

func TestImportInvalidPayload(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	_, err := svc.Import(context.Background(), []byte(`not json`))
	if err == nil {
		t.Fatal("expected error for invalid payload")
	}
	if !errors.IsKind(err, errors.KindContent) {
		t.Fatalf("expected content error, got %v", err)
	}
}

func TestImportEmptyArray(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)
	count, err := svc.Import(context.Background(), []byte(`[]`))
	if err != nil || count != 0 {
		t.Fatalf("empty array should be a no-op, got count=%d err=%v", count, err)
	}
	if repo.upserted != nil {
		t.Fatal("no upsert should happen for an empty array")
	}
}
