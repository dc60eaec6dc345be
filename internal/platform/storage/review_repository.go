package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"limban-server-go/internal/platform/errors"
)

// ReviewRepository stores scraped guest reviews.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListPublished returns displayable reviews ordered newest first.
func (r *ReviewRepository) ListPublished(ctx context.Context, offset, limit int) ([]Review, error) {
	rows := make([]Review, 0)
	err := r.db.WithContext(ctx).
		Where("rating >= ?", 4).
		Where("review_text IS NOT NULL").
		Order("published_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "review.list", "failed to list reviews", err)
	}
	return rows, nil
}

// Upsert inserts reviews, silently skipping source ids already present.
func (r *ReviewRepository) Upsert(ctx context.Context, reviews []Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}},
			DoNothing: true,
		}).
		Create(&reviews)
	if tx.Error != nil {
		return 0, errors.Wrap(errors.KindStorage, "review.upsert", "failed to upsert reviews", tx.Error)
	}
	return int(tx.RowsAffected), nil
}
