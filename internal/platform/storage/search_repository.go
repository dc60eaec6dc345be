package storage

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"limban-server-go/internal/platform/errors"
)

const searchLimit = 100

// SearchRepository fans free-text queries out to the enquiry tables.
type SearchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// termScope ORs a case-insensitive LIKE across the given columns.
func termScope(term string, columns []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		parts := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			parts[i] = fmt.Sprintf("%s LIKE ?", col)
			args[i] = "%" + term + "%"
		}
		return db.Where(strings.Join(parts, " OR "), args...)
	}
}

// dateScope restricts to a closed window on the table's timestamp column.
// Half-open input (only one bound) is ignored, like the original form.
func dateScope(column, from, to string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from == "" || to == "" {
			return db
		}
		return db.Where(column+" >= ? AND "+column+" <= ?", from, to)
	}
}

func (r *SearchRepository) SearchContacts(ctx context.Context, term, from, to string) ([]ContactSubmission, error) {
	rows := make([]ContactSubmission, 0)
	err := r.db.WithContext(ctx).
		Scopes(
			termScope(term, []string{"firstName", "lastName", "email", "phone", "roomName", "message"}),
			dateScope("created_at", from, to),
		).
		Order("created_at DESC").
		Limit(searchLimit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "search.contacts", "failed to search contact submissions", err)
	}
	return rows, nil
}

func (r *SearchRepository) SearchDining(ctx context.Context, term, from, to string) ([]DiningSubmission, error) {
	rows := make([]DiningSubmission, 0)
	err := r.db.WithContext(ctx).
		Scopes(
			termScope(term, []string{"first_name", "last_name", "email", "phone", "outletname", "message"}),
			dateScope("created_at", from, to),
		).
		Order("created_at DESC").
		Limit(searchLimit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "search.dining", "failed to search dining submissions", err)
	}
	return rows, nil
}

func (r *SearchRepository) SearchGeneral(ctx context.Context, term, from, to string) ([]GeneralEnquiry, error) {
	rows := make([]GeneralEnquiry, 0)
	err := r.db.WithContext(ctx).
		Scopes(
			termScope(term, []string{"first_name", "last_name", "email", "phone", "enquiry_type", "message"}),
			dateScope("created_at", from, to),
		).
		Order("created_at DESC").
		Limit(searchLimit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "search.general", "failed to search general enquiries", err)
	}
	return rows, nil
}

func (r *SearchRepository) SearchCorporate(ctx context.Context, term, from, to string) ([]CorporateEnquiry, error) {
	rows := make([]CorporateEnquiry, 0)
	err := r.db.WithContext(ctx).
		Scopes(
			termScope(term, []string{"contact_name", "company_name", "email", "phone", "event_type", "message"}),
			dateScope("submitted_at", from, to),
		).
		Order("submitted_at DESC").
		Limit(searchLimit).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "search.corporate", "failed to search corporate enquiries", err)
	}
	return rows, nil
}
