package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"limban-server-go/internal/platform/logging"
	"limban-server-go/internal/platform/storage"
)

// Filter carries the free-text term and optional date window of a search.
// The date range only applies when both ends are present, matching the
// behaviour of the admin search form.
type Filter struct {
	Term     string
	DateFrom string
	DateTo   string
}

// Empty reports whether the filter would match everything; such searches are
// answered without touching the database.
func (f Filter) Empty() bool {
	return f.Term == "" && (f.DateFrom == "" || f.DateTo == "")
}

// Result is the fixed-shape envelope returned to the admin search page.
// Slices are always non-nil so the JSON form carries empty arrays, not null.
type Result struct {
	Rooms     []storage.ContactSubmission `json:"rooms"`
	Dining    []storage.DiningSubmission  `json:"dining"`
	General   []storage.GeneralEnquiry    `json:"general"`
	Corporate []storage.CorporateEnquiry  `json:"corporate"`
}

// EmptyResult returns a Result with all four arrays present and empty.
func EmptyResult() Result {
	return Result{
		Rooms:     make([]storage.ContactSubmission, 0),
		Dining:    make([]storage.DiningSubmission, 0),
		General:   make([]storage.GeneralEnquiry, 0),
		Corporate: make([]storage.CorporateEnquiry, 0),
	}
}

// Repository fans a filter out to the four enquiry tables.
type Repository interface {
	SearchContacts(ctx context.Context, term, from, to string) ([]storage.ContactSubmission, error)
	SearchDining(ctx context.Context, term, from, to string) ([]storage.DiningSubmission, error)
	SearchGeneral(ctx context.Context, term, from, to string) ([]storage.GeneralEnquiry, error)
	SearchCorporate(ctx context.Context, term, from, to string) ([]storage.CorporateEnquiry, error)
}

// Service answers admin searches across all enquiry tables.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

func NewService(repo Repository, logger *logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search runs the four table queries concurrently and joins the results.
// An empty filter short-circuits to an empty envelope without any query.
// On error the returned envelope is still fully populated with empty arrays
// so callers can serialize it verbatim.
func (s *Service) Search(ctx context.Context, f Filter) (Result, error) {
	result := EmptyResult()
	if f.Empty() {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.repo.SearchContacts(gctx, f.Term, f.DateFrom, f.DateTo)
		if err == nil {
			result.Rooms = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.SearchDining(gctx, f.Term, f.DateFrom, f.DateTo)
		if err == nil {
			result.Dining = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.SearchGeneral(gctx, f.Term, f.DateFrom, f.DateTo)
		if err == nil {
			result.General = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.SearchCorporate(gctx, f.Term, f.DateFrom, f.DateTo)
		if err == nil {
			result.Corporate = rows
		}
		return err
	})

	if err := g.Wait(); err != nil {
		if s.logger != nil {
			s.logger.Error("[Search] query failed: %v", err)
		}
		return EmptyResult(), err
	}
	return result, nil
}
