package content

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"limban-server-go/internal/platform/errors"
	"limban-server-go/internal/platform/logging"
)

// Querier runs one GraphQL document. *Client satisfies it.
type Querier interface {
	Query(ctx context.Context, query string, variables map[string]any, out any) error
}

// Service fetches page content from the CMS. Section failures degrade to
// empty sections rather than failing a whole page render.
type Service struct {
	cms    Querier
	logger *logging.Logger
	now    func() time.Time
}

func NewService(cms Querier, logger *logging.Logger) *Service {
	return &Service{cms: cms, logger: logger, now: time.Now}
}

func (s *Service) FetchRooms(ctx context.Context) ([]Room, error) {
	var out struct {
		Rooms []Room `json:"rooms"`
	}
	if err := s.cms.Query(ctx, queryRooms, nil, &out); err != nil {
		return nil, err
	}
	return out.Rooms, nil
}

func (s *Service) FetchRoomBySlug(ctx context.Context, slug string) (*Room, error) {
	var out struct {
		Room *Room `json:"room"`
	}
	if err := s.cms.Query(ctx, queryRoomBySlug, map[string]any{"slug": slug}, &out); err != nil {
		return nil, err
	}
	if out.Room == nil {
		return nil, errors.New(errors.KindContent, "cms.room", "room not found: "+slug)
	}
	return out.Room, nil
}

func (s *Service) FetchOutlets(ctx context.Context) ([]Outlet, error) {
	var out struct {
		Outlets []Outlet `json:"outlets"`
	}
	if err := s.cms.Query(ctx, queryOutlets, nil, &out); err != nil {
		return nil, err
	}
	return out.Outlets, nil
}

func (s *Service) FetchOutletBySlug(ctx context.Context, slug string) (*Outlet, error) {
	var out struct {
		Outlet *Outlet `json:"outlet"`
	}
	if err := s.cms.Query(ctx, queryOutletBySlug, map[string]any{"slug": slug}, &out); err != nil {
		return nil, err
	}
	if out.Outlet == nil {
		return nil, errors.New(errors.KindContent, "cms.outlet", "outlet not found: "+slug)
	}
	return out.Outlet, nil
}

func (s *Service) FetchExperiences(ctx context.Context) ([]Experience, error) {
	var out struct {
		Experiences []Experience `json:"experiences"`
	}
	if err := s.cms.Query(ctx, queryExperiences, nil, &out); err != nil {
		return nil, err
	}
	return out.Experiences, nil
}

func (s *Service) FetchTestimonials(ctx context.Context) ([]Testimonial, error) {
	var out struct {
		Testimonials []Testimonial `json:"testimonials"`
	}
	if err := s.cms.Query(ctx, queryTestimonials, nil, &out); err != nil {
		return nil, err
	}
	return out.Testimonials, nil
}

// FetchSlides returns the active hero slides in display order.
func (s *Service) FetchSlides(ctx context.Context) ([]Slide, error) {
	var out struct {
		Slides []Slide `json:"slides"`
	}
	if err := s.cms.Query(ctx, querySlides, nil, &out); err != nil {
		return nil, err
	}
	active := make([]Slide, 0, len(out.Slides))
	for _, slide := range out.Slides {
		if slide.Active {
			active = append(active, slide)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})
	return active, nil
}

func (s *Service) FetchSubHero(ctx context.Context) (ImageRef, error) {
	var out struct {
		SubHero struct {
			Image ImageRef `json:"image"`
		} `json:"subHero"`
	}
	if err := s.cms.Query(ctx, querySubHero, nil, &out); err != nil {
		return ImageRef{}, err
	}
	return out.SubHero.Image, nil
}

// FetchDeal returns the special offer only while its validity window is
// open; outside the window it is nil without error.
func (s *Service) FetchDeal(ctx context.Context) (*Deal, error) {
	var out struct {
		Deal *Deal `json:"deal"`
	}
	if err := s.cms.Query(ctx, queryDeal, nil, &out); err != nil {
		return nil, err
	}
	if out.Deal == nil || !dealActive(out.Deal, s.now()) {
		return nil, nil
	}
	return out.Deal, nil
}

func dealActive(d *Deal, now time.Time) bool {
	const layout = "2006-01-02"
	if d.ValidFrom != "" {
		from, err := time.Parse(layout, d.ValidFrom)
		if err != nil || now.Before(from) {
			return false
		}
	}
	if d.ValidUntil != "" {
		until, err := time.Parse(layout, d.ValidUntil)
		if err != nil || now.After(until.Add(24*time.Hour)) {
			return false
		}
	}
	return true
}

// FetchGallery returns the captioned gallery for one page (vibe, corporate,
// about).
func (s *Service) FetchGallery(ctx context.Context, page string) ([]GalleryItem, error) {
	var out struct {
		GalleryItems []GalleryItem `json:"galleryItems"`
	}
	if err := s.cms.Query(ctx, queryGallery, map[string]any{"page": page}, &out); err != nil {
		return nil, err
	}
	return out.GalleryItems, nil
}

// FetchHomepage gathers every landing page section concurrently. A failed
// section is logged and left empty; the page renders with what arrived.
func (s *Service) FetchHomepage(ctx context.Context) Homepage {
	var page Homepage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slides, err := s.FetchSlides(gctx)
		if err != nil {
			s.warn("slides", err)
			return nil
		}
		page.Slides = slides
		return nil
	})
	g.Go(func() error {
		sub, err := s.FetchSubHero(gctx)
		if err != nil {
			s.warn("subhero", err)
			return nil
		}
		page.SubHero = sub
		return nil
	})
	g.Go(func() error {
		deal, err := s.FetchDeal(gctx)
		if err != nil {
			s.warn("deal", err)
			return nil
		}
		page.Deal = deal
		return nil
	})
	g.Go(func() error {
		rooms, err := s.FetchRooms(gctx)
		if err != nil {
			s.warn("rooms", err)
			return nil
		}
		page.Rooms = rooms
		return nil
	})
	g.Go(func() error {
		outlets, err := s.FetchOutlets(gctx)
		if err != nil {
			s.warn("outlets", err)
			return nil
		}
		page.Outlets = outlets
		return nil
	})
	g.Go(func() error {
		experiences, err := s.FetchExperiences(gctx)
		if err != nil {
			s.warn("experiences", err)
			return nil
		}
		page.Experiences = experiences
		return nil
	})
	g.Go(func() error {
		testimonials, err := s.FetchTestimonials(gctx)
		if err != nil {
			s.warn("testimonials", err)
			return nil
		}
		page.Testimonials = testimonials
		return nil
	})

	g.Wait()
	return page
}

func (s *Service) warn(section string, err error) {
	if s.logger != nil {
		s.logger.Warn("[CMS] %s section failed: %v", section, err)
	}
}
