package content

import (
	"encoding/json"
)

// RefShape records which wire shape an image reference arrived in.
type RefShape int

const (
	RefUnknown RefShape = iota
	// RefDirect is a bare asset: {"url": "...", "caption": "..."}.
	RefDirect
	// RefNested wraps the asset: {"image": {"url": "..."}, "altText": "..."}.
	RefNested
)

// ImageRef is a CMS image reference, normalized at the decode boundary so
// the rest of the code never inspects wire shapes.
type ImageRef struct {
	URL       string
	Caption   string
	CustomAlt string
	Shape     RefShape
}

type directRef struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	AltText string `json:"altText"`
}

type nestedRef struct {
	Image   *directRef `json:"image"`
	Caption string     `json:"caption"`
	AltText string     `json:"altText"`
}

// UnmarshalJSON accepts both wire shapes the CMS emits.
func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var nested nestedRef
	if err := json.Unmarshal(data, &nested); err == nil && nested.Image != nil {
		r.URL = nested.Image.URL
		r.Caption = firstNonEmpty(nested.Caption, nested.Image.Caption)
		r.CustomAlt = firstNonEmpty(nested.AltText, nested.Image.AltText)
		r.Shape = RefNested
		return nil
	}

	var direct directRef
	if err := json.Unmarshal(data, &direct); err != nil {
		return err
	}
	r.URL = direct.URL
	r.Caption = direct.Caption
	r.CustomAlt = direct.AltText
	if r.URL != "" {
		r.Shape = RefDirect
	} else {
		r.Shape = RefUnknown
	}
	return nil
}

// MarshalJSON always emits the direct shape regardless of how the reference
// arrived.
func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(directRef{URL: r.URL, Caption: r.Caption, AltText: r.CustomAlt})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// ResolveImageRef classifies one decoded gallery item without going through
// JSON decoding, for content that arrives as map[string]any.
func ResolveImageRef(item map[string]any) ImageRef {
	caption, _ := item["caption"].(string)
	alt, _ := item["altText"].(string)

	if url, ok := item["url"].(string); ok && url != "" {
		return ImageRef{URL: url, Caption: caption, CustomAlt: alt, Shape: RefDirect}
	}
	if img, ok := item["image"].(map[string]any); ok {
		if url, ok := img["url"].(string); ok && url != "" {
			nestedCaption, _ := img["caption"].(string)
			return ImageRef{
				URL:       url,
				Caption:   firstNonEmpty(caption, nestedCaption),
				CustomAlt: alt,
				Shape:     RefNested,
			}
		}
	}
	return ImageRef{Shape: RefUnknown}
}

// Room is one accommodation unit.
type Room struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	BasePrice   float64    `json:"basePrice"`
	MaxGuests   int        `json:"maxGuests"`
	Images      []ImageRef `json:"images"`
}

// Outlet is a dining venue.
type Outlet struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Images      []ImageRef `json:"images"`
}

// Experience is a bookable activity shown on the wildlife and vibe pages.
type Experience struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       ImageRef `json:"image"`
}

// Testimonial is a curated guest quote.
type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// Slide is a hero carousel entry. Only active slides render, ordered by
// displayOrder.
type Slide struct {
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	DisplayOrder int      `json:"displayOrder"`
	Active       bool     `json:"active"`
	Image        ImageRef `json:"image"`
}

// Deal is a time-boxed special offer; dates are yyyy-mm-dd.
type Deal struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ValidFrom   string   `json:"validFrom"`
	ValidUntil  string   `json:"validUntil"`
	Image       ImageRef `json:"image"`
}

// GalleryItem is one captioned image in a page gallery (vibe, corporate,
// about).
type GalleryItem struct {
	Caption string   `json:"caption"`
	Image   ImageRef `json:"image"`
}

// Homepage aggregates everything the landing page renders.
type Homepage struct {
	Slides       []Slide       `json:"slides"`
	SubHero      ImageRef      `json:"subHero"`
	Deal         *Deal         `json:"deal"`
	Rooms        []Room        `json:"rooms"`
	Outlets      []Outlet      `json:"outlets"`
	Experiences  []Experience  `json:"experiences"`
	Testimonials []Testimonial `json:"testimonials"`
}
