package image

// Fit selects how a source is reshaped into a variant's box.
type Fit int

const (
	// FitCover crops to fill the exact target box, centred.
	FitCover Fit = iota
	// FitScale resizes preserving aspect ratio; a nil Height means
	// width-constrained only.
	FitScale
)

// VariantSpec describes one derived rendition of a source image.
// Height may be nil for width-only scaling.
type VariantSpec struct {
	Name    string
	Width   int
	Height  *int
	Quality int
	Fit     Fit
}

func h(v int) *int { return &v }

// DefaultCatalog is the full set of renditions derived for every source
// during a site-wide optimization run. Order is fixed so mapping files
// stay diffable between runs.
func DefaultCatalog() []VariantSpec {
	return []VariantSpec{
		{Name: "placeholder", Width: 20, Height: h(20), Quality: 20, Fit: FitCover},
		{Name: "gallerythumbs", Width: 92, Height: h(92), Quality: 60, Fit: FitCover},
		{Name: "grid", Width: 300, Height: h(300), Quality: 35, Fit: FitCover},
		{Name: "thumb400", Width: 400, Height: h(400), Quality: 35, Fit: FitCover},
		{Name: "large", Width: 1200, Height: nil, Quality: 70, Fit: FitScale},
		{Name: "heroMobile", Width: 768, Height: h(432), Quality: 85, Fit: FitCover},
		{Name: "heroTablet", Width: 1024, Height: h(576), Quality: 80, Fit: FitCover},
		{Name: "heroDesktop", Width: 1600, Height: h(900), Quality: 75, Fit: FitCover},
		{Name: "hero4K", Width: 2560, Height: h(1440), Quality: 70, Fit: FitCover},
		{Name: "optimisedCard", Width: 600, Height: h(400), Quality: 60, Fit: FitCover},
		{Name: "optimisedWide", Width: 1200, Height: h(800), Quality: 60, Fit: FitCover},
		{Name: "optimisedPortrait", Width: 1000, Height: h(1000), Quality: 60, Fit: FitCover},
		{Name: "optimisedSquare", Width: 400, Height: h(400), Quality: 60, Fit: FitCover},
		{Name: "micro", Width: 40, Height: h(40), Quality: 25, Fit: FitCover},
		{Name: "optimised", Width: 120, Height: h(120), Quality: 35, Fit: FitCover},
		{Name: "optimisedLogo", Width: 80, Height: h(80), Quality: 70, Fit: FitCover},
	}
}

// SemanticCatalog is the slimmer, usage-named set for targeted runs where
// each image only needs the renditions its placement actually uses.
func SemanticCatalog() []VariantSpec {
	return []VariantSpec{
		{Name: "room-card", Width: 400, Height: h(300), Quality: 35, Fit: FitCover},
		{Name: "hero-desktop", Width: 1600, Height: h(900), Quality: 60, Fit: FitCover},
		{Name: "hero-mobile", Width: 768, Height: h(432), Quality: 50, Fit: FitCover},
		{Name: "hero-tablet", Width: 1024, Height: h(576), Quality: 55, Fit: FitCover},
		{Name: "thumb", Width: 120, Height: h(120), Quality: 30, Fit: FitCover},
		{Name: "gallery", Width: 300, Height: h(300), Quality: 40, Fit: FitCover},
		{Name: "service", Width: 350, Height: h(200), Quality: 40, Fit: FitCover},
		{Name: "subhero", Width: 500, Height: h(400), Quality: 45, Fit: FitCover},
		{Name: "logo", Width: 80, Height: h(80), Quality: 70, Fit: FitCover},
		{Name: "placeholder", Width: 20, Height: h(20), Quality: 10, Fit: FitCover},
	}
}

// CatalogByName returns the named catalog, defaulting to the full set.
func CatalogByName(name string) []VariantSpec {
	if name == "semantic" {
		return SemanticCatalog()
	}
	return DefaultCatalog()
}
