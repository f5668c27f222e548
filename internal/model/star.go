package model

// Star is one host star on the star map, merged from every catalog row that
// shares its identifier. Physical fields are always plottable: rows missing
// magnitude, temperature, or radius get fixed fallback constants at build time,
// unlike CatalogRecord where absent values stay nil.
type Star struct {
	StarID string  `json:"star_id"` // Host star identifier (kepid)
	RA     float64 `json:"ra_deg"`  // Right ascension, degrees [0,360)
	Dec    float64 `json:"dec_deg"` // Declination, degrees [-90,90]

	Magnitude float64 `json:"magnitude"` // Kepler-band brightness proxy
	Teff      float64 `json:"teff_k"`    // Effective temperature
	Radius    float64 `json:"radius_rs"` // Solar radii

	// KeplerObjects maps KOI designation to disposition for every object
	// observed around this star.
	KeplerObjects map[string]Disposition `json:"kepler_objects"`
}

// BoundingBox is the spatial extent of a star list, used to normalize plot
// coordinates. A degenerate axis (min == max) is possible for single-star
// input; consumers substitute a unit range before dividing by the span.
type BoundingBox struct {
	MinRA  float64 `json:"min_ra"`
	MaxRA  float64 `json:"max_ra"`
	MinDec float64 `json:"min_dec"`
	MaxDec float64 `json:"max_dec"`
}

// RASpan returns the right ascension extent of the box
func (b BoundingBox) RASpan() float64 { return b.MaxRA - b.MinRA }

// DecSpan returns the declination extent of the box
func (b BoundingBox) DecSpan() float64 { return b.MaxDec - b.MinDec }

// StarMap is the complete star-map payload rendered for spatial plotting
type StarMap struct {
	Stars  []Star       `json:"stars"`
	Bounds *BoundingBox `json:"bounds,omitempty"` // nil when the map is empty
}
