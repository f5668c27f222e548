package model

import "time"

// CatalogReport is the complete analysis report for one catalog load
type CatalogReport struct {
	Source   string     `json:"source"`               // Path or URL that was loaded
	Subject  string     `json:"subject"`              // Human-readable catalog name
	LoadedAt time.Time  `json:"loaded_at"`            // When the load occurred
	Fetch    *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata, nil for local files

	Summary  SummaryStatistics   `json:"summary"`
	Featured []DerivedPlanetView `json:"featured"` // Top records by confidence score
	Drops    DropCounts          `json:"drops"`

	StarCount int          `json:"star_count"`
	Bounds    *BoundingBox `json:"bounds,omitempty"`
}

// FetchMeta contains HTTP metadata from fetching the catalog blob
type FetchMeta struct {
	StatusCode   int    `json:"status_code"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
	FromCache    bool   `json:"from_cache,omitempty"`
}

// DispositionCount is one entry of the disposition summary. Entries are ordered
// by descending count with ties broken by first-encountered order, and the label
// domain is exactly the labels observed in the loaded catalog.
type DispositionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SummaryStatistics is the scalar aggregate snapshot over one loaded catalog.
// Median and mean are nil when no usable values existed; they are never zeroed.
type SummaryStatistics struct {
	TotalRecords   int                `json:"total_records"`
	Confirmed      int                `json:"confirmed"`
	Candidates     int                `json:"candidates"`
	FalsePositives int                `json:"false_positives"`
	Dispositions   []DispositionCount `json:"dispositions"`

	MedianPlanetRadius  *float64 `json:"median_planet_radius_re,omitempty"`
	MeanBrightnessIndex *float64 `json:"mean_brightness_index,omitempty"`

	// TemperateSmallWorlds counts records with radius <= 2 Earth radii AND
	// equilibrium temperature in [180,320] K, both present on the same record.
	TemperateSmallWorlds int `json:"temperate_small_worlds"`
}

// DropCounts surfaces how many source rows each pipeline excluded, for
// data-quality diagnostics. Dropped rows are never an error by themselves.
type DropCounts struct {
	MissingIdentifier  int `json:"missing_identifier"`  // Rows without a KOI designation (catalog path)
	MissingStarID      int `json:"missing_star_id"`     // Rows without a host star identifier (star path)
	MissingCoordinates int `json:"missing_coordinates"` // Rows without plottable RA/Dec (star path)
}
