package snapshot

import (
	"fmt"

	"github.com/pvolkov/koiscope/internal/catalog"
	"github.com/pvolkov/koiscope/internal/model"
	"github.com/pvolkov/koiscope/internal/starmap"
	"github.com/pvolkov/koiscope/internal/stats"
)

// Snapshot is the immutable result of one catalog load: both pipeline outputs
// plus the aggregate statistics, built in a single pass over the parsed rows.
// A load either completes and publishes a whole snapshot or fails without
// publishing anything; nothing mutates a snapshot afterwards, so every derived
// view downstream is a pure function over it.
type Snapshot struct {
	Records []model.CatalogRecord
	Summary model.SummaryStatistics

	Stars  []model.Star
	Bounds *model.BoundingBox // nil when the star map came out empty

	Drops model.DropCounts
}

// Build runs the full ingestion pipeline over raw catalog text: sanitize,
// parse, build typed records, aggregate stars, summarize. Both pipelines
// consume the same parsed table, so the file is read and parsed exactly once.
// Building the same text twice yields structurally equal snapshots.
func Build(raw string) (*Snapshot, error) {
	sanitized, err := catalog.Sanitize(raw)
	if err != nil {
		return nil, err
	}

	table, err := catalog.Parse(sanitized)
	if err != nil {
		return nil, err
	}

	loaded := catalog.BuildRecords(table)
	if len(loaded.Records) == 0 {
		return nil, fmt.Errorf("%w: every row lacked a KOI designation", catalog.ErrMalformedInput)
	}

	grouped := starmap.Aggregate(table)

	snap := &Snapshot{
		Records: loaded.Records,
		Summary: stats.Summarize(loaded.Records),
		Stars:   grouped.Stars,
		Drops: model.DropCounts{
			MissingIdentifier:  loaded.MissingIdentifier,
			MissingStarID:      grouped.MissingStarID,
			MissingCoordinates: grouped.MissingCoordinates,
		},
	}

	if box, ok := starmap.Bounds(grouped.Stars); ok {
		snap.Bounds = &box
	}

	return snap, nil
}

// StarMap returns the plottable star-map payload for this snapshot
func (s *Snapshot) StarMap() model.StarMap {
	return model.StarMap{Stars: s.Stars, Bounds: s.Bounds}
}

// Featured returns the top n records by confidence score as derived views
func (s *Snapshot) Featured(n int) []model.DerivedPlanetView {
	return stats.Featured(s.Records, n)
}
