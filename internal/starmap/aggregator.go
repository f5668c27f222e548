package starmap

import (
	"strings"

	"github.com/pvolkov/koiscope/internal/catalog"
	"github.com/pvolkov/koiscope/internal/model"
)

// Fallback constants applied when a star-level field fails coercion. The star
// map needs a plottable value for every star, so unlike the catalog path these
// fields are never nil — the asymmetry is deliberate and keeps fabricated
// values out of the statistics while keeping every star on the plot.
const (
	FallbackMagnitude = 20.0
	FallbackTeffK     = 5500.0
	FallbackRadiusRS  = 1.0
)

// Result holds the deduplicated star list plus row-level drop diagnostics
type Result struct {
	Stars              []model.Star
	MissingStarID      int // Rows dropped for lacking a host star identifier
	MissingCoordinates int // Rows dropped for unparseable RA or Dec
}

// Aggregate merges catalog rows into one Star per distinct host star
// identifier. The first row encountered for a star sets its position and
// physical fields; every row, first or later, upserts the star's
// keplerObjects entry for its KOI designation. Output preserves
// first-appearance insertion order.
//
// A row without a coercible RA and Dec is dropped: a star cannot be plotted
// without coordinates. The catalog path has no such requirement.
func Aggregate(table *catalog.Table) Result {
	var result Result
	index := make(map[string]int)

	for _, row := range table.Rows {
		id := strings.TrimSpace(row[catalog.ColStarID])
		if id == "" {
			result.MissingStarID++
			continue
		}

		ra := catalog.CoerceNumber(row[catalog.ColRA])
		dec := catalog.CoerceNumber(row[catalog.ColDec])
		if ra == nil || dec == nil {
			result.MissingCoordinates++
			continue
		}

		designation := strings.TrimSpace(row[catalog.ColDesignation])
		disposition := model.ParseDisposition(row[catalog.ColDisposition])

		if at, seen := index[id]; seen {
			// Later rows only extend the object collection; physical
			// fields stay first-wins.
			if designation != "" {
				result.Stars[at].KeplerObjects[designation] = disposition
			}
			continue
		}

		star := model.Star{
			StarID:        id,
			RA:            *ra,
			Dec:           *dec,
			Magnitude:     coerceOr(row[catalog.ColMagnitude], FallbackMagnitude),
			Teff:          coerceOr(row[catalog.ColStellarTeff], FallbackTeffK),
			Radius:        coerceOr(row[catalog.ColStellarRadius], FallbackRadiusRS),
			KeplerObjects: make(map[string]model.Disposition),
		}
		if designation != "" {
			star.KeplerObjects[designation] = disposition
		}

		index[id] = len(result.Stars)
		result.Stars = append(result.Stars, star)
	}

	return result
}

func coerceOr(raw string, fallback float64) float64 {
	if v := catalog.CoerceNumber(raw); v != nil {
		return *v
	}
	return fallback
}

// Bounds computes the min/max right ascension and declination over the stars
// in one pass. The second return is false for an empty list. A single star
// yields a degenerate box (min == max on both axes); consumers normalizing
// coordinates substitute a unit range for a zero span before dividing.
func Bounds(stars []model.Star) (model.BoundingBox, bool) {
	if len(stars) == 0 {
		return model.BoundingBox{}, false
	}

	box := model.BoundingBox{
		MinRA: stars[0].RA, MaxRA: stars[0].RA,
		MinDec: stars[0].Dec, MaxDec: stars[0].Dec,
	}
	for _, s := range stars[1:] {
		if s.RA < box.MinRA {
			box.MinRA = s.RA
		}
		if s.RA > box.MaxRA {
			box.MaxRA = s.RA
		}
		if s.Dec < box.MinDec {
			box.MinDec = s.Dec
		}
		if s.Dec > box.MaxDec {
			box.MaxDec = s.Dec
		}
	}
	return box, true
}
