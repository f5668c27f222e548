package stats

import (
	"math"
	"sort"

	"github.com/pvolkov/koiscope/internal/model"
)

const (
	// SolarTeffK is the adopted solar reference effective temperature
	SolarTeffK = 5778.0

	// EarthYearDays converts orbital periods to years for the axis estimate
	EarthYearDays = 365.25
)

// Temperate-small-world selection bounds: both conditions must hold on the
// same record, and a missing value on either side excludes it.
const (
	TemperateRadiusMaxRE = 2.0
	TemperateTeqMinK     = 180.0
	TemperateTeqMaxK     = 320.0
)

// Median returns the median of the values: the middle element for odd length,
// the mean of the two middle elements for even length, nil for empty input.
// The input slice is not modified.
func Median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}

// Mean returns the arithmetic mean of the values, nil for empty input
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// SemiMajorAxisAU estimates the orbital semi-major axis from the period via
// Kepler's third law assuming a solar-mass host: axis = (period in years)^(2/3).
// This is an approximation, not a fit. Nil or non-positive periods yield nil.
func SemiMajorAxisAU(periodDays *float64) *float64 {
	if periodDays == nil || *periodDays <= 0 {
		return nil
	}
	axis := math.Pow(*periodDays/EarthYearDays, 2.0/3.0)
	return &axis
}

// BrightnessIndex is the stellar effective temperature relative to the solar
// reference. Nil or non-positive temperatures yield nil.
func BrightnessIndex(teffK *float64) *float64 {
	if teffK == nil || *teffK <= 0 {
		return nil
	}
	idx := *teffK / SolarTeffK
	return &idx
}

// Derive builds the planet view for one record. Derived fields are computed
// from the record's own quantities and stay nil when those are missing.
func Derive(rec model.CatalogRecord) model.DerivedPlanetView {
	return model.DerivedPlanetView{
		CatalogRecord:   rec,
		SemiMajorAxisAU: SemiMajorAxisAU(rec.PeriodDays),
		BrightnessIndex: BrightnessIndex(rec.StellarTeff),
	}
}

// RankByScore returns the top n records by confidence score, descending. The
// sort is stable and a nil score ranks at the numeric floor, so unscored
// records only surface when nothing better exists.
func RankByScore(records []model.CatalogRecord, n int) []model.CatalogRecord {
	ranked := make([]model.CatalogRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return scoreOrFloor(ranked[i].Score) > scoreOrFloor(ranked[j].Score)
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func scoreOrFloor(score *float64) float64 {
	if score == nil {
		return math.Inf(-1)
	}
	return *score
}

// Featured derives planet views for the top n records by confidence score
func Featured(records []model.CatalogRecord, n int) []model.DerivedPlanetView {
	ranked := RankByScore(records, n)
	views := make([]model.DerivedPlanetView, len(ranked))
	for i, rec := range ranked {
		views[i] = Derive(rec)
	}
	return views
}

// Summarize computes the aggregate snapshot in a single traversal: disposition
// tally, median planet radius over non-nil radii, mean brightness index over
// non-nil finite values, and the temperate-small-world count.
func Summarize(records []model.CatalogRecord) model.SummaryStatistics {
	summary := model.SummaryStatistics{TotalRecords: len(records)}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var radii []float64
	var brightness []float64

	for _, rec := range records {
		label := rec.Disposition.Label()
		if _, seen := counts[label]; !seen {
			firstSeen[label] = len(firstSeen)
		}
		counts[label]++

		switch rec.Disposition.Kind {
		case model.DispositionConfirmed:
			summary.Confirmed++
		case model.DispositionCandidate:
			summary.Candidates++
		case model.DispositionFalsePositive:
			summary.FalsePositives++
		}

		if rec.PlanetRadius != nil {
			radii = append(radii, *rec.PlanetRadius)
		}
		if idx := BrightnessIndex(rec.StellarTeff); idx != nil && !math.IsInf(*idx, 0) {
			brightness = append(brightness, *idx)
		}

		if rec.PlanetRadius != nil && rec.EqTemperature != nil &&
			*rec.PlanetRadius <= TemperateRadiusMaxRE &&
			*rec.EqTemperature >= TemperateTeqMinK && *rec.EqTemperature <= TemperateTeqMaxK {
			summary.TemperateSmallWorlds++
		}
	}

	summary.Dispositions = make([]model.DispositionCount, 0, len(counts))
	for label, count := range counts {
		summary.Dispositions = append(summary.Dispositions, model.DispositionCount{Label: label, Count: count})
	}
	sort.SliceStable(summary.Dispositions, func(i, j int) bool {
		a, b := summary.Dispositions[i], summary.Dispositions[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return firstSeen[a.Label] < firstSeen[b.Label]
	})

	summary.MedianPlanetRadius = Median(radii)
	summary.MeanBrightnessIndex = Mean(brightness)

	return summary
}
