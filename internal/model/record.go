package model

import (
	"encoding/json"
	"strings"
)

// DispositionKind identifies the canonical classification of a KOI
type DispositionKind int

const (
	DispositionUnknown       DispositionKind = 0 // Label not in the canonical set
	DispositionConfirmed     DispositionKind = 1 // Confirmed planet
	DispositionCandidate     DispositionKind = 2 // Planet candidate awaiting confirmation
	DispositionFalsePositive DispositionKind = 3 // Signal ruled out as a planet
)

// Disposition is the catalog classification of a KOI. Unrecognized labels are
// preserved verbatim in Raw rather than folded into the canonical set, so the
// summary can still enumerate whatever labels the archive export contained.
type Disposition struct {
	Kind DispositionKind
	Raw  string // original label, set only when Kind is DispositionUnknown
}

// ParseDisposition normalizes a raw label by exact case-insensitive match
// against the canonical set. Anything else becomes Unknown with the trimmed
// label preserved.
func ParseDisposition(label string) Disposition {
	trimmed := strings.TrimSpace(label)
	switch strings.ToUpper(trimmed) {
	case "CONFIRMED":
		return Disposition{Kind: DispositionConfirmed}
	case "CANDIDATE":
		return Disposition{Kind: DispositionCandidate}
	case "FALSE POSITIVE":
		return Disposition{Kind: DispositionFalsePositive}
	default:
		return Disposition{Kind: DispositionUnknown, Raw: trimmed}
	}
}

// Label returns the canonical label, or the preserved raw label for unknown
// dispositions. An unknown disposition with an empty raw label reports "UNKNOWN".
func (d Disposition) Label() string {
	switch d.Kind {
	case DispositionConfirmed:
		return "CONFIRMED"
	case DispositionCandidate:
		return "CANDIDATE"
	case DispositionFalsePositive:
		return "FALSE POSITIVE"
	default:
		if d.Raw == "" {
			return "UNKNOWN"
		}
		return d.Raw
	}
}

// MarshalJSON encodes the disposition as its label string
func (d Disposition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Label())
}

// UnmarshalJSON decodes a label string back into a disposition
func (d *Disposition) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*d = ParseDisposition(label)
	return nil
}

// CatalogRecord is one row of the KOI catalog. Measured quantities are nil when
// the source cell was empty, "NaN", or unparseable; they are never defaulted,
// so downstream statistics only ever see values the archive actually reported.
type CatalogRecord struct {
	CatalogID   string      `json:"catalog_id"`            // KOI designation (kepoi_name), always present
	CommonName  string      `json:"common_name,omitempty"` // Designated planet name (kepler_name), if any
	Disposition Disposition `json:"disposition"`

	PeriodDays    *float64 `json:"period_days,omitempty"`      // Orbital period
	PlanetRadius  *float64 `json:"planet_radius_re,omitempty"` // Earth radii
	EqTemperature *float64 `json:"eq_temperature_k,omitempty"` // Equilibrium temperature
	Insolation    *float64 `json:"insolation_ef,omitempty"`    // Earth flux units
	StellarTeff   *float64 `json:"stellar_teff_k,omitempty"`   // Host star effective temperature
	StellarRadius *float64 `json:"stellar_radius_rs,omitempty"` // Solar radii
	Score         *float64 `json:"score,omitempty"`            // Catalog confidence score, 0-1
}

// DerivedPlanetView is a CatalogRecord plus quantities derived from it. Derived
// fields stay nil whenever their input is nil or non-positive.
type DerivedPlanetView struct {
	CatalogRecord

	SemiMajorAxisAU *float64 `json:"semi_major_axis_au,omitempty"` // Kepler's third law estimate
	BrightnessIndex *float64 `json:"brightness_index,omitempty"`   // Stellar Teff over solar Teff
}
