package catalog

// Column names of the cumulative KOI archive export. The header is
// case-sensitive and these names must match it exactly.
const (
	ColStarID        = "kepid"           // Host star identifier
	ColDesignation   = "kepoi_name"      // KOI designation
	ColCommonName    = "kepler_name"     // Designated planet name
	ColDisposition   = "koi_disposition" // Archive disposition label
	ColPeriod        = "koi_period"      // Orbital period, days
	ColPlanetRadius  = "koi_prad"        // Planet radius, Earth radii
	ColEqTemperature = "koi_teq"         // Equilibrium temperature, K
	ColInsolation    = "koi_insol"       // Insolation flux, Earth units
	ColScore         = "koi_score"       // Confidence score, 0-1
	ColStellarTeff   = "koi_steff"       // Stellar effective temperature, K
	ColStellarRadius = "koi_srad"        // Stellar radius, solar radii
	ColRA            = "ra"              // Right ascension, degrees
	ColDec           = "dec"             // Declination, degrees
	ColMagnitude     = "koi_kepmag"      // Kepler-band magnitude
)
