package catalog

import (
	"strings"

	"github.com/pvolkov/koiscope/internal/model"
)

// LoadResult holds the typed record list plus row-level drop diagnostics
type LoadResult struct {
	Records           []model.CatalogRecord
	MissingIdentifier int // Rows dropped for lacking a KOI designation
}

// BuildRecords converts parsed rows into CatalogRecords. A row without a KOI
// designation is dropped and counted, never fatal; every numeric cell goes
// through CoerceNumber so absent and unparseable values stay nil all the way
// down to the statistics pass.
func BuildRecords(table *Table) LoadResult {
	result := LoadResult{Records: make([]model.CatalogRecord, 0, len(table.Rows))}

	for _, row := range table.Rows {
		id := strings.TrimSpace(row[ColDesignation])
		if id == "" {
			result.MissingIdentifier++
			continue
		}

		result.Records = append(result.Records, model.CatalogRecord{
			CatalogID:     id,
			CommonName:    strings.TrimSpace(row[ColCommonName]),
			Disposition:   model.ParseDisposition(row[ColDisposition]),
			PeriodDays:    CoerceNumber(row[ColPeriod]),
			PlanetRadius:  CoerceNumber(row[ColPlanetRadius]),
			EqTemperature: CoerceNumber(row[ColEqTemperature]),
			Insolation:    CoerceNumber(row[ColInsolation]),
			StellarTeff:   CoerceNumber(row[ColStellarTeff]),
			StellarRadius: CoerceNumber(row[ColStellarRadius]),
			Score:         CoerceNumber(row[ColScore]),
		})
	}

	return result
}
