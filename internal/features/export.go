package features

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pvolkov/koiscope/internal/catalog"
	"github.com/pvolkov/koiscope/internal/model"
)

// modelFeatureKeys is the detector model's full input vector, in vector order
var modelFeatureKeys = []string{
	"koi_score",
	"koi_period", "koi_period_err1", "koi_period_err2",
	"koi_time0bk", "koi_time0bk_err1", "koi_time0bk_err2",
	"koi_impact", "koi_impact_err1", "koi_impact_err2",
	"koi_duration", "koi_duration_err1", "koi_duration_err2",
	"koi_depth", "koi_depth_err1", "koi_depth_err2",
	"koi_prad", "koi_prad_err1", "koi_prad_err2",
	"koi_teq",
	"koi_insol", "koi_insol_err1", "koi_insol_err2",
	"koi_model_snr",
	"koi_tce_plnt_num",
	"koi_steff", "koi_steff_err1", "koi_steff_err2",
	"koi_slogg", "koi_slogg_err1", "koi_slogg_err2",
	"koi_srad", "koi_srad_err1", "koi_srad_err2",
	"ra",
}

// leakageKeys are columns that leak the target label and must never reach a
// detector payload
var leakageKeys = map[string]bool{
	"kepler_name":       true,
	"kepoi_name":        true,
	"koi_teq_err1":      true,
	"kepid":             true,
	"koi_disposition":   true,
	"koi_pdisposition":  true,
	"koi_fpflag_nt":     true,
	"koi_fpflag_ss":     true,
	"koi_fpflag_co":     true,
	"koi_fpflag_ec":     true,
	"koi_tce_delivname": true,
	"koi_teq_err2":      true,
	"koi_kepmag":        true,
	"koi_srad":          true,
	"koi_score":         true,
}

// Keys returns the feature columns the detector accepts: the model's input
// vector minus the leakage set, in vector order.
func Keys() []string {
	keys := make([]string, 0, len(modelFeatureKeys))
	for _, key := range modelFeatureKeys {
		if !leakageKeys[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// Harvest builds one detector feature record from a parsed catalog row,
// coercing every cell so the payload carries numbers or explicit nulls
func Harvest(row catalog.Row) model.FeatureRecord {
	record := make(model.FeatureRecord, len(modelFeatureKeys))
	for _, key := range Keys() {
		record[key] = catalog.CoerceNumber(row[key])
	}
	return record
}

// ExportCSV trims the parsed catalog down to the detector feature columns and
// writes them as CSV, preserving the raw cell text so batch predictions see
// the archive's own representation. The header must carry every feature
// column; a missing one is an error, matching the detector's batch contract.
func ExportCSV(table *catalog.Table, w io.Writer) (int, error) {
	keys := Keys()
	if missing := table.HasColumns(keys); len(missing) > 0 {
		return 0, fmt.Errorf("catalog is missing required feature columns: %s", strings.Join(missing, ", "))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(keys); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	cells := make([]string, len(keys))
	count := 0
	for _, row := range table.Rows {
		for i, key := range keys {
			cells[i] = row[key]
		}
		if err := cw.Write(cells); err != nil {
			return count, fmt.Errorf("write row %d: %w", count+1, err)
		}
		count++
	}

	cw.Flush()
	return count, cw.Error()
}

// ExportJSON writes the catalog's feature records as a JSON array of feature
// maps, the detector's other accepted batch shape. Cells that fail numeric
// coercion become explicit nulls.
func ExportJSON(table *catalog.Table, w io.Writer) (int, error) {
	keys := Keys()
	if missing := table.HasColumns(keys); len(missing) > 0 {
		return 0, fmt.Errorf("catalog is missing required feature columns: %s", strings.Join(missing, ", "))
	}

	records := make([]model.FeatureRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, Harvest(row))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return 0, fmt.Errorf("encode features: %w", err)
	}
	return len(records), nil
}
