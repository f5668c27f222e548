package catalog

import (
	"testing"

	"github.com/pvolkov/koiscope/internal/model"
)

const loaderHeader = "kepid,kepoi_name,kepler_name,koi_disposition,koi_period,koi_prad,koi_teq,koi_insol,koi_score,koi_steff,koi_srad,ra,dec,koi_kepmag"

func mustParse(t *testing.T, text string) *Table {
	t.Helper()
	table, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return table
}

func TestBuildRecords_Basic(t *testing.T) {
	table := mustParse(t, loaderHeader+"\n"+
		"10797460,K00752.01,Kepler-227 b,CONFIRMED,9.48803557,2.26,793,93.59,1.0,5455,0.927,291.93423,48.141651,15.347")

	result := BuildRecords(table)
	if len(result.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.CatalogID != "K00752.01" {
		t.Errorf("Expected catalog id K00752.01, got %q", rec.CatalogID)
	}
	if rec.CommonName != "Kepler-227 b" {
		t.Errorf("Expected common name Kepler-227 b, got %q", rec.CommonName)
	}
	if rec.Disposition.Kind != model.DispositionConfirmed {
		t.Errorf("Expected CONFIRMED, got %v", rec.Disposition)
	}
	if rec.PlanetRadius == nil || *rec.PlanetRadius != 2.26 {
		t.Errorf("Expected planet radius 2.26, got %v", rec.PlanetRadius)
	}
	if rec.Score == nil || *rec.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %v", rec.Score)
	}
}

func TestBuildRecords_DropsMissingIdentifier(t *testing.T) {
	table := mustParse(t, loaderHeader+"\n"+
		"10797460,,Kepler-227 b,CONFIRMED,9.48,2.26,793,93.59,1.0,5455,0.927,291.93,48.14,15.3\n"+
		"10797460,   ,,CANDIDATE,,,,,,,,,,\n"+
		"10811496,K00753.01,,CANDIDATE,19.89,2.83,638,39.3,0.969,5853,0.868,297.0,48.13,15.4")

	result := BuildRecords(table)
	if len(result.Records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(result.Records))
	}
	if result.MissingIdentifier != 2 {
		t.Errorf("Expected 2 dropped rows, got %d", result.MissingIdentifier)
	}
	if result.Records[0].CatalogID != "K00753.01" {
		t.Errorf("Wrong surviving record: %q", result.Records[0].CatalogID)
	}
}

func TestBuildRecords_NullsStayNull(t *testing.T) {
	table := mustParse(t, loaderHeader+"\n"+
		"10848459,K00754.01,,FALSE POSITIVE,1.736952453,NaN,,,0.000,nan,,285.53461,48.285210,15.436")

	result := BuildRecords(table)
	rec := result.Records[0]

	if rec.PlanetRadius != nil {
		t.Errorf("Expected nil radius for NaN cell, got %v", *rec.PlanetRadius)
	}
	if rec.EqTemperature != nil {
		t.Errorf("Expected nil temperature for empty cell, got %v", *rec.EqTemperature)
	}
	if rec.StellarTeff != nil {
		t.Errorf("Expected nil stellar Teff for nan cell, got %v", *rec.StellarTeff)
	}
	if rec.Score == nil || *rec.Score != 0 {
		t.Errorf("Expected explicit zero score to survive, got %v", rec.Score)
	}
	if rec.Disposition.Kind != model.DispositionFalsePositive {
		t.Errorf("Expected FALSE POSITIVE, got %v", rec.Disposition)
	}
}

func TestBuildRecords_KeepsRowsWithBadCoordinates(t *testing.T) {
	// The catalog path tolerates unplottable rows; only the star path drops them
	table := mustParse(t, loaderHeader+"\n"+
		"10854555,K00755.01,,CANDIDATE,2.525,2.75,1406,926.16,1.0,6031,1.046,not-a-number,48.22,15.5")

	result := BuildRecords(table)
	if len(result.Records) != 1 {
		t.Fatalf("Expected record retained despite bad RA, got %d records", len(result.Records))
	}
}

func TestBuildRecords_UnknownDispositionPreservesLabel(t *testing.T) {
	table := mustParse(t, loaderHeader+"\n"+
		"10872983,K00756.01,,AMBIGUOUS SIGNAL,,,,,,,,,,")

	rec := BuildRecords(table).Records[0]
	if rec.Disposition.Kind != model.DispositionUnknown {
		t.Fatalf("Expected unknown disposition, got %v", rec.Disposition.Kind)
	}
	if rec.Disposition.Label() != "AMBIGUOUS SIGNAL" {
		t.Errorf("Expected raw label preserved, got %q", rec.Disposition.Label())
	}
}
