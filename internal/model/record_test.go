package model

import (
	"encoding/json"
	"testing"
)

func TestParseDisposition_Canonical(t *testing.T) {
	cases := map[string]DispositionKind{
		"CONFIRMED":      DispositionConfirmed,
		"confirmed":      DispositionConfirmed,
		" Confirmed ":    DispositionConfirmed,
		"CANDIDATE":      DispositionCandidate,
		"FALSE POSITIVE": DispositionFalsePositive,
		"false positive": DispositionFalsePositive,
	}
	for label, want := range cases {
		got := ParseDisposition(label)
		if got.Kind != want {
			t.Errorf("ParseDisposition(%q): expected kind %d, got %d", label, want, got.Kind)
		}
		if got.Raw != "" {
			t.Errorf("ParseDisposition(%q): canonical labels must not keep Raw, got %q", label, got.Raw)
		}
	}
}

func TestParseDisposition_Unknown(t *testing.T) {
	d := ParseDisposition("  NOT DISPOSITIONED ")
	if d.Kind != DispositionUnknown {
		t.Fatalf("Expected unknown kind, got %d", d.Kind)
	}
	if d.Raw != "NOT DISPOSITIONED" {
		t.Errorf("Expected trimmed raw label, got %q", d.Raw)
	}
	if d.Label() != "NOT DISPOSITIONED" {
		t.Errorf("Expected label to echo raw, got %q", d.Label())
	}

	if empty := ParseDisposition(""); empty.Label() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for empty label, got %q", empty.Label())
	}
}

func TestDisposition_JSONRoundTrip(t *testing.T) {
	for _, d := range []Disposition{
		{Kind: DispositionConfirmed},
		{Kind: DispositionFalsePositive},
		{Kind: DispositionUnknown, Raw: "AMBIGUOUS"},
	} {
		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var back Disposition
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if back != d {
			t.Errorf("Round trip changed %+v into %+v (json %s)", d, back, data)
		}
	}
}

func TestDetectorResponse_AgreesWith(t *testing.T) {
	positive := DetectorResponse{Prediction: 1}
	negative := DetectorResponse{Prediction: 0}

	if !positive.AgreesWith(Disposition{Kind: DispositionConfirmed}) {
		t.Error("Positive prediction should agree with CONFIRMED")
	}
	if !positive.AgreesWith(Disposition{Kind: DispositionCandidate}) {
		t.Error("Positive prediction should agree with CANDIDATE")
	}
	if !negative.AgreesWith(Disposition{Kind: DispositionFalsePositive}) {
		t.Error("Negative prediction should agree with FALSE POSITIVE")
	}
	if positive.AgreesWith(Disposition{Kind: DispositionUnknown, Raw: "X"}) {
		t.Error("No prediction agrees with an unknown disposition")
	}
	if negative.AgreesWith(Disposition{Kind: DispositionConfirmed}) {
		t.Error("Negative prediction should not agree with CONFIRMED")
	}
}
