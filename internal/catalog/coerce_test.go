package catalog

import "testing"

func TestCoerceNumber_Null(t *testing.T) {
	for _, raw := range []string{"", "   ", "NaN", "nan", "NAN", " nan ", "abc", "1.2.3", "Inf", "-inf", "+Inf"} {
		if got := CoerceNumber(raw); got != nil {
			t.Errorf("CoerceNumber(%q): expected nil, got %v", raw, *got)
		}
	}
}

func TestCoerceNumber_Values(t *testing.T) {
	cases := map[string]float64{
		"3.5":      3.5,
		"0":        0,
		"-12.25":   -12.25,
		" 42 ":     42,
		"1e3":      1000,
		"6.02e23":  6.02e23,
		"-0.00015": -0.00015,
	}
	for raw, want := range cases {
		got := CoerceNumber(raw)
		if got == nil {
			t.Errorf("CoerceNumber(%q): expected %v, got nil", raw, want)
			continue
		}
		if *got != want {
			t.Errorf("CoerceNumber(%q): expected %v, got %v", raw, want, *got)
		}
	}
}
