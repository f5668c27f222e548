package catalog

import (
	"math"
	"strconv"
	"strings"
)

// CoerceNumber converts one CSV cell into a nullable numeric value. It returns
// nil for an empty cell, the literal token "nan" in any casing, a parse
// failure, or a non-finite result; otherwise the parsed value.
//
// Every numeric field in both pipelines goes through this function, so null
// handling stays uniform: the catalog path keeps the nil, the star path
// substitutes its fallback constants after a nil comes back. Nothing ever
// silently becomes zero.
func CoerceNumber(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return &v
}
