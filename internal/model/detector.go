package model

// Types describing the external detector service's assumed request/response
// contract. koiscope never calls the detector itself; it only prepares feature
// payloads (see internal/features) and gives consumers somewhere to decode the
// detector's answers for comparison against catalog dispositions.

// FeatureRecord maps detector feature column names to numeric values. A nil
// value means the catalog cell could not be coerced to a number.
type FeatureRecord map[string]*float64

// DetectorResponse is one per-record answer from the detector endpoint
type DetectorResponse struct {
	Prediction  int                `json:"prediction"`            // Binary classification
	Probability *float64           `json:"probability,omitempty"` // In [0,1] when provided
	Features    map[string]float64 `json:"features,omitempty"`    // Echoed feature map
	Error       string             `json:"error,omitempty"`
}

// AgreesWith reports whether the detector's binary prediction matches the
// catalog's own disposition: a positive prediction corresponds to CANDIDATE
// or CONFIRMED, a negative one to FALSE POSITIVE. Unknown dispositions never
// agree, since the catalog itself took no position.
func (r DetectorResponse) AgreesWith(d Disposition) bool {
	switch d.Kind {
	case DispositionConfirmed, DispositionCandidate:
		return r.Prediction == 1
	case DispositionFalsePositive:
		return r.Prediction == 0
	default:
		return false
	}
}
