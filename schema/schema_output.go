package schema

// RankedMethod adds presentation data to a Method for catalogue listings.
type RankedMethod struct {
	Rank      int      `json:"rank"`
	Label     string   `json:"label"`
	Threshold *float64 `json:"threshold,omitempty"` // Bracket threshold, nil when unbound
	IsDefault bool     `json:"is_default"`          // Catch-all method of the ladder
	Method
}

// GetPlainLabel returns a plain text label indicating the criticality level
// of a score in [0,1]. Values outside that range fall into the outer labels.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.8:
		return CriticalLabel
	case score >= 0.6:
		return HighLabel
	case score >= 0.4:
		return ModerateLabel
	default:
		return LowLabel
	}
}

// EnrichMethods adds rank, label and ladder binding to a list of methods.
// The methods are expected to be ranked already.
func EnrichMethods(methods []Method, ladder []Bracket, defaultName string) []RankedMethod {
	thresholds := make(map[string]float64, len(ladder))
	for _, b := range ladder {
		if _, seen := thresholds[b.Method]; !seen {
			thresholds[b.Method] = b.Threshold
		}
	}

	output := make([]RankedMethod, len(methods))
	for i, m := range methods {
		rm := RankedMethod{
			Rank:      i + 1,
			Label:     GetPlainLabel(m.Score),
			IsDefault: m.Name == defaultName,
			Method:    m,
		}
		if t, ok := thresholds[m.Name]; ok {
			rm.Threshold = &t
		}
		output[i] = rm
	}
	return output
}
