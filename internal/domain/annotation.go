package domain

// PointAnnotation is the bracketed estimate parsed out of a card, checklist
// or check item name, e.g. "[2]", "[2->3]" or "* [0.5]".
type PointAnnotation struct {
	Start     float64
	End       float64
	Unplanned bool
}

// Points returns the planned or unplanned share of the annotation.
//
// An annotation marked unplanned counts entirely as unplanned work. For a
// planned annotation the original estimate is planned and any growth beyond
// it is unplanned; shrinkage never produces negative points.
func (a PointAnnotation) Points(unplanned bool) float64 {
	if a.Unplanned {
		if unplanned {
			return a.End
		}
		return 0
	}
	if !unplanned {
		return a.Start
	}
	if growth := a.End - a.Start; growth > 0 {
		return growth
	}
	return 0
}
