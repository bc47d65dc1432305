package points

import "github.com/alexanderramin/chewy/internal/domain"

// ChecklistSplit holds a checklist's item points by completion state.
type ChecklistSplit struct {
	Complete   float64
	Incomplete float64
}

// Total is complete plus incomplete points.
func (c ChecklistSplit) Total() float64 {
	return c.Complete + c.Incomplete
}

// CardTotals computes the planned (unplanned=false) or unplanned
// (unplanned=true) points a card contributes while sitting in stage.
//
// A card annotation wins over its checklists, and a checklist annotation
// wins over its items. Only item-level points on a doing card look at the
// check state: finished items count as testing. A card in done counts as
// fully done even if items are still unchecked.
func CardTotals(card domain.Card, stage domain.Stage, unplanned bool) domain.ProgressTotals {
	var totals domain.ProgressTotals

	if ann, ok := Parse(card.Name); ok {
		return totals.Add(stage, ann.Points(unplanned))
	}

	for _, cl := range card.Checklists {
		if ann, ok := Parse(cl.Name); ok {
			totals = totals.Add(stage, ann.Points(unplanned))
			continue
		}

		split := ChecklistPoints(cl, unplanned)
		if stage == domain.StageDoing {
			totals = totals.Add(domain.StageDoing, split.Incomplete)
			totals = totals.Add(domain.StageTesting, split.Complete)
			continue
		}
		totals = totals.Add(stage, split.Total())
	}

	return totals
}

// ChecklistPoints sums the annotated items of a checklist. Items without an
// annotation contribute nothing.
func ChecklistPoints(cl domain.Checklist, unplanned bool) ChecklistSplit {
	var out ChecklistSplit
	for _, item := range cl.CheckItems {
		ann, ok := Parse(item.Name)
		if !ok {
			continue
		}
		if item.Complete() {
			out.Complete += ann.Points(unplanned)
		} else {
			out.Incomplete += ann.Points(unplanned)
		}
	}
	return out
}
