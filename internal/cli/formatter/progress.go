package formatter

import (
	"strings"

	"github.com/alexanderramin/chewy/internal/domain"
)

const (
	plannedBlock   = "█"
	unplannedBlock = "▓"
	emptyBlock     = "░"
	plannedMarker  = "│"

	// minSegment hides segments too thin to matter.
	minSegment = 1e-8
	// fullPlanned hides the planned marker once planned work fills the bar.
	fullPlanned = 0.99999
)

// Segment is one stage/type slice of a member's progress bar.
type Segment struct {
	Stage     domain.Stage
	Unplanned bool
	Points    float64
	// Percent is the share of the grand total, in [0,1].
	Percent float64
}

func share(amount, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return amount / total
}

// Segments lays out progress in render order, unplanned before planned
// within each stage. Zero segments are included.
func Segments(p domain.ProgressPair) []Segment {
	total := p.GrandTotal()
	segs := make([]Segment, 0, 2*len(domain.RenderOrder))
	for _, stage := range domain.RenderOrder {
		for _, unplanned := range []bool{true, false} {
			totals := p.Planned
			if unplanned {
				totals = p.Unplanned
			}
			pts := totals.Get(stage)
			segs = append(segs, Segment{
				Stage:     stage,
				Unplanned: unplanned,
				Points:    pts,
				Percent:   share(pts, total),
			})
		}
	}
	return segs
}

// PlannedPercent is the planned share of all points.
func PlannedPercent(p domain.ProgressPair) float64 {
	return share(p.Planned.Total(), p.GrandTotal())
}

// RenderSegmentedBar draws p as a width-cell bar. Each visible segment is
// sized by its share of the grand total and colored by stage; unplanned
// segments use a hatched block. A marker shows where planned work ends
// unless planned work fills the bar.
func RenderSegmentedBar(p domain.ProgressPair, width int) string {
	if width < 2 {
		width = 2
	}
	if p.GrandTotal() <= 0 {
		return StyleTrack.Render(strings.Repeat(emptyBlock, width))
	}

	cells := make([]string, 0, width)
	var cum float64
	for _, seg := range Segments(p) {
		if seg.Percent < minSegment {
			continue
		}
		from := int(cum*float64(width) + 0.5)
		cum += seg.Percent
		to := int(cum*float64(width) + 0.5)
		if to > width {
			to = width
		}
		block := plannedBlock
		if seg.Unplanned {
			block = unplannedBlock
		}
		style := StageStyle(seg.Stage, seg.Unplanned)
		for i := from; i < to; i++ {
			cells = append(cells, style.Render(block))
		}
	}
	for len(cells) < width {
		cells = append(cells, StyleTrack.Render(emptyBlock))
	}

	if planned := PlannedPercent(p); planned <= fullPlanned {
		at := int(planned*float64(width) + 0.5)
		if at >= width {
			at = width - 1
		}
		cells[at] = StyleBold.Render(plannedMarker)
	}
	return strings.Join(cells, "")
}
