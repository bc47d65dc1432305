package domain

// ProgressTotals accumulates points per stage. It is a value type: every
// operation returns a new ProgressTotals and leaves the receiver untouched.
type ProgressTotals struct {
	Todo    float64 `json:"todo"`
	Doing   float64 `json:"doing"`
	Testing float64 `json:"testing"`
	Done    float64 `json:"done"`
}

// Get returns the points accumulated for stage.
func (p ProgressTotals) Get(stage Stage) float64 {
	switch stage {
	case StageTodo:
		return p.Todo
	case StageDoing:
		return p.Doing
	case StageTesting:
		return p.Testing
	case StageDone:
		return p.Done
	default:
		return 0
	}
}

// With returns a copy with stage set to v.
func (p ProgressTotals) With(stage Stage, v float64) ProgressTotals {
	switch stage {
	case StageTodo:
		p.Todo = v
	case StageDoing:
		p.Doing = v
	case StageTesting:
		p.Testing = v
	case StageDone:
		p.Done = v
	}
	return p
}

// Add returns a copy with v added to stage.
func (p ProgressTotals) Add(stage Stage, v float64) ProgressTotals {
	return p.With(stage, p.Get(stage)+v)
}

// Merge returns p plus other scaled by multiplier, stage by stage.
func (p ProgressTotals) Merge(other ProgressTotals, multiplier float64) ProgressTotals {
	for _, s := range Stages {
		p = p.Add(s, other.Get(s)*multiplier)
	}
	return p
}

// Total sums every stage.
func (p ProgressTotals) Total() float64 {
	return p.Todo + p.Doing + p.Testing + p.Done
}

// DoneScore weighs finished work: done counts fully, testing counts half.
func (p ProgressTotals) DoneScore() float64 {
	return p.Done + 0.5*p.Testing
}

// ProgressPair holds the planned and unplanned totals of one scope.
type ProgressPair struct {
	Planned   ProgressTotals `json:"planned"`
	Unplanned ProgressTotals `json:"unplanned"`
}

// Merge returns the stage-wise sum of both pairs.
func (p ProgressPair) Merge(other ProgressPair) ProgressPair {
	return ProgressPair{
		Planned:   p.Planned.Merge(other.Planned, 1),
		Unplanned: p.Unplanned.Merge(other.Unplanned, 1),
	}
}

// DoneScore is the ranking score: planned and unplanned done-equivalents summed.
func (p ProgressPair) DoneScore() float64 {
	return p.Planned.DoneScore() + p.Unplanned.DoneScore()
}

// GrandTotal is every planned and unplanned point.
func (p ProgressPair) GrandTotal() float64 {
	return p.Planned.Total() + p.Unplanned.Total()
}
