package points

import (
	"fmt"
	"regexp"

	"github.com/alexanderramin/chewy/internal/domain"
)

// DefaultStagePatterns are the case-insensitive list name patterns used when
// none are configured.
var DefaultStagePatterns = map[domain.Stage]string{
	domain.StageTodo:    `\bto ?do\b|\bbacklog\b`,
	domain.StageDoing:   `\bdoing\b|\bin progress\b`,
	domain.StageTesting: `\btest(ing|s)?\b|\breview\b|\bqa\b`,
	domain.StageDone:    `\bdone\b|\bcompleted?\b`,
}

// claimOrder decides which stage gets first pick of an ambiguous list name.
var claimOrder = []domain.Stage{domain.StageDoing, domain.StageTesting, domain.StageDone, domain.StageTodo}

// StageMatcher resolves a board's lists to the four workflow stages by name.
type StageMatcher struct {
	patterns        map[domain.Stage]*regexp.Regexp
	firstListIsTodo bool
}

// NewStageMatcher compiles patterns, falling back to DefaultStagePatterns for
// stages without one.
func NewStageMatcher(patterns map[domain.Stage]string, firstListIsTodo bool) (*StageMatcher, error) {
	m := &StageMatcher{
		patterns:        make(map[domain.Stage]*regexp.Regexp, len(domain.Stages)),
		firstListIsTodo: firstListIsTodo,
	}
	for _, stage := range domain.Stages {
		expr := patterns[stage]
		if expr == "" {
			expr = DefaultStagePatterns[stage]
		}
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern %q: %w", stage, expr, err)
		}
		m.patterns[stage] = re
	}
	return m, nil
}

// Resolve maps stages to lists. Each list serves at most one stage and lists
// are considered in the order given. Stages without a match are absent from
// the result.
func (m *StageMatcher) Resolve(lists []domain.List) map[domain.Stage]domain.List {
	out := make(map[domain.Stage]domain.List, len(domain.Stages))
	claimed := make(map[string]bool, len(lists))

	for _, stage := range claimOrder {
		for _, l := range lists {
			if claimed[l.ID] || !m.patterns[stage].MatchString(l.Name) {
				continue
			}
			out[stage] = l
			claimed[l.ID] = true
			break
		}
	}

	if _, ok := out[domain.StageTodo]; !ok && m.firstListIsTodo {
		for _, l := range lists {
			if !claimed[l.ID] {
				out[domain.StageTodo] = l
				break
			}
		}
	}

	return out
}

// Missing returns the stages absent from a resolution, in board order.
func Missing(resolved map[domain.Stage]domain.List) []domain.Stage {
	var missing []domain.Stage
	for _, stage := range domain.Stages {
		if _, ok := resolved[stage]; !ok {
			missing = append(missing, stage)
		}
	}
	return missing
}

// CardsByStage gathers the cards of every resolved list.
func CardsByStage(resolved map[domain.Stage]domain.List) StageCards {
	out := make(StageCards, len(resolved))
	for stage, l := range resolved {
		out[stage] = l.Cards
	}
	return out
}
