package points

import (
	"sort"

	"github.com/alexanderramin/chewy/internal/domain"
)

// StageCards maps each stage to the cards of the list resolved for it.
type StageCards map[domain.Stage][]domain.Card

// Aggregation is the per-member and board-wide outcome of a board.
type Aggregation struct {
	Members []domain.MemberProgress
	Board   domain.ProgressPair
}

// MemberCards picks the cards assigned to memberID out of every stage.
func MemberCards(stageCards StageCards, memberID string) map[domain.Stage][]domain.Card {
	out := make(map[domain.Stage][]domain.Card, len(domain.Stages))
	for _, stage := range domain.Stages {
		var cards []domain.Card
		for _, c := range stageCards[stage] {
			if c.AssignedTo(memberID) {
				cards = append(cards, c)
			}
		}
		out[stage] = cards
	}
	return out
}

// MemberTotals sums planned and unplanned card totals over all stages.
func MemberTotals(cards map[domain.Stage][]domain.Card) domain.ProgressPair {
	var pair domain.ProgressPair
	for _, stage := range domain.Stages {
		for _, c := range cards[stage] {
			pair.Planned = pair.Planned.Merge(CardTotals(c, stage, false), 1)
			pair.Unplanned = pair.Unplanned.Merge(CardTotals(c, stage, true), 1)
		}
	}
	return pair
}

// Aggregate computes every member's progress and the board totals.
//
// A card with several members credits each of them in full, so the board
// total counts a shared card once per member.
func Aggregate(stageCards StageCards, members []domain.Member) Aggregation {
	agg := Aggregation{Members: make([]domain.MemberProgress, 0, len(members))}
	for _, m := range members {
		cards := MemberCards(stageCards, m.ID)
		mp := domain.MemberProgress{
			Member:   m,
			Cards:    cards,
			Progress: MemberTotals(cards),
		}
		agg.Members = append(agg.Members, mp)
		agg.Board = agg.Board.Merge(mp.Progress)
	}
	return agg
}

// Rank orders members by done-equivalent score, highest first. Ties keep
// their input order.
func Rank(members []domain.MemberProgress) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Progress.DoneScore() > members[j].Progress.DoneScore()
	})
}
