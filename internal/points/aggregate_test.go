package points

import (
	"testing"

	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SingleDoneCard(t *testing.T) {
	m := domain.Member{ID: "m1", FullName: "Mia"}
	stageCards := StageCards{
		domain.StageDone: {{ID: "c1", Name: "[3]", IDMembers: []string{"m1"}}},
	}

	agg := Aggregate(stageCards, []domain.Member{m})

	require.Len(t, agg.Members, 1)
	assert.Equal(t, domain.ProgressTotals{Done: 3}, agg.Members[0].Progress.Planned)
	assert.Zero(t, agg.Members[0].Progress.Unplanned.Total())
	assert.Equal(t, 3.0, agg.Board.Planned.Total())
	assert.Equal(t, 3.0, agg.Board.GrandTotal())
}

func TestAggregate_SharedCardCreditsEveryMember(t *testing.T) {
	members := []domain.Member{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	stageCards := StageCards{
		domain.StageTesting: {{ID: "c1", Name: "[10] Pairing", IDMembers: []string{"a", "b", "c"}}},
	}

	agg := Aggregate(stageCards, members)

	for _, mp := range agg.Members {
		assert.Equal(t, 10.0, mp.Progress.Planned.Testing, "member %s", mp.Member.ID)
	}
	assert.Equal(t, 30.0, agg.Board.Planned.Testing)
}

func TestAggregate_UnassignedCardsIgnored(t *testing.T) {
	stageCards := StageCards{
		domain.StageTodo: {{ID: "c1", Name: "[8] Nobody"}},
	}
	agg := Aggregate(stageCards, []domain.Member{{ID: "m1"}})
	assert.Zero(t, agg.Board.GrandTotal())
}

func TestMemberCards_PartitionsByStage(t *testing.T) {
	stageCards := StageCards{
		domain.StageTodo:  {{ID: "t1", IDMembers: []string{"m1"}}, {ID: "t2", IDMembers: []string{"m2"}}},
		domain.StageDoing: {{ID: "d1", IDMembers: []string{"m2", "m1"}}},
	}
	cards := MemberCards(stageCards, "m1")
	require.Len(t, cards[domain.StageTodo], 1)
	assert.Equal(t, "t1", cards[domain.StageTodo][0].ID)
	require.Len(t, cards[domain.StageDoing], 1)
	assert.Empty(t, cards[domain.StageDone])
}

func TestRank_DoneEquivalentScore(t *testing.T) {
	same := domain.ProgressTotals{Done: 1}
	a := domain.MemberProgress{
		Member:   domain.Member{ID: "a"},
		Progress: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 2, Testing: 2}, Unplanned: same},
	}
	b := domain.MemberProgress{
		Member:   domain.Member{ID: "b"},
		Progress: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 2, Doing: 10}, Unplanned: same},
	}

	members := []domain.MemberProgress{b, a}
	Rank(members)

	assert.Equal(t, "a", members[0].Member.ID)
	assert.Equal(t, "b", members[1].Member.ID)
}

func TestRank_TiesKeepOrder(t *testing.T) {
	members := []domain.MemberProgress{
		{Member: domain.Member{ID: "first"}},
		{Member: domain.Member{ID: "second"}},
		{Member: domain.Member{ID: "top"}, Progress: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 1}}},
	}
	Rank(members)
	assert.Equal(t, []string{"top", "first", "second"}, []string{members[0].Member.ID, members[1].Member.ID, members[2].Member.ID})
}
