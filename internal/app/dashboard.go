package app

import (
	"time"

	"github.com/alexanderramin/chewy/internal/domain"
)

type DashboardRequest struct {
	BoardID string
	Now     *time.Time
}

func NewDashboardRequest(boardID string) DashboardRequest {
	return DashboardRequest{BoardID: boardID}
}

type MemberView struct {
	Member     domain.Member        `json:"member"`
	Progress   domain.ProgressPair  `json:"progress"`
	Score      float64              `json:"score"`
	DoingNames []string             `json:"doing"`
	CardCounts map[domain.Stage]int `json:"card_counts"`
}

type DashboardResponse struct {
	Board         domain.Board            `json:"board"`
	IterationName string                  `json:"iteration_name"`
	Members       []MemberView            `json:"members"`
	Totals        domain.ProgressPair     `json:"totals"`
	StageLists    map[domain.Stage]string `json:"stage_lists"`
	Warnings      []string                `json:"warnings,omitempty"`
	GeneratedAt   time.Time               `json:"generated_at"`
}

// PlannedShare is the planned fraction of all points on the board.
func (r *DashboardResponse) PlannedShare() float64 {
	total := r.Totals.GrandTotal()
	if total <= 0 {
		return 0
	}
	return r.Totals.Planned.Total() / total
}

type BoardList struct {
	Boards    []domain.Board
	ByID      map[string]domain.Board
	LastBoard string
}

// Contains reports whether id is one of the listed boards.
func (b *BoardList) Contains(id string) bool {
	_, ok := b.ByID[id]
	return ok
}
