package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
)

const (
	defaultBarWidth = 24
	doingColWidth   = 40
)

// DashboardOptions tune FormatDashboard.
type DashboardOptions struct {
	BarWidth int
	// Now is the reference for the "updated" line; zero hides it.
	Now time.Time
	// Bare drops the title, legend and footer for unattended displays.
	Bare bool
}

// FormatDashboard renders the ranked member table with segmented bars and
// board totals.
func FormatDashboard(resp *app.DashboardResponse, opts DashboardOptions) string {
	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	var b strings.Builder

	if !opts.Bare {
		title := resp.Board.Name
		if resp.IterationName != "" {
			title += " · " + resp.IterationName
		}
		b.WriteString(Header(title))
		b.WriteString("\n\n")
	}

	headers := []string{"#", "MEMBER", "PROGRESS", "DONE", "TEST", "DOING", "TODO", "SCORE", "WORKING ON"}
	rows := make([][]string, 0, len(resp.Members))
	for i, mv := range resp.Members {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			Bold(mv.Member.DisplayName()),
			RenderSegmentedBar(mv.Progress, width),
			stagePoints(mv.Progress, domain.StageDone),
			stagePoints(mv.Progress, domain.StageTesting),
			stagePoints(mv.Progress, domain.StageDoing),
			stagePoints(mv.Progress, domain.StageTodo),
			StyleFg.Render(FormatPoints(mv.Score)),
			Dim(Truncate(strings.Join(mv.DoingNames, ", "), doingColWidth)),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No members on this board."))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleHeader.Render("BOARD"),
		RenderSegmentedBar(resp.Totals, width),
		formatTotals(resp),
	))

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! " + w))
		b.WriteString("\n")
	}

	if !opts.Bare {
		b.WriteString("\n")
		b.WriteString(Legend())
		b.WriteString("\n")
		if !opts.Now.IsZero() {
			b.WriteString(Dim("updated " + HumanTimestamp(resp.GeneratedAt, opts.Now)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// stagePoints prints planned points, with unplanned ones as a "+n" suffix.
func stagePoints(p domain.ProgressPair, stage domain.Stage) string {
	planned := p.Planned.Get(stage)
	unplanned := p.Unplanned.Get(stage)
	style := StageStyle(stage, false)
	if planned == 0 && unplanned == 0 {
		return Dim("·")
	}
	out := style.Render(FormatPoints(planned))
	if unplanned > 0 {
		out += StageStyle(stage, true).Render("+" + FormatPoints(unplanned))
	}
	return out
}

func formatTotals(resp *app.DashboardResponse) string {
	planned := resp.Totals.Planned.Total()
	unplanned := resp.Totals.Unplanned.Total()
	return fmt.Sprintf("%s planned · %s unplanned · %s planned share · %s done-equivalent",
		FormatPoints(planned),
		FormatPoints(unplanned),
		Percent(resp.PlannedShare(), 2),
		Percent(share(resp.Totals.DoneScore(), resp.Totals.GrandTotal()), 2),
	)
}

// Legend explains bar colors and blocks.
func Legend() string {
	parts := make([]string, 0, len(domain.RenderOrder)+2)
	for _, stage := range domain.RenderOrder {
		parts = append(parts, StageStyle(stage, false).Render(plannedBlock)+" "+Dim(string(stage)))
	}
	parts = append(parts,
		StyleFg.Render(unplannedBlock)+" "+Dim("unplanned"),
		StyleBold.Render(plannedMarker)+" "+Dim("end of planned"),
	)
	return strings.Join(parts, "  ")
}

// FormatError renders a failed cycle with a hint on how to recover.
func FormatError(err error) string {
	de := app.NewDashboardError(err)
	msg := StyleRed.Render(string(de.Code)) + " " + de.Message
	switch de.Code {
	case app.DashboardErrUnauthorized:
		msg += "\n" + Dim("Run `chewy auth` to connect your Trello account.")
	case app.DashboardErrNoBoard, app.DashboardErrBoardNotFound:
		msg += "\n" + Dim("Run `chewy boards` to see the boards you can pick.")
	case app.DashboardErrNotEnoughLists, app.DashboardErrMissingStage:
		msg += "\n" + Dim("Check the board's list names or the stage_patterns setting.")
	}
	return msg
}

// FormatBoards lists boards, marking the remembered one.
func FormatBoards(list *app.BoardList) string {
	if len(list.Boards) == 0 {
		return Dim("No boards.") + "\n"
	}
	rows := make([][]string, 0, len(list.Boards))
	for _, bd := range list.Boards {
		mark := " "
		if bd.ID == list.LastBoard {
			mark = StyleGreen.Render("●")
		}
		name := Bold(bd.Name)
		if bd.Closed {
			name = Dim(bd.Name + " (closed)")
		}
		rows = append(rows, []string{mark, StyleFg.Render(bd.ID), name, Dim(bd.URL)})
	}
	return RenderTable([]string{"", "ID", "NAME", "URL"}, rows)
}
