// Package report renders efficiency tables and point logs for the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ultistats/go-ufa-metrics/internal/model"
)

// TeamRow pairs a team with its merged report for table rendering.
type TeamRow struct {
	TeamID string
	Games  int
	Report model.EfficiencyReport
}

// PrintEfficiencyTable writes the per-team efficiency table.
// Undefined percentages (zero denominator) render as "—", never as 0%.
func PrintEfficiencyTable(w io.Writer, rows []TeamRow) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header(
		"TEAM", "GAMES", "O_PTS", "D_PTS",
		"HOLD%", "O_CONV%", "BREAK%", "D_CONV%", "RZ%",
	)

	for _, r := range rows {
		rep := r.Report
		table.Append(
			r.TeamID,
			strconv.Itoa(r.Games),
			strconv.Itoa(rep.OLinePoints),
			strconv.Itoa(rep.DLinePoints),
			pctCell(rep.HoldPct()),
			pctCell(rep.OConversionPct()),
			pctCell(rep.BreakPct()),
			pctCell(rep.DConversionPct()),
			pctCell(rep.RedzoneConversionPct()),
		)
	}
	table.Render()
}

// PrintReportCounters writes the raw counters behind one report.
func PrintReportCounters(w io.Writer, rep model.EfficiencyReport) {
	fmt.Fprintf(w, "\nO-line: %d points, %d scores, %d possessions\n",
		rep.OLinePoints, rep.OLineScores, rep.OLinePossessions)
	fmt.Fprintf(w, "D-line: %d points, %d scores, %d possessions\n",
		rep.DLinePoints, rep.DLineScores, rep.DLinePossessions)
	fmt.Fprintf(w, "Red zone: %d possessions, %d scores\n\n",
		rep.RedzonePossessions, rep.RedzoneScores)
}

// PrintPointLog writes the per-point detail table for one game.
func PrintPointLog(w io.Writer, points []model.Point) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("#", "PULLED", "RECEIVED", "SCORED", "TEAM_POSS", "OPP_POSS", "LINE")

	for i, p := range points {
		scored := "—"
		if p.ScoringTeam != model.SideNone {
			scored = p.ScoringTeam.String()
		}
		line := "O"
		if p.PullingTeam == model.SideTeam {
			line = "D"
		}
		table.Append(
			strconv.Itoa(i+1),
			p.PullingTeam.String(),
			p.ReceivingTeam.String(),
			scored,
			strconv.Itoa(p.TeamPossessions),
			strconv.Itoa(p.OpponentPossessions),
			line,
		)
	}
	table.Render()
}

func pctCell(v float64, ok bool) string {
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", v)
}
