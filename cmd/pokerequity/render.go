package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

type styles struct {
	header   lipgloss.Style
	hand     lipgloss.Style
	win      lipgloss.Style
	tie      lipgloss.Style
	category lipgloss.Style
	percent  lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		hand:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		win:      r.NewStyle().Foreground(lipgloss.Color("10")),
		tie:      r.NewStyle().Foreground(lipgloss.Color("11")),
		category: r.NewStyle().Foreground(lipgloss.Color("12")),
		percent:  r.NewStyle().Foreground(lipgloss.Color("9")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func printBoard(w io.Writer, st styles, board []poker.Card) {
	if len(board) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n%s\n\n", st.header.Render("board"), poker.FormatCards(board))
}

// printRange lists a range's notations with weights, combos and tiers.
func printRange(w io.Writer, st styles, r *analysis.Range) error {
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		st.header.Render("hand"),
		st.header.Render("weight"),
		st.header.Render("combos"),
		st.header.Render("tier"))
	for _, e := range r.Entries() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			st.hand.Render(e.Notation.String()),
			st.percent.Render(fmt.Sprintf("%.2f", e.Weight)),
			e.Notation.ComboCount(),
			st.category.Render(string(e.Notation.Tier())))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d notations, %d combos, total weight %.2f\n", r.Len(), r.ComboCount(), r.TotalWeight())
	return err
}
