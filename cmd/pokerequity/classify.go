package main

import (
	"fmt"
	"sort"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/classification"
	"github.com/lox/pokerequity/poker"
)

func parseFlopBoard(s string) ([]poker.Card, error) {
	board, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	if len(board) < 3 {
		return nil, fmt.Errorf("%w: board needs at least 3 cards, got %d", poker.ErrInsufficientCards, len(board))
	}
	if len(board) > 5 {
		return nil, fmt.Errorf("%w: board has %d cards", poker.ErrInvalidInput, len(board))
	}
	if err := poker.CheckDistinct(board); err != nil {
		return nil, err
	}
	return board, nil
}

// PartitionCmd splits a range into value, marginal, draw and air buckets.
type PartitionCmd struct {
	Range      string `arg:"" help:"Range to partition (e.g., '22+,ATs+')"`
	Board      string `arg:"" help:"Board of 3 to 5 cards (e.g., 'Ah7d2c')"`
	Categories bool   `short:"c" help:"Also break combos down by hand category"`
}

func (c *PartitionCmd) Run(a *app) error {
	r, err := analysis.ParseRange(c.Range)
	if err != nil {
		return err
	}
	board, err := parseFlopBoard(c.Board)
	if err != nil {
		return err
	}
	result, err := classification.Partition(r, board)
	if err != nil {
		return err
	}

	st := a.styles()
	printBoard(a.out, st, board)
	tw := newTable(a.out)
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", st.header.Render("bucket"), st.header.Render("share"), st.header.Render("combos"))
	for _, b := range classification.Buckets {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n",
			st.category.Render(string(b)),
			st.percent.Render(fmt.Sprintf("%.2f%%", result.Percentages[b])),
			result.Counts[b])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if c.Categories && result.Total > 0 {
		_, _ = fmt.Fprintln(a.out)
		tw = newTable(a.out)
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", st.header.Render("category"), st.header.Render("combos"))
		for _, cat := range poker.HandCategories {
			if n := result.Categories[cat]; n > 0 {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", st.category.Render(string(cat)), n)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(a.out, "\n%s\n", st.muted.Render(fmt.Sprintf("%d live combos, %s board", result.Total, result.Texture.Wetness)))
	return err
}

// BoardFilterCmd keeps the notations of a range that continue on a board.
type BoardFilterCmd struct {
	Range   string `arg:"" help:"Range to filter"`
	Board   string `arg:"" help:"Board of 3 to 5 cards"`
	Profile string `default:"tight" enum:"tight,loose" help:"Continue profile (tight or loose)"`
}

func (c *BoardFilterCmd) Run(a *app) error {
	r, err := analysis.ParseRange(c.Range)
	if err != nil {
		return err
	}
	board, err := parseFlopBoard(c.Board)
	if err != nil {
		return err
	}
	profile, err := classification.ParseProfile(c.Profile)
	if err != nil {
		return err
	}
	kept, err := classification.FilterForBoard(r, board, profile)
	if err != nil {
		return err
	}

	st := a.styles()
	printBoard(a.out, st, board)
	return printRange(a.out, st, kept)
}

// DrawsCmd reports the draws and outs of a hand on a flop or turn.
type DrawsCmd struct {
	Hole  string `arg:"" help:"Hole cards (e.g., 'JhTh')"`
	Board string `arg:"" help:"Board of 3 to 5 cards"`
}

func (c *DrawsCmd) Run(a *app) error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("%w: hole cards must be 2 cards, got %d", poker.ErrInvalidInput, len(hole))
	}
	board, err := parseFlopBoard(c.Board)
	if err != nil {
		return err
	}
	if err := poker.CheckDistinct(hole, board); err != nil {
		return err
	}
	cat, err := poker.Categorize(hole, board)
	if err != nil {
		return err
	}

	boardHand := poker.NewHand(board...)
	info := classification.DetectDraws(poker.NewHand(hole...), boardHand)
	texture := classification.AnalyzeTexture(boardHand)

	st := a.styles()
	printBoard(a.out, st, board)
	tw := newTable(a.out)
	rows := [][2]string{
		{"hand", st.hand.Render(poker.FormatCards(hole))},
		{"category", st.category.Render(string(cat))},
		{"draws", info.String()},
		{"class", info.Class()},
		{"outs", fmt.Sprintf("%d (%d to the nuts)", info.Outs, info.NutOuts)},
		{"texture", texture.Wetness.String()},
	}
	if info.Outs > 0 {
		outs := info.OutCards.Cards()
		sort.SliceStable(outs, func(i, j int) bool { return outs[i].Rank() > outs[j].Rank() })
		rows = append(rows, [2]string{"out cards", poker.FormatCards(outs)})
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", st.header.Render(row[0]), row[1])
	}
	return tw.Flush()
}
