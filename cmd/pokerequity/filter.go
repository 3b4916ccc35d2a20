package main

import (
	"fmt"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/poker"
)

// FilterCmd narrows a range after an observed action.
type FilterCmd struct {
	Range  string  `arg:"" help:"Range before the action"`
	Action string  `arg:"" enum:"fold,check,call,bet,raise,allin,all-in" help:"Observed action (fold, check, call, bet, raise, allin)"`
	Size   float64 `short:"s" default:"1" help:"Bet size as a fraction of the pot"`
	Street string  `help:"Street of the action (preflop, flop, turn, river); inferred from --board when unset"`
	Board  string  `short:"b" help:"Community cards, used to infer the street"`
}

func (c *FilterCmd) Run(a *app) error {
	r, err := analysis.ParseRange(c.Range)
	if err != nil {
		return err
	}
	action, err := analysis.ParseAction(c.Action)
	if err != nil {
		return err
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: size cannot be negative, got %g", poker.ErrInvalidInput, c.Size)
	}
	street, err := c.street()
	if err != nil {
		return err
	}

	filtered := r.FilterByAction(action, c.Size, street)
	st := a.styles()
	_, _ = fmt.Fprintf(a.out, "%s\n\n", st.muted.Render(fmt.Sprintf("%s %.2fx pot on the %s", action, c.Size, street)))
	return printRange(a.out, st, filtered)
}

func (c *FilterCmd) street() (analysis.Street, error) {
	if c.Street != "" {
		return analysis.ParseStreet(c.Street)
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return "", fmt.Errorf("board: %w", err)
	}
	return analysis.StreetForBoard(len(board))
}
