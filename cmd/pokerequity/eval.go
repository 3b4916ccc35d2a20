package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerequity/poker"
)

// EvalCmd ranks a hand and optionally compares it with another.
type EvalCmd struct {
	Cards  string `arg:"" help:"5 to 7 cards (e.g., 'AsKsQsJsTs')"`
	Versus string `help:"Second hand of 5 to 7 cards to compare against"`
}

func (c *EvalCmd) Run(a *app) error {
	hand, err := evaluate(c.Cards)
	if err != nil {
		return err
	}
	st := a.styles()
	printHand(a, st, hand)
	if c.Versus == "" {
		return nil
	}

	other, err := evaluate(c.Versus)
	if err != nil {
		return fmt.Errorf("versus: %w", err)
	}
	printHand(a, st, other)
	_, why := poker.Explain(hand, other)
	_, err = fmt.Fprintf(a.out, "\n%s\n", st.win.Render(why))
	return err
}

func evaluate(s string) (poker.EvaluatedHand, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return poker.EvaluatedHand{}, err
	}
	if len(cards) > 7 {
		return poker.EvaluatedHand{}, fmt.Errorf("%w: evaluate takes 5 to 7 cards, got %d", poker.ErrInvalidInput, len(cards))
	}
	if err := poker.CheckDistinct(cards); err != nil {
		return poker.EvaluatedHand{}, err
	}
	return poker.BestOf(cards)
}

func printHand(a *app, st styles, h poker.EvaluatedHand) {
	kickers := make([]string, len(h.Kickers))
	for i, k := range h.Kickers {
		kickers[i] = fmt.Sprint(k)
	}
	_, _ = fmt.Fprintf(a.out, "%s  %s  %s\n",
		st.category.Render(h.Category.String()),
		st.hand.Render(h.String()),
		st.muted.Render("kickers "+strings.Join(kickers, " ")))
}
