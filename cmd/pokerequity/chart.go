package main

import (
	"errors"
	"fmt"

	"github.com/lox/pokerequity/charts"
)

// ChartCmd lists the loaded charts or prints one.
type ChartCmd struct {
	Position string  `arg:"" optional:"" help:"Position (e.g., 'button'); omit to list charts"`
	Action   string  `arg:"" optional:"" help:"Action (e.g., 'raise')"`
	Bet      float64 `help:"Bet size, to print the minimum defense frequency"`
	Pot      float64 `help:"Pot size before the bet"`
}

func (c *ChartCmd) Run(a *app) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	book, err := a.charts(cfg)
	if err != nil {
		return err
	}
	st := a.styles()

	if c.Position == "" {
		tw := newTable(a.out)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", st.header.Render("chart"), st.header.Render("combos"), st.header.Render("description"))
		for _, key := range book.Keys() {
			chart, err := book.Chart(key.Position, key.Action)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", st.hand.Render(key.String()), chart.Range().ComboCount(), chart.Description)
		}
		return tw.Flush()
	}
	if c.Action == "" {
		return fmt.Errorf("chart %s: an action is required", c.Position)
	}

	chart, err := book.Chart(c.Position, c.Action)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s\n", st.header.Render(chart.Key.String()))
	if chart.Description != "" {
		_, _ = fmt.Fprintf(a.out, "%s\n", st.muted.Render(chart.Description))
	}
	_, _ = fmt.Fprintln(a.out)
	if err := printRange(a.out, st, chart.Range()); err != nil {
		return err
	}

	if c.Bet <= 0 {
		return nil
	}
	if c.Pot <= 0 {
		return errors.New("--pot must be positive when --bet is set")
	}
	mdf := charts.MinimumDefenseFrequency(c.Bet, c.Pot)
	_, err = fmt.Fprintf(a.out, "\nminimum defense frequency %s\n", st.percent.Render(pct(mdf)))
	return err
}
