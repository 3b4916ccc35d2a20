package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/internal/config"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

// SimulationFlags are shared by the Monte Carlo commands.
type SimulationFlags struct {
	Board    string `short:"b" help:"Community cards (e.g., 'Ah7d2c')"`
	Trials   int    `short:"t" help:"Number of Monte Carlo trials (default from config)"`
	Seed     *int64 `help:"Random seed for reproducible results"`
	Workers  int    `short:"w" help:"Parallel workers (default from config, or one per CPU)"`
	Progress bool   `short:"p" help:"Draw a progress bar while simulating"`
}

func (f SimulationFlags) board() ([]poker.Card, error) {
	board, err := poker.ParseCards(f.Board)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	switch len(board) {
	case 0, 3, 4, 5:
		return board, nil
	}
	return nil, fmt.Errorf("%w: board must have 0, 3, 4 or 5 cards, got %d", poker.ErrInvalidInput, len(board))
}

func (f SimulationFlags) trials(cfg *config.Config) int {
	if f.Trials != 0 {
		return f.Trials
	}
	return cfg.Simulation.Trials
}

func (f SimulationFlags) seed(cfg *config.Config) int64 {
	if f.Seed != nil {
		return *f.Seed
	}
	return randutil.Seed(cfg.Simulation.Seed)
}

func (a *app) simulator(cfg *config.Config, f SimulationFlags, progress func(analysis.Progress)) (*analysis.Simulator, error) {
	logger, err := a.logger(cfg)
	if err != nil {
		return nil, err
	}
	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithBatchSize(cfg.Simulation.BatchSize),
	}
	workers := cfg.Simulation.Workers
	if f.Workers > 0 {
		workers = f.Workers
	}
	if workers > 0 {
		opts = append(opts, analysis.WithWorkers(workers))
	}
	if progress != nil {
		opts = append(opts, analysis.WithProgress(progress))
	}
	return analysis.NewSimulator(opts...), nil
}

// EquityCmd estimates hero's equity against a range.
type EquityCmd struct {
	SimulationFlags

	Hero  string   `arg:"" help:"Hero hole cards (e.g., 'AsKs')"`
	Range string   `short:"r" help:"Opponent range (e.g., 'TT+,AQs+'); empty means any two cards"`
	Hands []string `help:"Explicit opponent combos instead of a range (e.g., 'AhAd,KcKd')" sep:","`
	Chart string   `short:"c" help:"Use a preflop chart as the opponent range (e.g., 'button/raise')"`
	Exact bool     `short:"e" help:"Enumerate every combo and runout instead of sampling (needs a flop)"`
}

func (c *EquityCmd) Run(a *app) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	hero, err := poker.ParseCards(c.Hero)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	board, err := c.board()
	if err != nil {
		return err
	}
	villain, label, err := c.villain(a, cfg)
	if err != nil {
		return err
	}
	st := a.styles()

	if c.Exact {
		if villain == nil {
			return errors.New("--exact needs --range, --hands or --chart")
		}
		res, err := analysis.ExactEquity(hero, villain, board)
		if err != nil {
			return err
		}
		printBoard(a.out, st, board)
		tw := newTable(a.out)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			st.header.Render("hand"), st.header.Render("vs"), st.header.Render("equity"),
			st.header.Render("win"), st.header.Render("tie"))
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			st.hand.Render(poker.FormatCards(hero)), label, st.percent.Render(pct(res.Equity())),
			st.win.Render(pct(res.Win)), st.tie.Render(pct(res.Tie)))
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(a.out, "\nexact: %d combos, %d runouts\n", res.Combos, res.Runouts)
		return err
	}

	sampler := analysis.SamplerFor(villain)
	if len(c.Hands) > 0 {
		if sampler, err = analysis.ParseComboList(c.Hands); err != nil {
			return err
		}
	}

	seed := c.seed(cfg)
	a.console().Debug("simulating", "seed", seed, "trials", c.trials(cfg))
	var res analysis.EquityResult
	err = withProgress(c.Progress, a.errOut, "equity", func(progress func(analysis.Progress)) error {
		sim, err := a.simulator(cfg, c.SimulationFlags, progress)
		if err != nil {
			return err
		}
		res, err = sim.Equity(hero, sampler, board, c.trials(cfg), randutil.New(seed))
		return err
	})
	if err != nil {
		return err
	}

	printBoard(a.out, st, board)
	tw := newTable(a.out)
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		st.header.Render("hand"), st.header.Render("vs"), st.header.Render("equity"),
		st.header.Render("win"), st.header.Render("tie"))
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		st.hand.Render(poker.FormatCards(hero)), label, st.percent.Render(pct(res.Equity())),
		st.win.Render(pct(res.WinRate())), st.tie.Render(pct(res.TieRate())))
	if err := tw.Flush(); err != nil {
		return err
	}
	return printFooter(a.out, st, res, seed)
}

// villain resolves the opponent description into a range. A nil range
// means any two cards.
func (c *EquityCmd) villain(a *app, cfg *config.Config) (*analysis.Range, string, error) {
	set := 0
	for _, given := range []bool{c.Range != "", len(c.Hands) > 0, c.Chart != ""} {
		if given {
			set++
		}
	}
	if set > 1 {
		return nil, "", errors.New("use only one of --range, --hands and --chart")
	}

	switch {
	case len(c.Hands) > 0:
		r, err := analysis.FromNotations(c.Hands)
		return r, strings.Join(c.Hands, ","), err
	case c.Chart != "":
		position, action, ok := strings.Cut(c.Chart, "/")
		if !ok {
			return nil, "", fmt.Errorf("chart must be position/action, got %q", c.Chart)
		}
		book, err := a.charts(cfg)
		if err != nil {
			return nil, "", err
		}
		r, err := book.Range(position, action)
		return r, c.Chart, err
	case c.Range != "":
		r, err := analysis.ParseRange(c.Range)
		if err != nil {
			return nil, "", err
		}
		return r, c.Range, nil
	}
	return nil, "random", nil
}

func printFooter(w io.Writer, st styles, res analysis.EquityResult, seed int64) error {
	lo, hi := res.ConfidenceInterval()
	_, err := fmt.Fprintf(w, "\n%s\n", st.muted.Render(fmt.Sprintf(
		"%d trials in %v (seed %d, 95%% CI %s-%s, %d rejected)",
		res.Trials, res.Elapsed.Truncate(time.Millisecond), seed, pct(lo), pct(hi), res.Rejected)))
	return err
}

// RangeEquityCmd pits two ranges against each other.
type RangeEquityCmd struct {
	SimulationFlags

	RangeA string `arg:"" name:"range-a" help:"First range"`
	RangeB string `arg:"" name:"range-b" help:"Second range"`
}

func (c *RangeEquityCmd) Run(a *app) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	ra, err := analysis.ParseRange(c.RangeA)
	if err != nil {
		return fmt.Errorf("range-a: %w", err)
	}
	rb, err := analysis.ParseRange(c.RangeB)
	if err != nil {
		return fmt.Errorf("range-b: %w", err)
	}
	board, err := c.board()
	if err != nil {
		return err
	}

	seed := c.seed(cfg)
	a.console().Debug("simulating", "seed", seed, "trials", c.trials(cfg))
	var res analysis.RangeEquity
	err = withProgress(c.Progress, a.errOut, "range equity", func(progress func(analysis.Progress)) error {
		sim, err := a.simulator(cfg, c.SimulationFlags, progress)
		if err != nil {
			return err
		}
		res, err = sim.RangeVsRange(analysis.SamplerFor(ra), analysis.SamplerFor(rb), board, c.trials(cfg), randutil.New(seed))
		return err
	})
	if err != nil {
		return err
	}

	st := a.styles()
	printBoard(a.out, st, board)
	tw := newTable(a.out)
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", st.header.Render("range"), st.header.Render("equity"), st.header.Render("tie"))
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", st.hand.Render(rangeLabel(ra)), st.win.Render(pct(res.EquityA)), st.tie.Render(pct(res.TiePercentage)))
	_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", st.hand.Render(rangeLabel(rb)), st.win.Render(pct(res.EquityB)), st.tie.Render(pct(res.TiePercentage)))
	if err := tw.Flush(); err != nil {
		return err
	}
	return printFooter(a.out, st, res.EquityResult, seed)
}

func rangeLabel(r *analysis.Range) string {
	if r.IsEmpty() {
		return "random"
	}
	return r.String()
}
