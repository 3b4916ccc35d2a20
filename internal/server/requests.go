package server

import (
	"fmt"
	"slices"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

type equityRequest struct {
	Hero   []string `json:"hero"`
	Range  string   `json:"range,omitempty"`
	Hands  []string `json:"hands,omitempty"`
	Board  []string `json:"board,omitempty"`
	Trials int      `json:"trials,omitempty"`
	Seed   *int64   `json:"seed,omitempty"`
	Exact  bool     `json:"exact,omitempty"`
}

// equityInput is a validated equity request.
type equityInput struct {
	hero    []poker.Card
	board   []poker.Card
	villain analysis.HandSampler
	// villainRange feeds exact enumeration; nil means any two cards, which
	// exact mode does not support.
	villainRange *analysis.Range
	trials       int
	seed         int64
	exact        bool
}

func (s *Server) parseEquityRequest(req equityRequest) (equityInput, error) {
	var in equityInput
	hero, err := parseHole(req.Hero)
	if err != nil {
		return in, err
	}
	board, err := parseBoard(req.Board, 0, 3, 4, 5)
	if err != nil {
		return in, err
	}
	if err := poker.CheckDistinct(hero, board); err != nil {
		return in, err
	}
	in.hero, in.board = hero, board

	switch {
	case req.Range != "" && len(req.Hands) > 0:
		return in, badRequest("send either range or hands, not both")
	case len(req.Hands) > 0:
		list, err := analysis.ParseComboList(req.Hands)
		if err != nil {
			return in, err
		}
		if in.villainRange, err = analysis.FromNotations(req.Hands); err != nil {
			return in, err
		}
		in.villain = list
	default:
		r, err := analysis.ParseRange(req.Range)
		if err != nil {
			return in, err
		}
		if !r.IsEmpty() {
			in.villainRange = r
		}
		in.villain = analysis.SamplerFor(r)
	}

	in.exact = req.Exact
	if in.exact {
		if in.villainRange == nil {
			return in, badRequest("exact equity needs a range or hands")
		}
		if len(board) < 3 {
			return in, badRequest("exact equity needs a board of at least 3 cards")
		}
		return in, nil
	}

	if in.trials, err = s.trials(req.Trials); err != nil {
		return in, err
	}
	in.seed = s.seed(req.Seed)
	return in, nil
}

type rangeEquityRequest struct {
	RangeA string   `json:"range_a"`
	RangeB string   `json:"range_b"`
	Board  []string `json:"board,omitempty"`
	Trials int      `json:"trials,omitempty"`
	Seed   *int64   `json:"seed,omitempty"`
}

type rangeEquityInput struct {
	a, b   analysis.HandSampler
	board  []poker.Card
	trials int
	seed   int64
}

func (s *Server) parseRangeEquityRequest(req rangeEquityRequest) (rangeEquityInput, error) {
	var in rangeEquityInput
	a, err := analysis.ParseRange(req.RangeA)
	if err != nil {
		return in, fmt.Errorf("range_a: %w", err)
	}
	b, err := analysis.ParseRange(req.RangeB)
	if err != nil {
		return in, fmt.Errorf("range_b: %w", err)
	}
	if in.board, err = parseBoard(req.Board, 0, 3, 4, 5); err != nil {
		return in, err
	}
	if in.trials, err = s.trials(req.Trials); err != nil {
		return in, err
	}
	in.a, in.b = analysis.SamplerFor(a), analysis.SamplerFor(b)
	in.seed = s.seed(req.Seed)
	return in, nil
}

// trials applies the configured default and rejects counts outside the
// configured bounds.
func (s *Server) trials(n int) (int, error) {
	lo, hi := s.cfg.Server.MinTrials, s.cfg.Server.MaxTrials
	if n == 0 {
		return min(max(s.cfg.Simulation.Trials, lo), hi), nil
	}
	if n < lo || n > hi {
		return 0, badRequest("trials must be between %d and %d, got %d", lo, hi, n)
	}
	return n, nil
}

// seed picks the request seed, then the configured one, then a random one.
// Zero always means random.
func (s *Server) seed(req *int64) int64 {
	seed := s.cfg.Simulation.Seed
	if req != nil {
		seed = *req
	}
	return randutil.Seed(seed)
}

func parseHole(strs []string) ([]poker.Card, error) {
	cards, err := poker.ParseCardList(strs)
	if err != nil {
		return nil, err
	}
	if len(cards) != 2 {
		return nil, fmt.Errorf("%w: hole cards must be 2 cards, got %d", poker.ErrInvalidInput, len(cards))
	}
	if err := poker.CheckDistinct(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// parseBoard parses board cards and checks the count is one of sizes.
func parseBoard(strs []string, sizes ...int) ([]poker.Card, error) {
	cards, err := poker.ParseCardList(strs)
	if err != nil {
		return nil, err
	}
	if slices.Contains(sizes, len(cards)) {
		if err := poker.CheckDistinct(cards); err != nil {
			return nil, err
		}
		return cards, nil
	}
	if len(cards) < 3 && !slices.Contains(sizes, 0) {
		return nil, fmt.Errorf("%w: board needs at least 3 cards, got %d", poker.ErrInsufficientCards, len(cards))
	}
	return nil, fmt.Errorf("%w: board must have %v cards, got %d", poker.ErrInvalidInput, sizes, len(cards))
}
