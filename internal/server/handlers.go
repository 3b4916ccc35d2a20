package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lox/pokerequity/analysis"
	"github.com/lox/pokerequity/charts"
	"github.com/lox/pokerequity/classification"
	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

type equityResponse struct {
	Equity    float64 `json:"equity"`
	Win       float64 `json:"win"`
	Tie       float64 `json:"tie"`
	Loss      float64 `json:"loss"`
	Trials    int     `json:"trials,omitempty"`
	Rejected  int     `json:"rejected,omitempty"`
	CILow     float64 `json:"ci_low,omitempty"`
	CIHigh    float64 `json:"ci_high,omitempty"`
	Seed      int64   `json:"seed,omitempty"`
	Combos    int     `json:"combos,omitempty"`
	Runouts   int     `json:"runouts,omitempty"`
	Exact     bool    `json:"exact,omitempty"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

func newEquityResponse(res analysis.EquityResult, seed int64) equityResponse {
	lo, hi := res.ConfidenceInterval()
	return equityResponse{
		Equity:    res.Equity(),
		Win:       res.WinRate(),
		Tie:       res.TieRate(),
		Loss:      res.LossRate(),
		Trials:    res.Trials,
		Rejected:  res.Rejected,
		CILow:     lo,
		CIHigh:    hi,
		Seed:      seed,
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
}

func newExactResponse(res analysis.ExactResult) equityResponse {
	return equityResponse{
		Equity:  res.Equity(),
		Win:     res.Win,
		Tie:     res.Tie,
		Loss:    res.Loss,
		Combos:  res.Combos,
		Runouts: res.Runouts,
		Exact:   true,
	}
}

// runEquity performs a validated equity request.
func (s *Server) runEquity(in equityInput, logger zerolog.Logger, progress func(analysis.Progress)) (equityResponse, error) {
	if in.exact {
		res, err := analysis.ExactEquity(in.hero, in.villainRange, in.board)
		if err != nil {
			return equityResponse{}, err
		}
		return newExactResponse(res), nil
	}
	res, err := s.simulator(logger, progress).Equity(in.hero, in.villain, in.board, in.trials, randutil.New(in.seed))
	if err != nil {
		return equityResponse{}, err
	}
	return newEquityResponse(res, in.seed), nil
}

func (s *Server) postEquity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req equityRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		in, err := s.parseEquityRequest(req)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp, err := s.runEquity(in, *zerolog.Ctx(r.Context()), nil)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

type rangeEquityResponse struct {
	EquityA   float64 `json:"equity_a"`
	EquityB   float64 `json:"equity_b"`
	Tie       float64 `json:"tie"`
	Trials    int     `json:"trials"`
	Rejected  int     `json:"rejected"`
	Seed      int64   `json:"seed"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

func (s *Server) postRangeEquity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rangeEquityRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		in, err := s.parseRangeEquityRequest(req)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		res, err := s.simulator(*zerolog.Ctx(r.Context()), nil).RangeVsRange(in.a, in.b, in.board, in.trials, randutil.New(in.seed))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, rangeEquityResponse{
			EquityA:   res.EquityA,
			EquityB:   res.EquityB,
			Tie:       res.TiePercentage,
			Trials:    res.Trials,
			Rejected:  res.Rejected,
			Seed:      in.seed,
			ElapsedMS: res.Elapsed.Milliseconds(),
		})
	}
}

type partitionRequest struct {
	Range string   `json:"range"`
	Board []string `json:"board"`
}

func (s *Server) postPartition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req partitionRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		rng, err := analysis.ParseRange(req.Range)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		board, err := parseBoard(req.Board, 3, 4, 5)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		result, err := classification.Partition(rng, board)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

type boardFilterRequest struct {
	Range   string   `json:"range"`
	Board   []string `json:"board"`
	Profile string   `json:"profile,omitempty"`
}

func (s *Server) postBoardFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req boardFilterRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		rng, err := analysis.ParseRange(req.Range)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		board, err := parseBoard(req.Board, 3, 4, 5)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		profile, err := classification.ParseProfile(req.Profile)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		kept, err := classification.FilterForBoard(rng, board, profile)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, newRangeResponse(kept))
	}
}

type drawsRequest struct {
	Hole  []string `json:"hole"`
	Board []string `json:"board"`
}

type drawsResponse struct {
	classification.DrawInfo
	Category poker.HandCategory          `json:"category"`
	Class    string                      `json:"class"`
	OutCards []string                    `json:"out_cards"`
	Texture  classification.BoardTexture `json:"texture"`
}

func (s *Server) postDraws() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drawsRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		hole, err := parseHole(req.Hole)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		board, err := parseBoard(req.Board, 3, 4, 5)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if err := poker.CheckDistinct(hole, board); err != nil {
			s.fail(w, r, err)
			return
		}
		cat, err := poker.Categorize(hole, board)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		boardHand := poker.NewHand(board...)
		info := classification.DetectDraws(poker.NewHand(hole...), boardHand)
		outs := make([]string, 0, info.Outs)
		for _, c := range info.OutCards.Cards() {
			outs = append(outs, c.String())
		}
		writeJSON(w, r, http.StatusOK, drawsResponse{
			DrawInfo: info,
			Category: cat,
			Class:    info.Class(),
			OutCards: outs,
			Texture:  classification.AnalyzeBoardTexture(boardHand),
		})
	}
}

type evaluateRequest struct {
	Cards  []string `json:"cards"`
	Versus []string `json:"versus,omitempty"`
}

type evaluatedHand struct {
	Category string   `json:"category"`
	Strength uint32   `json:"strength"`
	Cards    []string `json:"cards"`
	Kickers  []int    `json:"kickers"`
}

type evaluateResponse struct {
	Hand        evaluatedHand  `json:"hand"`
	Versus      *evaluatedHand `json:"versus,omitempty"`
	Outcome     string         `json:"outcome,omitempty"`
	Explanation string         `json:"explanation,omitempty"`
}

func newEvaluatedHand(h poker.EvaluatedHand) evaluatedHand {
	cards := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = c.String()
	}
	return evaluatedHand{
		Category: h.Category.String(),
		Strength: uint32(h.Strength),
		Cards:    cards,
		Kickers:  h.Kickers,
	}
}

func evaluateCards(strs []string) (poker.EvaluatedHand, error) {
	cards, err := poker.ParseCardList(strs)
	if err != nil {
		return poker.EvaluatedHand{}, err
	}
	if len(cards) > 7 {
		return poker.EvaluatedHand{}, badRequest("evaluate takes 5 to 7 cards, got %d", len(cards))
	}
	if err := poker.CheckDistinct(cards); err != nil {
		return poker.EvaluatedHand{}, err
	}
	return poker.BestOf(cards)
}

func (s *Server) postEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		hand, err := evaluateCards(req.Cards)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp := evaluateResponse{Hand: newEvaluatedHand(hand)}
		if len(req.Versus) > 0 {
			other, err := evaluateCards(req.Versus)
			if err != nil {
				s.fail(w, r, err)
				return
			}
			vs := newEvaluatedHand(other)
			outcome, why := poker.Explain(hand, other)
			resp.Versus, resp.Outcome, resp.Explanation = &vs, outcome.String(), why
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

type filterRequest struct {
	Range  string   `json:"range"`
	Action string   `json:"action"`
	Size   float64  `json:"size"`
	Street string   `json:"street,omitempty"`
	Board  []string `json:"board,omitempty"`
}

func (s *Server) postFilter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if !decodeRequest(w, r, &req) {
			return
		}
		rng, err := analysis.ParseRange(req.Range)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		action, err := analysis.ParseAction(req.Action)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if req.Size < 0 {
			s.fail(w, r, badRequest("size cannot be negative, got %g", req.Size))
			return
		}
		street, err := filterStreet(req.Street, req.Board)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, newRangeResponse(rng.FilterByAction(action, req.Size, street)))
	}
}

// filterStreet takes the street by name, or else infers it from the board.
func filterStreet(name string, board []string) (analysis.Street, error) {
	if name != "" {
		return analysis.ParseStreet(name)
	}
	cards, err := parseBoard(board, 0, 3, 4, 5)
	if err != nil {
		return "", err
	}
	return analysis.StreetForBoard(len(cards))
}

type notationWeight struct {
	Notation string  `json:"notation"`
	Weight   float64 `json:"weight"`
	Combos   int     `json:"combos"`
	Tier     string  `json:"tier"`
}

type rangeResponse struct {
	Range       string           `json:"range"`
	Notations   []notationWeight `json:"notations"`
	Combos      int              `json:"combos"`
	TotalWeight float64          `json:"total_weight"`
}

func newRangeResponse(r *analysis.Range) rangeResponse {
	entries := r.Entries()
	resp := rangeResponse{
		Range:       r.String(),
		Notations:   make([]notationWeight, 0, len(entries)),
		Combos:      r.ComboCount(),
		TotalWeight: r.TotalWeight(),
	}
	for _, e := range entries {
		resp.Notations = append(resp.Notations, notationWeight{
			Notation: e.Notation.String(),
			Weight:   e.Weight,
			Combos:   e.Notation.ComboCount(),
			Tier:     string(e.Notation.Tier()),
		})
	}
	return resp
}

type chartResponse struct {
	charts.Key
	Description string `json:"description,omitempty"`
	rangeResponse
	MinimumDefense *float64 `json:"minimum_defense_frequency,omitempty"`
}

func (s *Server) getChart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		chart, err := s.charts.Chart(vars["position"], vars["action"])
		if err != nil {
			s.fail(w, r, err)
			return
		}
		resp := chartResponse{
			Key:           chart.Key,
			Description:   chart.Description,
			rangeResponse: newRangeResponse(chart.Range()),
		}

		if bet := r.FormValue("bet"); bet != "" {
			b, err := strconv.ParseFloat(bet, 64)
			if err != nil {
				s.fail(w, r, badRequest("invalid bet %q", bet))
				return
			}
			p, err := strconv.ParseFloat(r.FormValue("pot"), 64)
			if err != nil || p <= 0 {
				s.fail(w, r, badRequest("a positive pot is required with bet"))
				return
			}
			mdf := charts.MinimumDefenseFrequency(b, p)
			resp.MinimumDefense = &mdf
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func (s *Server) getCharts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, s.charts.Keys())
	}
}

// fail records err on the request span and writes the error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	recordError(r.Context(), err)
	writeError(w, r, err)
}
