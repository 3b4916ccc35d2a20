package analysis

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

// EquityResult holds the tallies of a Monte Carlo run. Trials counts valid
// trials only; rejected trials (a sampled hand colliding with known cards)
// are tracked separately and never enter the rates.
type EquityResult struct {
	Wins     int
	Ties     int
	Losses   int
	Trials   int
	Rejected int
	Elapsed  time.Duration
}

// WinRate returns the win rate (0.0 to 1.0)
func (e EquityResult) WinRate() float64 {
	if e.Trials == 0 {
		return 0.0
	}
	return float64(e.Wins) / float64(e.Trials)
}

// TieRate returns the tie rate (0.0 to 1.0)
func (e EquityResult) TieRate() float64 {
	if e.Trials == 0 {
		return 0.0
	}
	return float64(e.Ties) / float64(e.Trials)
}

// LossRate returns the loss rate (0.0 to 1.0)
func (e EquityResult) LossRate() float64 {
	if e.Trials == 0 {
		return 0.0
	}
	return float64(e.Losses) / float64(e.Trials)
}

// Equity returns the overall equity (0.0 to 1.0)
// Wins count as 1.0, ties count as 0.5
func (e EquityResult) Equity() float64 {
	if e.Trials == 0 {
		return 0.0
	}
	return (float64(e.Wins) + float64(e.Ties)*0.5) / float64(e.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	n := float64(e.Trials)
	if n == 0 {
		return 0.0, 0.0
	}
	equity := e.Equity()

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

func (e *EquityResult) add(o EquityResult) {
	e.Wins += o.Wins
	e.Ties += o.Ties
	e.Losses += o.Losses
	e.Trials += o.Trials
	e.Rejected += o.Rejected
}

// RangeEquity is the result of pitting two ranges against each other. The
// embedded tallies are from range A's side.
type RangeEquity struct {
	EquityResult
	EquityA       float64
	EquityB       float64
	TiePercentage float64
}

// Progress reports how far a simulation has got.
type Progress struct {
	Done    int
	Total   int
	Elapsed time.Duration
}

// Simulator runs Monte Carlo equity calculations across a pool of workers.
// Results are deterministic for a given seed and worker count.
type Simulator struct {
	workers   int
	batchSize int
	logger    zerolog.Logger
	clock     quartz.Clock
	progress  func(Progress)
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithWorkers sets the number of parallel workers (minimum 1).
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = max(n, 1) }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

// WithClock sets the clock used to time runs.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) { s.clock = clock }
}

// WithProgress registers a callback invoked after every batch of trials.
// Calls are serialised but may come from any worker goroutine.
func WithProgress(fn func(Progress)) Option {
	return func(s *Simulator) { s.progress = fn }
}

// WithBatchSize sets how many trials a worker runs between progress reports.
func WithBatchSize(n int) Option {
	return func(s *Simulator) { s.batchSize = max(n, 1) }
}

// NewSimulator creates a simulator. By default it uses one worker per CPU
// (capped at 8), a real clock and a disabled logger.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		workers:   min(runtime.NumCPU(), 8),
		batchSize: 1000,
		logger:    zerolog.Nop(),
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// outcome of one trial
type outcome uint8

const (
	outcomeWin outcome = iota
	outcomeTie
	outcomeLoss
	outcomeRejected
)

// trialFunc plays one trial with worker-private state.
type trialFunc func(rng *rand.Rand, deck *poker.Deck) outcome

// Equity estimates hero's equity against villain over trials random
// completions of board. Each trial draws a villain hand, deals the rest of
// the board from a deck without the known cards and compares the two best
// seven-card hands.
func (s *Simulator) Equity(hero []poker.Card, villain HandSampler, board []poker.Card, trials int, rng *rand.Rand) (EquityResult, error) {
	if err := validateTrials(trials); err != nil {
		return EquityResult{}, err
	}
	if len(hero) != 2 {
		return EquityResult{}, fmt.Errorf("%w: hero needs 2 cards, got %d", poker.ErrInvalidInput, len(hero))
	}
	if err := validateBoard(board); err != nil {
		return EquityResult{}, err
	}
	if err := poker.CheckDistinct(hero, board); err != nil {
		return EquityResult{}, err
	}
	if villain == nil {
		return EquityResult{}, fmt.Errorf("%w: no opponent sampler", poker.ErrInvalidInput)
	}

	heroHand := poker.NewHand(hero...)
	boardHand := poker.NewHand(board...)
	known := heroHand | boardHand
	pool := villain.Without(known)
	if pool.Len() == 0 {
		return EquityResult{}, fmt.Errorf("%w: every opponent hand collides with %s", poker.ErrUnreachableRange, known)
	}
	need := 5 - len(board)

	result, err := s.run(trials, rng, func(rng *rand.Rand, deck *poker.Deck) outcome {
		opp, ok := pool.SampleHand(0, rng)
		if !ok {
			return outcomeRejected
		}
		full, ok := completeBoard(deck, boardHand, known|opp, need)
		if !ok {
			return outcomeRejected
		}
		return showdown(heroHand|full, opp|full)
	})
	if err != nil {
		return result, err
	}
	if result.Trials == 0 {
		return result, fmt.Errorf("%w: all %d trials rejected", poker.ErrUnreachableRange, result.Rejected)
	}

	s.logger.Debug().
		Str("hero", poker.FormatCards(hero)).
		Str("board", poker.FormatCards(board)).
		Int("trials", result.Trials).
		Int("rejected", result.Rejected).
		Float64("equity", result.Equity()).
		Dur("elapsed", result.Elapsed).
		Msg("equity simulation complete")
	return result, nil
}

// RangeVsRange estimates the equity of range a against range b. Both sides
// are sampled independently every trial; trials where the two hands share a
// card are rejected.
func (s *Simulator) RangeVsRange(a, b HandSampler, board []poker.Card, trials int, rng *rand.Rand) (RangeEquity, error) {
	if err := validateTrials(trials); err != nil {
		return RangeEquity{}, err
	}
	if err := validateBoard(board); err != nil {
		return RangeEquity{}, err
	}
	if err := poker.CheckDistinct(board); err != nil {
		return RangeEquity{}, err
	}
	if a == nil || b == nil {
		return RangeEquity{}, fmt.Errorf("%w: both ranges need a sampler", poker.ErrInvalidInput)
	}

	boardHand := poker.NewHand(board...)
	poolA, poolB := a.Without(boardHand), b.Without(boardHand)
	if poolA.Len() == 0 || poolB.Len() == 0 {
		return RangeEquity{}, fmt.Errorf("%w: a range is blocked by the board %s", poker.ErrUnreachableRange, boardHand)
	}
	need := 5 - len(board)

	result, err := s.run(trials, rng, func(rng *rand.Rand, deck *poker.Deck) outcome {
		ha, okA := poolA.SampleHand(0, rng)
		hb, okB := poolB.SampleHand(0, rng)
		if !okA || !okB || ha.Overlaps(hb) {
			return outcomeRejected
		}
		full, ok := completeBoard(deck, boardHand, boardHand|ha|hb, need)
		if !ok {
			return outcomeRejected
		}
		return showdown(ha|full, hb|full)
	})
	if err != nil {
		return RangeEquity{}, err
	}
	if result.Trials == 0 {
		return RangeEquity{}, fmt.Errorf("%w: all %d trials had overlapping hands", poker.ErrUnreachableRange, result.Rejected)
	}

	s.logger.Debug().
		Str("board", poker.FormatCards(board)).
		Int("trials", result.Trials).
		Int("rejected", result.Rejected).
		Dur("elapsed", result.Elapsed).
		Msg("range equity simulation complete")

	n := float64(result.Trials)
	return RangeEquity{
		EquityResult:  result,
		EquityA:       result.Equity(),
		EquityB:       (float64(result.Losses) + float64(result.Ties)*0.5) / n,
		TiePercentage: float64(result.Ties) / n,
	}, nil
}

// run splits trials across workers, each with a generator forked from rng
// in worker order, and sums the tallies.
func (s *Simulator) run(trials int, rng *rand.Rand, trial trialFunc) (EquityResult, error) {
	start := s.clock.Now()
	workers := max(min(s.workers, trials), 1)
	per, extra := trials/workers, trials%workers

	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = randutil.Fork(rng)
	}

	var (
		done       atomic.Int64
		progressMu sync.Mutex
		resultsMu  sync.Mutex
		total      EquityResult
	)
	report := func(n int) {
		d := done.Add(int64(n))
		if s.progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		s.progress(Progress{Done: int(d), Total: trials, Elapsed: s.clock.Since(start)})
	}

	var g errgroup.Group
	for w := range workers {
		n := per
		if w < extra {
			n++
		}
		workerRng := rngs[w]
		g.Go(func() error {
			deck := poker.NewDeck(workerRng)
			var local EquityResult
			for i := 0; i < n; i++ {
				switch trial(workerRng, deck) {
				case outcomeWin:
					local.Wins++
				case outcomeTie:
					local.Ties++
				case outcomeLoss:
					local.Losses++
				default:
					local.Rejected++
				}
				if (i+1)%s.batchSize == 0 || i == n-1 {
					report(i%s.batchSize + 1)
				}
			}
			local.Trials = local.Wins + local.Ties + local.Losses

			resultsMu.Lock()
			total.add(local)
			resultsMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	total.Elapsed = s.clock.Since(start)
	return total, nil
}

// completeBoard deals the missing board cards from a deck without dead.
func completeBoard(deck *poker.Deck, board, dead poker.Hand, need int) (poker.Hand, bool) {
	if need == 0 {
		return board, true
	}
	deck.Reset(dead)
	cards, err := deck.Deal(need)
	if err != nil {
		return 0, false
	}
	return board | poker.NewHand(cards...), true
}

func showdown(a, b poker.Hand) outcome {
	sa, sb := poker.Evaluate(a), poker.Evaluate(b)
	switch {
	case sa > sb:
		return outcomeWin
	case sa < sb:
		return outcomeLoss
	}
	return outcomeTie
}

func validateTrials(trials int) error {
	if trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", poker.ErrInvalidInput, trials)
	}
	return nil
}

func validateBoard(board []poker.Card) error {
	if len(board) > 5 {
		return fmt.Errorf("%w: board has %d cards", poker.ErrInvalidInput, len(board))
	}
	return nil
}

// CalculateEquity is a one-call helper: it parses hero and board cards and
// an opponent range (empty means any two cards) and runs a default
// simulator seeded with seed.
func CalculateEquity(hero, board []string, opponentRange string, trials int, seed int64) (EquityResult, error) {
	heroCards, err := poker.ParseCardList(hero)
	if err != nil {
		return EquityResult{}, err
	}
	boardCards, err := poker.ParseCardList(board)
	if err != nil {
		return EquityResult{}, err
	}
	r, err := ParseRange(opponentRange)
	if err != nil {
		return EquityResult{}, err
	}
	return NewSimulator().Equity(heroCards, SamplerFor(r), boardCards, trials, randutil.New(seed))
}
