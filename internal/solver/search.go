package solver

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/jmccarv/subcrack/internal/keymap"
)

// EventKind tells what happened in an Event.
type EventKind int

const (
	// EventRefine is a kept swap during refinement; Score is the bigram score.
	EventRefine EventKind = iota
	// EventCommit is a kept swap during the search; Score is the quadgram score.
	EventCommit
	// EventDoOver is a restart from the seed key; Score is the seed's score.
	EventDoOver
)

func (k EventKind) String() string {
	switch k {
	case EventRefine:
		return "refine"
	case EventCommit:
		return "commit"
	case EventDoOver:
		return "do-over"
	}
	return "unknown"
}

// Event reports progress of a solve.
type Event struct {
	Kind      EventKind
	Pass      int // refinement pass
	Step      int // refinement position in the standard order
	Iteration int // search iteration
	DoOvers   int
	Score     float64
	Words     int
}

// Search is a random-swap hill climb over keys. Each iteration swaps two
// cipher letters of the best key and keeps the result only if its quadgram
// score is strictly higher. After RestartAfter failures in a row, while the
// best word count is below WordTarget, it starts over from the seed key. It
// stops after MaxNoChange failures in a row or MaxDoOvers restarts.
//
// Words defaults to DefaultWordList and Rand to NewRand(0).
type Search struct {
	Quadgrams Scorer
	Bigrams   Scorer // optional, scores committed candidates only
	Words     *WordList
	Rand      *rand.Rand
	Fixed     [26]bool // cipher letters never swapped

	MaxNoChange  int
	RestartAfter int
	MaxDoOvers   int // <= 0 disables restarts
	WordTarget   int
	TopN         int

	Logger  *slog.Logger
	OnEvent func(Event)
}

// SearchResult is the outcome of Search.Run.
type SearchResult struct {
	Best          Candidate
	BestWords     int // most words seen in any trial
	Iterations    int
	DoOvers       int
	Interrupted   bool
	Top           []Candidate
	RestartScores []float64 // best score reached before each do-over
}

func (s *Search) evaluate(cipherText string, words *WordList, m keymap.Mapping) Candidate {
	c := decode(cipherText, m)
	c.Words = words.Count(c.Text)
	c.Score = s.Quadgrams.Score(c.Text)
	return c
}

func (s *Search) emit(e Event) {
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

func (s *Search) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Search) scoreBigrams(c *Candidate) {
	if s.Bigrams != nil {
		c.BigramScore = s.Bigrams.Score(c.Text)
	}
}

// Run searches from seed. ctx is checked every iteration; when it is done Run
// returns the best key so far with Interrupted set.
func (s *Search) Run(ctx context.Context, cipherText string, seed keymap.Mapping) SearchResult {
	res := SearchResult{}
	top := newSolutionSet(s.TopN)
	log := s.logger()
	words := s.Words
	if words == nil {
		words = DefaultWordList()
	}
	rng := s.Rand
	if rng == nil {
		rng = NewRand(0)
	}

	var free []int
	for c, fixed := range s.Fixed {
		if !fixed {
			free = append(free, c)
		}
	}

	best := s.evaluate(cipherText, words, seed)
	s.scoreBigrams(&best)
	bestWords := best.Words
	top.add(best)
	numNoChange := 0

	// With fewer than two free letters there is nothing to swap.
	for len(free) > 1 && numNoChange < s.MaxNoChange && (s.MaxDoOvers <= 0 || res.DoOvers < s.MaxDoOvers) {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}

		// Stuck close to the limit without enough words: start back from the seed.
		if s.MaxDoOvers > 0 && numNoChange > s.RestartAfter && bestWords < s.WordTarget {
			log.Debug("do-over",
				"text", prefix(best.Text, 50),
				"words", bestWords,
				"target", s.WordTarget,
				"score", best.Score,
				"map", best.Mapping.String(),
			)
			res.RestartScores = append(res.RestartScores, best.Score)

			best = s.evaluate(cipherText, words, seed)
			s.scoreBigrams(&best)
			bestWords = best.Words
			numNoChange = 0
			res.DoOvers++
			s.emit(Event{Kind: EventDoOver, Iteration: res.Iterations, DoOvers: res.DoOvers, Score: best.Score, Words: bestWords})
		}

		// Two distinct free cipher letters, uniformly.
		i := rng.IntN(len(free))
		j := rng.IntN(len(free) - 1)
		if j >= i {
			j++
		}
		i, j = free[i], free[j]

		trial := best.Mapping
		trial.Swap(i, j)
		c := s.evaluate(cipherText, words, trial)
		res.Iterations++

		if c.Words > bestWords {
			bestWords = c.Words
		}

		if c.Score > best.Score {
			s.scoreBigrams(&c)
			best = c
			numNoChange = 0
			top.add(best)
			s.emit(Event{Kind: EventCommit, Iteration: res.Iterations, DoOvers: res.DoOvers, Score: best.Score, Words: best.Words})
		} else {
			numNoChange++
		}
	}

	res.Best = best
	res.BestWords = bestWords
	res.Top = top.list()
	return res
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
