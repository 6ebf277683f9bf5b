// Package solver breaks monoalphabetic substitution ciphers.
//
// Solve runs three stages over a ciphertext:
//
//  1. frequency analysis pairs cipher letters with English letters by rank,
//  2. a Refiner swaps neighbouring letters of that guess under a bigram model,
//  3. a Search hill-climbs with random swaps under a quadgram model,
//     restarting from the refined key when it stalls without finding words.
//
// Cipher letters pinned by Options.Hint keep their plain letter through every
// stage.
//
// Every stage works on its own copy of the key and each Solve owns its random
// source, so independent solves may run concurrently.
package solver

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/jmccarv/subcrack/internal/freq"
	"github.com/jmccarv/subcrack/internal/keymap"
)

// Options tune a Solve. Start from DefaultOptions.
type Options struct {
	Passes            int // refinement passes
	MaxNoChange       int // failed search iterations in a row before stopping
	RestartAfter      int // failed iterations in a row before a do-over
	MaxDoOvers        int
	WordTargetDivisor int // word target is len(cipherText)/WordTargetDivisor
	TopN              int

	Seed  uint64
	Words *WordList    // nil means DefaultWordList
	Hint  *keymap.Hint // pairs pinned for the whole solve

	Logger  *slog.Logger
	OnEvent func(Event)
}

// DefaultOptions returns the standard search limits.
func DefaultOptions() Options {
	return Options{
		Passes:            10,
		MaxNoChange:       10000,
		RestartAfter:      9990,
		MaxDoOvers:        1000,
		WordTargetDivisor: 14,
		TopN:              3,
	}
}

// Result is the outcome of Solve.
type Result struct {
	Mapping     keymap.Mapping
	Text        string
	Score       float64 // quadgram score of Text
	BigramScore float64
	Words       int // most recognized words seen in any trial decode
	WordTarget  int

	Seed    keymap.Mapping // frequency analysis guess
	Refined keymap.Mapping // after refinement, the search's restart point

	Elapsed       time.Duration
	Iterations    int
	DoOvers       int
	Interrupted   bool
	Top           []Candidate
	RestartScores []float64
}

// MapString renders the key in standard frequency order as cipher-plain pairs.
func (r Result) MapString() string {
	return r.Mapping.String()
}

// ScoreSummary describes the best scores reached before each do-over.
type ScoreSummary struct {
	Restarts int
	Mean     float64
	StdDev   float64
	Max      float64
}

// Summary summarizes RestartScores. It is zero when there were no do-overs.
func (r Result) Summary() ScoreSummary {
	if len(r.RestartScores) == 0 {
		return ScoreSummary{}
	}

	data := stats.Float64Data(r.RestartScores)
	mean, _ := stats.Mean(data)
	sd, _ := stats.StandardDeviation(data)
	hi, _ := stats.Max(data)

	return ScoreSummary{
		Restarts: len(r.RestartScores),
		Mean:     mean,
		StdDev:   sd,
		Max:      hi,
	}
}

// NewRand returns the random source Solve uses for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Solve recovers the most probable key for cipherText. The text is lowercased
// first; non-letters are carried through to the decode. With the same seed and
// an uncancelled ctx the result is always the same.
func Solve(ctx context.Context, cipherText string, bigrams, quadgrams Scorer, opts Options) Result {
	start := time.Now()
	cipherText = strings.ToLower(cipherText)

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	words := opts.Words
	if words == nil {
		words = DefaultWordList()
	}

	res := Result{}
	if opts.WordTargetDivisor > 0 {
		res.WordTarget = len(cipherText) / opts.WordTargetDivisor
	}

	res.Seed = freq.Analyze(cipherText)
	var fixed [26]bool
	if opts.Hint != nil && !opts.Hint.Empty() {
		opts.Hint.Apply(&res.Seed)
		fixed = opts.Hint.Fixed()
		log.Debug("key hint", "pairs", opts.Hint.String())
	}
	log.Debug("frequency analysis", "map", res.Seed.String())

	m := res.Seed
	refiner := Refiner{Bigrams: bigrams, Passes: opts.Passes, Fixed: fixed, OnEvent: opts.OnEvent}
	refined := refiner.Refine(cipherText, &m)
	res.Refined = m
	log.Debug("refined", "bigram_score", refined.BigramScore, "map", m.String())

	search := Search{
		Quadgrams:    quadgrams,
		Bigrams:      bigrams,
		Words:        words,
		Rand:         NewRand(opts.Seed),
		Fixed:        fixed,
		MaxNoChange:  opts.MaxNoChange,
		RestartAfter: opts.RestartAfter,
		MaxDoOvers:   opts.MaxDoOvers,
		WordTarget:   res.WordTarget,
		TopN:         opts.TopN,
		Logger:       log,
		OnEvent:      opts.OnEvent,
	}
	sr := search.Run(ctx, cipherText, res.Refined)

	res.Mapping = sr.Best.Mapping
	res.Text = sr.Best.Text
	res.Score = sr.Best.Score
	res.BigramScore = sr.Best.BigramScore
	res.Words = sr.BestWords
	res.Iterations = sr.Iterations
	res.DoOvers = sr.DoOvers
	res.Interrupted = sr.Interrupted
	res.Top = sr.Top
	res.RestartScores = sr.RestartScores
	res.Elapsed = time.Since(start)

	log.Info("solved",
		"elapsed", res.Elapsed,
		"score", res.Score,
		"words", res.Words,
		"target", res.WordTarget,
		"iterations", res.Iterations,
		"do_overs", res.DoOvers,
		"interrupted", res.Interrupted,
	)
	return res
}
