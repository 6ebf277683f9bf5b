package solver

import (
	"github.com/jmccarv/subcrack/internal/keymap"
)

// Refiner nudges a frequency-analysis key toward a better one by trying to
// swap plain letters that sit next to each other in keymap.StandardOrder,
// keeping a swap only when it raises the bigram score. Each pass walks the
// order from the most frequent letter down, like one pass of a bubble sort.
type Refiner struct {
	Bigrams Scorer
	Passes  int
	Fixed   [26]bool // cipher letters that keep their plain letter
	OnEvent func(Event)
}

// Refine improves m in place and returns the best decode found. The
// returned BigramScore never drops below that of the starting key.
func (r *Refiner) Refine(cipherText string, m *keymap.Mapping) Candidate {
	best := decode(cipherText, *m)
	best.BigramScore = r.Bigrams.Score(best.Text)

	for pass := 0; pass < r.Passes; pass++ {
		for k := 0; k < len(keymap.StandardOrder)-1; k++ {
			i, j := m.IndexOf(keymap.StandardOrder[k]), m.IndexOf(keymap.StandardOrder[k+1])
			if r.Fixed[i] || r.Fixed[j] {
				continue
			}

			trial := *m
			trial.Swap(i, j)

			c := decode(cipherText, trial)
			c.BigramScore = r.Bigrams.Score(c.Text)
			if c.BigramScore <= best.BigramScore {
				continue
			}

			*m = trial
			best = c
			if r.OnEvent != nil {
				r.OnEvent(Event{Kind: EventRefine, Pass: pass, Step: k, Score: c.BigramScore})
			}
		}
	}

	return best
}
