package solver

import (
	"fmt"

	"github.com/jmccarv/subcrack/internal/keymap"
)

// Scorer rates how plausible a text is; higher is better.
type Scorer interface {
	Score(text string) float64
}

// Candidate is one key and what it makes of the ciphertext.
type Candidate struct {
	Mapping     keymap.Mapping
	Text        string
	Score       float64 // quadgram score
	BigramScore float64
	Words       int // recognized words in Text
}

// decode fills in the text of a candidate key. Scores are left to the caller
// so each stage only pays for the model it uses.
func decode(cipherText string, m keymap.Mapping) Candidate {
	return Candidate{Mapping: m, Text: keymap.Apply(cipherText, m)}
}

func (c Candidate) String() string {
	return fmt.Sprintf("Score: %0.4f  Words: %d  %s", c.Score, c.Words, c.Text)
}
