// Package freq does single-letter frequency analysis of ciphertext.
package freq

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jmccarv/subcrack/internal/keymap"
)

// English letter frequencies a..z, from a large corpus.
var English = [26]float64{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // a-g
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // h-n
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // o-u
	0.00978, 0.0236, 0.0015, 0.01974, 0.00074, // v-z
}

// LetterCount is a letter and how often it occurs.
type LetterCount struct {
	Letter byte
	Count  int
}

// Count tallies each letter of text, folding case. Other bytes are ignored.
func Count(text string) [26]int {
	var counts [26]int
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z':
			counts[c-'a']++
		case c >= 'A' && c <= 'Z':
			counts[c-'A']++
		}
	}
	return counts
}

// Rank orders all 26 letters by descending count. Equal counts are ordered
// alphabetically so the ranking is reproducible.
func Rank(counts [26]int) []LetterCount {
	ranked := make([]LetterCount, 26)
	for i, n := range counts {
		ranked[i] = LetterCount{Letter: byte('a' + i), Count: n}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Letter < ranked[j].Letter
	})
	return ranked
}

// Analyze guesses a key by pairing the i-th most frequent cipher letter with
// the i-th letter of keymap.StandardOrder. The result is always a bijection.
func Analyze(cipherText string) keymap.Mapping {
	var m keymap.Mapping
	for i, lc := range Rank(Count(cipherText)) {
		m[lc.Letter-'a'] = keymap.StandardOrder[i]
	}
	return m
}

// Fit is the chi-squared distance between the letter counts of text and the
// counts English would predict for the same number of letters. Lower is more
// English-like; a text without letters scores 0.
func Fit(text string) float64 {
	counts := Count(text)

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return 0
	}

	obs := make([]float64, 26)
	exp := make([]float64, 26)
	for i, n := range counts {
		obs[i] = float64(n)
		exp[i] = English[i] * float64(total)
	}
	return stat.ChiSquare(obs, exp)
}
