// Package ngram scores text against letter n-gram statistics.
//
// A Model is built from lines of the form
//
//	TION 13168375
//	NTHE 11234972
//
// Every gram in one corpus has the same length N, between MinN and MaxN.
// Counts are turned into log10 probabilities and a text is scored by summing
// the log probability of each of its overlapping N-letter windows. Windows
// missing from the corpus score the model's floor, log10(0.01/total).
package ngram

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
)

// Gram lengths a corpus may use.
const (
	MinN = 2
	MaxN = 4
)

// Model is an immutable table of n-gram log probabilities.
type Model struct {
	grams map[string]float64
	n     int
	total int64
	floor float64
}

// Build reads "GRAM COUNT" lines from r. Blank lines are skipped. Grams are
// stored lowercase; a gram seen twice has its counts added. All grams must
// share one length between MinN and MaxN.
func Build(r io.Reader) (*Model, error) {
	return build(r, "")
}

// Load builds a Model from the corpus file at path. Files ending in ".xz"
// are decompressed while reading.
func Load(path string) (*Model, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, &DataError{Path: abs, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(abs, ".xz") {
		if r, err = xz.NewReader(f); err != nil {
			return nil, &DataError{Path: abs, Err: err}
		}
	}

	return build(r, abs)
}

func build(r io.Reader, path string) (*Model, error) {
	m := &Model{grams: make(map[string]float64)}
	counts := make(map[string]int64)

	s := bufio.NewScanner(r)
	lno := 0
	for s.Scan() {
		lno++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		gram, count, reason := parseLine(line)
		if reason != "" {
			return nil, &ParseError{Path: path, Line: lno, Text: line, Reason: reason}
		}

		if m.n == 0 {
			if len(gram) < MinN || len(gram) > MaxN {
				return nil, &ParseError{Path: path, Line: lno, Text: line,
					Reason: fmt.Sprintf("gram length %d not in %d..%d", len(gram), MinN, MaxN)}
			}
			m.n = len(gram)
		} else if len(gram) != m.n {
			return nil, &ParseError{Path: path, Line: lno, Text: line,
				Reason: "gram length " + strconv.Itoa(len(gram)) + " differs from " + strconv.Itoa(m.n)}
		}

		counts[gram] += count
		m.total += count
	}
	if err := s.Err(); err != nil {
		return nil, &DataError{Path: path, Err: err}
	}

	if m.total == 0 {
		return nil, &ParseError{Path: path, Reason: "no grams"}
	}

	total := float64(m.total)
	m.floor = math.Log10(0.01 / total)
	for g, c := range counts {
		m.grams[g] = math.Log10(float64(c) / total)
	}

	return m, nil
}

// parseLine splits one corpus line. A non-empty reason means the line is bad.
func parseLine(line string) (string, int64, string) {
	f := strings.Fields(line)
	if len(f) != 2 {
		return "", 0, "expected gram and count"
	}

	gram := strings.ToLower(f[0])
	for i := 0; i < len(gram); i++ {
		if gram[i] < 'a' || gram[i] > 'z' {
			return "", 0, "invalid characters in gram"
		}
	}

	count, err := strconv.ParseInt(f[1], 10, 64)
	if err != nil {
		return "", 0, "invalid count"
	}
	if count <= 0 {
		return "", 0, "count must be positive"
	}

	return gram, count, ""
}

// Score returns the summed log probability of every N-letter window of text,
// lowercased first. A text shorter than N has no windows and scores 0.
func (m *Model) Score(text string) float64 {
	text = strings.ToLower(text)

	score := 0.0
	for i := 0; i+m.n <= len(text); i++ {
		if p, ok := m.grams[text[i:i+m.n]]; ok {
			score += p
		} else {
			score += m.floor
		}
	}
	return score
}

// N is the gram length.
func (m *Model) N() int { return m.n }

// Total is the sum of all raw counts in the corpus.
func (m *Model) Total() int64 { return m.total }

// Floor is the score of a window absent from the corpus.
func (m *Model) Floor() float64 { return m.floor }

// Len is the number of distinct grams.
func (m *Model) Len() int { return len(m.grams) }

// LogProb returns the stored log probability of gram.
func (m *Model) LogProb(gram string) (float64, bool) {
	p, ok := m.grams[strings.ToLower(gram)]
	return p, ok
}
