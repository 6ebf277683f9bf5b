package solver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// CommonWords are the most used English words of at least three letters.
var CommonWords = []string{
	"the", "and", "that", "have", "for", "not", "with", "you", "this", "but", "his", "from", "they",
	"say", "her", "she", "will", "one", "all", "would", "there", "their", "what", "out", "about", "who", "get", "which", "when",
	"make", "can", "like", "time", "just", "him", "know", "take", "people", "into", "year", "your", "good", "some", "could",
	"them", "see", "other", "than", "then", "now", "look", "only", "come", "its", "over", "think", "also", "back", "after",
	"use", "two", "how", "our", "work", "first", "well", "way", "even", "new", "want", "because", "any", "these", "give",
	"day", "most",
}

// MinWordLen is the shortest word a WordList keeps.
const MinWordLen = 3

// WordList is a set of words recognized in candidate decodes.
type WordList struct {
	words []string
}

// NewWordList lowercases words and drops duplicates and words shorter than
// MinWordLen, keeping the given order.
func NewWordList(words ...string) *WordList {
	wl := &WordList{}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) < MinWordLen || seen[w] {
			continue
		}
		seen[w] = true
		wl.words = append(wl.words, w)
	}
	return wl
}

// DefaultWordList is NewWordList(CommonWords...).
func DefaultWordList() *WordList {
	return NewWordList(CommonWords...)
}

// Count returns how many times the words occur in text, as non-overlapping
// substrings. Word boundaries are not required; decodes have no spaces.
func (wl *WordList) Count(text string) int {
	n := 0
	for _, w := range wl.words {
		n += strings.Count(text, w)
	}
	return n
}

// Len is the number of words in the list.
func (wl *WordList) Len() int { return len(wl.words) }

// Words returns a copy of the list.
func (wl *WordList) Words() []string {
	return append([]string(nil), wl.words...)
}

type freqWord struct {
	word string
	freq int
}

// Given a line of word frequencies like:
// word xxx
// where word consists only of the letters A-Z and xxx is how often the word
// appears in English text, return the parsed word.
func parseFreqLine(line []byte) (freqWord, error) {
	l := bytes.Fields(line)
	w := freqWord{}

	if len(l) != 2 {
		return w, fmt.Errorf("invalid input (not enough fields)")
	}

	f, err := strconv.Atoi(string(l[1]))
	if err != nil {
		return w, fmt.Errorf("invalid input (invalid number)")
	}
	w.freq = f

	letters := bytes.ToLower(l[0])
	for _, x := range letters {
		if x < 'a' || x > 'z' {
			return w, fmt.Errorf("invalid input (invalid characters in word)")
		}
	}
	w.word = string(letters)
	return w, nil
}

// ReadWordList reads "WORD COUNT" lines and keeps the limit most frequent
// words of at least MinWordLen letters. limit <= 0 keeps them all.
func ReadWordList(r io.Reader, limit int) (*WordList, error) {
	var words []freqWord

	s := bufio.NewScanner(r)
	lno := 0
	for s.Scan() {
		lno++
		if len(bytes.TrimSpace(s.Bytes())) == 0 {
			continue
		}
		w, err := parseFreqLine(s.Bytes())
		if err != nil {
			return nil, fmt.Errorf("%v on line %v", err, lno)
		}
		if len(w.word) < MinWordLen {
			continue
		}
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Most frequent first; ties keep file order.
	sort.SliceStable(words, func(i, j int) bool { return words[j].freq < words[i].freq })

	list := make([]string, 0, len(words))
	for _, w := range words {
		list = append(list, w.word)
	}
	wl := NewWordList(list...)
	if limit > 0 && len(wl.words) > limit {
		wl.words = wl.words[:limit]
	}
	if wl.Len() == 0 {
		return nil, fmt.Errorf("no words of %d or more letters", MinWordLen)
	}
	return wl, nil
}

// LoadWordList reads a word frequency file; see ReadWordList.
func LoadWordList(fn string, limit int) (*WordList, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wl, err := ReadWordList(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return wl, nil
}
