// Package keymap holds substitution keys over the 26 lowercase letters.
package keymap

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Mapping sends cipher letter index i (0 = 'a') to plain letter index
// Mapping[i]. A valid Mapping is a permutation of 0..25.
type Mapping [26]int

// StandardOrder lists the plain letters of English by descending use:
// e t a o s n i h r l d w u m g f c y p b z x v q k j
var StandardOrder = [26]int{4, 19, 0, 14, 18, 13, 8, 7, 17, 11, 3, 22, 20, 12, 6, 5, 2, 24, 15, 1, 25, 23, 21, 16, 10, 9}

// StandardLetters is StandardOrder spelled out.
const StandardLetters = "etaosnihrldwumgfcypbzxvqkj"

// Identity maps every letter to itself.
func Identity() Mapping {
	var m Mapping
	for i := range m {
		m[i] = i
	}
	return m
}

// Valid reports whether m is a bijection on the alphabet.
func (m Mapping) Valid() bool {
	var seen [26]bool
	for _, p := range m {
		if p < 0 || p >= 26 || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// Swap exchanges the plain letters assigned to cipher letters i and j.
func (m *Mapping) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

// IndexOf returns the cipher letter currently mapped to plain, or -1.
func (m Mapping) IndexOf(plain int) int {
	for i, p := range m {
		if p == plain {
			return i
		}
	}
	return -1
}

// Inverse returns the mapping from plain back to cipher letters.
func (m Mapping) Inverse() Mapping {
	var inv Mapping
	for i, p := range m {
		inv[p] = i
	}
	return inv
}

// Apply substitutes every lowercase ASCII letter of text through m. All other
// bytes, uppercase letters included, pass through unchanged. Apply with m
// deciphers; Apply with m.Inverse() enciphers.
func Apply(text string, m Mapping) string {
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' {
			c = byte('a' + m[c-'a'])
		}
		out[i] = c
	}
	return string(out)
}

// Key returns the plain letter for each cipher letter a..z.
func (m Mapping) Key() string {
	var b [26]byte
	for i, p := range m {
		b[i] = byte('a' + p)
	}
	return string(b[:])
}

// String renders m in standard frequency order of the plain letters as
// cipher-plain pairs, e.g. "q-e,x-t,...".
func (m Mapping) String() string {
	pairs := make([]string, 0, 26)
	for _, p := range StandardOrder {
		c := m.IndexOf(p)
		if c < 0 {
			pairs = append(pairs, fmt.Sprintf("?-%c", 'a'+p))
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%c-%c", 'a'+c, 'a'+p))
	}
	return strings.Join(pairs, ",")
}

// Hint pins some cipher letters to plain letters. Unpinned entries are -1.
type Hint [26]int

// NewHint returns a Hint with nothing pinned.
func NewHint() Hint {
	var h Hint
	for i := range h {
		h[i] = -1
	}
	return h
}

var rxKey = regexp.MustCompile(`\s*([A-Z]+=[A-Z]+)(?:[ ,]|$)`)

// Parse reads cipher=plain pairs such as "Q=T X=H" or "QXB=THE". Case is
// ignored. Pairs that contradict each other are an error.
func Parse(line string) (Hint, error) {
	h := NewHint()

	mappings := rxKey.FindAllStringSubmatch(strings.ToUpper(line), -1)
	if len(mappings) == 0 {
		return h, fmt.Errorf("no key pairs in %q", line)
	}

	var used [26]int
	for i := range used {
		used[i] = -1
	}

	for _, m := range mappings {
		kv := strings.SplitN(m[1], "=", 2)
		if len(kv[0]) != len(kv[1]) {
			return h, fmt.Errorf("invalid key pair %s: sides differ in length", m[1])
		}

		// kv[0] is the encrypted side, kv[1] the decrypted side
		for i := 0; i < len(kv[0]); i++ {
			c, p := int(kv[0][i]-'A'), int(kv[1][i]-'A')
			if h[c] >= 0 && h[c] != p {
				return h, fmt.Errorf("cipher %c mapped to both %c and %c", 'A'+c, 'A'+h[c], 'A'+p)
			}
			if used[p] >= 0 && used[p] != c {
				return h, fmt.Errorf("plain %c claimed by both %c and %c", 'A'+p, 'A'+used[p], 'A'+c)
			}
			h[c] = p
			used[p] = c
		}
	}

	return h, nil
}

// Empty reports whether nothing is pinned.
func (h Hint) Empty() bool {
	for _, p := range h {
		if p >= 0 {
			return false
		}
	}
	return true
}

// Apply moves every pinned pair into m by swapping, so m stays a bijection.
func (h Hint) Apply(m *Mapping) {
	for c, p := range h {
		if p < 0 {
			continue
		}
		m.Swap(c, m.IndexOf(p))
	}
}

// Fixed marks the pinned cipher letters.
func (h Hint) Fixed() [26]bool {
	var f [26]bool
	for c, p := range h {
		f[c] = p >= 0
	}
	return f
}

func (h Hint) String() string {
	var b bytes.Buffer
	for c, p := range h {
		if p < 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c=%c", 'A'+c, 'A'+p)
	}
	return b.String()
}
