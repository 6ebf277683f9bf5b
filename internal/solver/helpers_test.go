package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmccarv/subcrack/internal/keymap"
	"github.com/jmccarv/subcrack/internal/ngram"
)

const (
	testQuadgrams = "TION 1000\nNTHE 900\nTHER 800\nTHAT 700\n"
	testBigrams   = "TH 500\nHE 400\nIN 300\nER 200\n"
	testPlain     = "thenthethatthin"
)

func model(t *testing.T, corpus string) *ngram.Model {
	t.Helper()
	m, err := ngram.Build(strings.NewReader(corpus))
	require.NoError(t, err)
	return m
}

func idx(c byte) int { return int(c - 'a') }

// testKey is the cipher->plain key the fixtures are enciphered with.
func testKey() keymap.Mapping {
	var k keymap.Mapping
	for i := range k {
		k[i] = (i*9 + 4) % 26
	}
	return k
}

func encipher(plain string, key keymap.Mapping) string {
	return keymap.Apply(plain, key.Inverse())
}

// eventLog collects events and checks that scores only fall at a do-over.
type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) { l.events = append(l.events, e) }

func (l *eventLog) of(kind EventKind) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (l *eventLog) requireSearchMonotonic(t *testing.T) {
	t.Helper()
	var last float64
	started := false
	for _, e := range l.events {
		switch e.Kind {
		case EventDoOver:
			last, started = e.Score, true
		case EventCommit:
			if started {
				require.Greater(t, e.Score, last, "commit at iteration %d", e.Iteration)
			}
			last, started = e.Score, true
		}
	}
}
