package solver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWordList(t *testing.T) {
	wl := DefaultWordList()
	assert.Equal(t, len(CommonWords), wl.Len())
	for _, w := range wl.Words() {
		assert.GreaterOrEqual(t, len(w), MinWordLen)
	}
}

func TestWordListCount(t *testing.T) {
	wl := DefaultWordList()

	// the x2, that, then
	assert.Equal(t, 4, wl.Count(testPlain))
	assert.Equal(t, 0, wl.Count("qqqqzzzz"))
	assert.Equal(t, 0, wl.Count(""))
}

func TestWordListCountNonOverlapping(t *testing.T) {
	wl := NewWordList("aba")
	assert.Equal(t, 1, wl.Count("ababa"))
	assert.Equal(t, 2, wl.Count("abaaba"))
}

func TestNewWordList(t *testing.T) {
	wl := NewWordList("The", "the", "of", " and ", "")
	assert.Equal(t, []string{"the", "and"}, wl.Words())
}

func TestReadWordList(t *testing.T) {
	in := "THE 100\nOF 95\nAND 80\nHAVE 85\n\nTHAT 10\n"

	wl, err := ReadWordList(strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "have", "and", "that"}, wl.Words())

	wl, err = ReadWordList(strings.NewReader(in), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "have"}, wl.Words())
}

func TestReadWordListErrors(t *testing.T) {
	for _, in := range []string{
		"THE 100\nAND\n",
		"THE lots\n",
		"TH3 10\n",
		"OF 10\nTO 9\n",
		"",
	} {
		_, err := ReadWordList(strings.NewReader(in), 0)
		assert.Error(t, err, in)
	}

	_, err := ReadWordList(strings.NewReader("THE 100\nAND\n"), 0)
	assert.ErrorContains(t, err, "line 2")
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freq.txt")
	require.NoError(t, os.WriteFile(path, []byte("WITH 5\nFROM 7\n"), 0o644))

	wl, err := LoadWordList(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"from", "with"}, wl.Words())

	_, err = LoadWordList(filepath.Join(t.TempDir(), "missing.txt"), 0)
	assert.Error(t, err)
}
