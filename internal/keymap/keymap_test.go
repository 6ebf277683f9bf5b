package keymap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// affine key: 7 is coprime to 26, so this is a permutation
func testMapping() Mapping {
	var m Mapping
	for i := range m {
		m[i] = (i*7 + 3) % 26
	}
	return m
}

func TestStandardOrder(t *testing.T) {
	var m Mapping = StandardOrder
	assert.True(t, m.Valid())
	for i, p := range StandardOrder {
		assert.Equal(t, byte('a'+p), StandardLetters[i])
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Identity().Valid())
	assert.True(t, testMapping().Valid())

	m := Identity()
	m[3] = 4
	assert.False(t, m.Valid())

	m = Identity()
	m[0] = 26
	assert.False(t, m.Valid())
}

func TestSwapKeepsBijection(t *testing.T) {
	m := testMapping()
	for i := 0; i < 26; i++ {
		m.Swap(i, (i*5)%26)
		require.True(t, m.Valid())
	}
}

func TestApplyRoundTrip(t *testing.T) {
	m := testMapping()
	text := "thequickbrownfoxjumpsoverthelazydog"

	enc := Apply(text, m)
	assert.NotEqual(t, text, enc)
	assert.Equal(t, text, Apply(enc, m.Inverse()))
}

func TestApplyPassesNonLetters(t *testing.T) {
	m := testMapping()
	text := "Hello, World! 123 -- it's 9:45."

	out := Apply(text, m)
	require.Len(t, out, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'a' && c <= 'z' {
			assert.Equal(t, byte('a'+m[c-'a']), out[i])
		} else {
			assert.Equal(t, c, out[i], "byte %d", i)
		}
	}
}

func TestApplyIdentity(t *testing.T) {
	assert.Equal(t, "abc xyz", Apply("abc xyz", Identity()))
}

func TestInverse(t *testing.T) {
	m := testMapping()
	inv := m.Inverse()
	require.True(t, inv.Valid())
	for i := range m {
		assert.Equal(t, i, inv[m[i]])
	}
}

func TestString(t *testing.T) {
	s := Identity().String()
	assert.True(t, strings.HasPrefix(s, "e-e,t-t,a-a,o-o,"))
	assert.Len(t, strings.Split(s, ","), 26)

	m := Identity()
	m.Swap(0, 4) // a->e, e->a
	assert.True(t, strings.HasPrefix(m.String(), "a-e,t-t,e-a,"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", Identity().Key())
}

func TestParse(t *testing.T) {
	h, err := Parse("q=t X=H, BC=IN")
	require.NoError(t, err)

	assert.Equal(t, int('t'-'a'), h['q'-'a'])
	assert.Equal(t, int('h'-'a'), h['x'-'a'])
	assert.Equal(t, int('i'-'a'), h['b'-'a'])
	assert.Equal(t, int('n'-'a'), h['c'-'a'])
	assert.Equal(t, -1, h['z'-'a'])
	assert.Equal(t, "B=I C=N Q=T X=H", h.String())
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{
		"",
		"nothing here",
		"AB=C",
		"Q=T Q=H",
		"Q=T X=T",
	} {
		_, err := Parse(line)
		assert.Error(t, err, line)
	}
}

func TestHintApply(t *testing.T) {
	h, err := Parse("Q=T X=H A=E")
	require.NoError(t, err)
	assert.False(t, h.Empty())
	assert.True(t, NewHint().Empty())

	m := testMapping()
	h.Apply(&m)

	require.True(t, m.Valid())
	assert.Equal(t, int('t'-'a'), m['q'-'a'])
	assert.Equal(t, int('h'-'a'), m['x'-'a'])
	assert.Equal(t, int('e'-'a'), m['a'-'a'])
}

func TestHintFixed(t *testing.T) {
	h, err := Parse("Q=T A=E")
	require.NoError(t, err)

	f := h.Fixed()
	for c := range f {
		assert.Equal(t, c == 'q'-'a' || c == 'a'-'a', f[c], "cipher %c", 'a'+c)
	}
	assert.Equal(t, [26]bool{}, NewHint().Fixed())
}
