package solver

// Cryptogram is one line of ciphertext ready to solve.
type Cryptogram struct {
	Text    string // lowercased line
	Letters int    // number of a-z letters
	Words   int    // runs of letters
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ParseCryptogram prepares a line of input. It returns false for lines with
// no letters and for comments, lines whose first non-letter prefix holds '#'.
func ParseCryptogram(line []byte) (Cryptogram, bool) {
	cg := Cryptogram{}

	i := 0
	// Skip any leading non word characters
	for ; i < len(line) && !isLetter(line[i]); i++ {
		// Commented line, ignore
		if line[i] == '#' {
			return cg, false
		}
	}
	if i == len(line) {
		return cg, false
	}

	text := make([]byte, len(line))
	inWord := false
	for j, c := range line {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		text[j] = c

		if isLetter(c) {
			cg.Letters++
			if !inWord {
				cg.Words++
			}
			inWord = true
		} else {
			inWord = false
		}
	}
	cg.Text = string(text)

	return cg, true
}

func (cg Cryptogram) String() string {
	return cg.Text
}
