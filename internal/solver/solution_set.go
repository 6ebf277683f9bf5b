package solver

import (
	"sort"
)

// solutionSet keeps the best distinct decodes seen during a search.
type solutionSet struct {
	set  []Candidate
	seen map[string]bool
	nr   int
}

func newSolutionSet(size int) *solutionSet {
	if size < 1 {
		size = 1
	}
	return &solutionSet{make([]Candidate, 0, size+1), make(map[string]bool), size}
}

// return true if we added c to the set
func (ss *solutionSet) add(c Candidate) bool {
	if ss.seen[c.Text] {
		return false
	}
	ss.seen[c.Text] = true

	if len(ss.set) >= ss.nr {
		if c.Score <= ss.set[len(ss.set)-1].Score {
			return false
		}
	}

	ss.set = append(ss.set, c)
	sort.SliceStable(ss.set, func(i, j int) bool { return ss.set[i].Score > ss.set[j].Score })

	if len(ss.set) > ss.nr {
		ss.set = ss.set[:ss.nr]
	}

	return true
}

func (ss *solutionSet) list() []Candidate {
	return append([]Candidate(nil), ss.set...)
}
