package match

import (
	"fmt"
	"sort"
)

// MinScore is the similarity a known name needs to be suggested.
const MinScore = 0.5

// Candidate is a known name scored against an input.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a list of candidates, best first.
type CandidateList []Candidate

// Rank scores every name against input and returns them best first.
// Ties keep the order of names.
func Rank(input string, names []string) CandidateList {
	list := make(CandidateList, 0, len(names))
	for _, name := range names {
		list = append(list, Candidate{Name: name, Score: NormalizedLevenshteinScore(input, name)})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})

	return list
}

// Best returns the highest scored candidate.
func (l CandidateList) Best() (Candidate, bool) {
	if len(l) == 0 {
		return Candidate{}, false
	}

	return l[0], true
}

// Suggest returns the known name closest to input, if any is close enough.
// An exact match is never suggested.
func Suggest(input string, names []string) (string, bool) {
	best, ok := Rank(input, names).Best()
	if !ok || best.Name == input || best.Score < MinScore {
		return "", false
	}

	return best.Name, true
}

// Hint returns ` (did you mean "x"?)` for the closest known name, or "".
func Hint(input string, names []string) string {
	if name, ok := Suggest(input, names); ok {
		return fmt.Sprintf(" (did you mean %q?)", name)
	}

	return ""
}
