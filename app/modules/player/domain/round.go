package playerdomain

import (
	"sort"
	"strconv"
)

// HoleCount is the number of holes in a round.
const HoleCount = 18

// defaultPar is assumed for holes missing from the layout.
const defaultPar = 3

// Hole describes one hole of the course layout.
type Hole struct {
	Number int
	Par    int
	Length int
}

// Layout maps hole numbers to hole descriptions.
type Layout map[int]Hole

// Par returns the par of hole, falling back to defaultPar.
func (l Layout) Par(hole int) int {
	if h, ok := l[hole]; ok && h.Par > 0 {
		return h.Par
	}
	return defaultPar
}

// HoleResult is one player's result on one hole.
type HoleResult struct {
	Hole     int
	Throws   int
	Par      int
	Finished bool

	// Remote holds the authoritative throw count reported by the scoring service.
	Remote    int
	HasRemote bool

	// Blank marks a padding placeholder returned by LatestHoles.
	Blank bool
}

// Diff is throws relative to par.
func (h HoleResult) Diff() int {
	return h.Throws - h.Par
}

// Done reports whether the hole counts as played.
func (h HoleResult) Done() bool {
	return h.Finished || h.HasRemote || h.Throws > 0
}

// Classification of the result.
func (h HoleResult) Classification() Classification {
	return Classify(h.Throws, h.Par)
}

// ThrowsText renders the throw count for display; blanks render empty.
func (h HoleResult) ThrowsText() string {
	if h.Blank || !h.Done() {
		return ""
	}
	return strconv.Itoa(h.Throws)
}

// Color renders the classification colour; blanks use BlankColor.
func (h HoleResult) Color() string {
	if h.Blank || !h.Done() {
		return BlankColor
	}
	return h.Classification().Color()
}

// PlayerRound holds at most one result per hole, kept in ascending hole order.
type PlayerRound struct {
	results []HoleResult
}

// Results returns a copy of the results in hole order.
func (r *PlayerRound) Results() []HoleResult {
	out := make([]HoleResult, len(r.results))
	copy(out, r.results)
	return out
}

// Get returns the result for hole.
func (r *PlayerRound) Get(hole int) (HoleResult, bool) {
	i, found := r.index(hole)
	if !found {
		return HoleResult{}, false
	}
	return r.results[i], true
}

func (r *PlayerRound) index(hole int) (int, bool) {
	i := sort.Search(len(r.results), func(i int) bool { return r.results[i].Hole >= hole })
	return i, i < len(r.results) && r.results[i].Hole == hole
}

// set inserts or replaces the result for res.Hole.
func (r *PlayerRound) set(res HoleResult) {
	i, found := r.index(res.Hole)
	if found {
		r.results[i] = res
		return
	}
	r.results = append(r.results, HoleResult{})
	copy(r.results[i+1:], r.results[i:])
	r.results[i] = res
}

func (r *PlayerRound) remove(hole int) {
	if i, found := r.index(hole); found {
		r.results = append(r.results[:i], r.results[i+1:]...)
	}
}

// truncateAfter discards every result for a hole greater than hole.
func (r *PlayerRound) truncateAfter(hole int) {
	i := sort.Search(len(r.results), func(i int) bool { return r.results[i].Hole > hole })
	r.results = r.results[:i]
}

// Finished returns the played holes in hole order.
func (r *PlayerRound) Finished() []HoleResult {
	out := make([]HoleResult, 0, len(r.results))
	for _, res := range r.results {
		if res.Done() {
			out = append(out, res)
		}
	}
	return out
}

// Thru is the number of played holes.
func (r *PlayerRound) Thru() int {
	return len(r.Finished())
}

// Score sums the par-relative result of every played hole.
func (r *PlayerRound) Score() int {
	total := 0
	for _, res := range r.Finished() {
		total += res.Diff()
	}
	return total
}

// Complete reports whether every hole has been played.
func (r *PlayerRound) Complete() bool {
	return r.Thru() == HoleCount
}

// LatestHoles returns the k most recently played holes, oldest first, padded
// at the front with blank placeholders. Until the round is complete holes are
// ordered by (hole-1+startAtHole) mod 19.
func (r *PlayerRound) LatestHoles(k int, startAtHole int) []HoleResult {
	if k <= 0 {
		return nil
	}
	finished := r.Finished()
	if len(finished) < HoleCount {
		if startAtHole < 1 || startAtHole > HoleCount {
			startAtHole = 1
		}
		key := func(hole int) int { return (hole - 1 + startAtHole) % 19 }
		sort.SliceStable(finished, func(i, j int) bool {
			return key(finished[i].Hole) < key(finished[j].Hole)
		})
	}

	if len(finished) > k {
		finished = finished[len(finished)-k:]
	}
	out := make([]HoleResult, 0, k)
	for i := len(finished); i < k; i++ {
		out = append(out, HoleResult{Blank: true})
	}
	return append(out, finished...)
}
