package playerdomain

// Classification names a hole result relative to par.
type Classification int

const (
	Ace Classification = iota
	Albatross
	Eagle
	Birdie
	Par
	Bogey
	DoubleBogey
	TripleBogey
	Ouch
)

// Asset colours and overlay clips select production assets; keep them in sync with the preset.
var classificationAssets = map[Classification]struct {
	name  string
	color string
	clip  string
}{
	Ace:         {"ace", "#B300FF", "ace.mov"},
	Albatross:   {"albatross", "#FF00C3", "albatross.mov"},
	Eagle:       {"eagle", "#F6C600", "eagle.mov"},
	Birdie:      {"birdie", "#3FA531", "birdie.mov"},
	Par:         {"par", "#7E8490", "par.mov"},
	Bogey:       {"bogey", "#F2664B", "bogey.mov"},
	DoubleBogey: {"double_bogey", "#D8441E", "double_bogey.mov"},
	TripleBogey: {"triple_bogey", "#B7320D", "triple_bogey.mov"},
	Ouch:        {"ouch", "#8C1D00", "ouch.mov"},
}

// BlankColor is used for holes without a result.
const BlankColor = "#00000000"

// Classify maps throws against par.
func Classify(throws, par int) Classification {
	diff := throws - par
	switch {
	case diff <= -3 && throws == 1:
		return Ace
	case diff <= -3:
		return Albatross
	case diff == -2:
		return Eagle
	case diff == -1:
		return Birdie
	case diff == 0:
		return Par
	case diff == 1:
		return Bogey
	case diff == 2:
		return DoubleBogey
	case diff == 3:
		return TripleBogey
	default:
		return Ouch
	}
}

func (c Classification) String() string { return classificationAssets[c].name }

// Color is the fill colour used for the hole box.
func (c Classification) Color() string { return classificationAssets[c].color }

// Clip is the overlay animation played when the hole is committed.
func (c Classification) Clip() string { return classificationAssets[c].clip }
