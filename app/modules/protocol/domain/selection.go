package protocoldomain

import "strconv"

// Targets maps each graphic to the production-system input that renders it.
type Targets struct {
	Player       string `yaml:"player"`
	Leaderboard  string `yaml:"leaderboard"`
	HoleInfo     string `yaml:"hole_info"`
	MiniCycled   string `yaml:"mini_cycled"`
	MiniFeatured string `yaml:"mini_featured"`
	Comparison   string `yaml:"comparison"`
}

// DefaultTargets are the input names used by the stock production preset.
var DefaultTargets = Targets{
	Player:       "Player",
	Leaderboard:  "Leaderboard",
	HoleInfo:     "HoleInfo",
	MiniCycled:   "MiniLeaderboard",
	MiniFeatured: "FeaturedLeaderboard",
	Comparison:   "Comparison",
}

// Selection addresses one property of one graphic.
type Selection interface {
	// Target returns the input id the selection lives on.
	Target(t Targets) string
	// Property returns the field name without extension.
	Property() string
	// Extension returns the property suffix of the field.
	Extension() Extension
}

// PlayerField is a field of the focused-player graphic.
type PlayerField string

const (
	PlayerName      PlayerField = "Name"
	PlayerSurname   PlayerField = "Surname"
	PlayerTotal     PlayerField = "TotalScore"
	PlayerRound     PlayerField = "RoundScore"
	PlayerThru      PlayerField = "Thru"
	PlayerPosition  PlayerField = "Position"
	PlayerHoleScore PlayerField = "HoleScore"
	PlayerHoleColor PlayerField = "HoleColor"
)

// PlayerSelection targets the focused-player graphic. Hole is only used by the per-hole fields.
type PlayerSelection struct {
	Field PlayerField
	Hole  int
}

func (s PlayerSelection) Target(t Targets) string { return t.Player }

func (s PlayerSelection) Property() string {
	switch s.Field {
	case PlayerHoleScore, PlayerHoleColor:
		return string(s.Field) + strconv.Itoa(s.Hole)
	default:
		return string(s.Field)
	}
}

func (s PlayerSelection) Extension() Extension {
	if s.Field == PlayerHoleColor {
		return ExtColor
	}
	return ExtText
}

// LeaderboardField is a per-row field of the big leaderboard.
type LeaderboardField string

const (
	BoardPosition     LeaderboardField = "Pos"
	BoardName         LeaderboardField = "Name"
	BoardTotal        LeaderboardField = "Total"
	BoardRound        LeaderboardField = "Round"
	BoardThru         LeaderboardField = "Thru"
	BoardMovement     LeaderboardField = "Move"
	BoardMovementText LeaderboardField = "MoveText"
	BoardHotRound     LeaderboardField = "Hot"
	BoardCheckin      LeaderboardField = "Checkin"
)

// LeaderboardSelection targets a row of the big leaderboard. Rows are 1-based;
// BoardCheckin ignores the row.
type LeaderboardSelection struct {
	Row   int
	Field LeaderboardField
}

func (s LeaderboardSelection) Target(t Targets) string { return t.Leaderboard }

func (s LeaderboardSelection) Property() string {
	if s.Field == BoardCheckin {
		return string(s.Field)
	}
	return string(s.Field) + strconv.Itoa(s.Row)
}

func (s LeaderboardSelection) Extension() Extension {
	switch s.Field {
	case BoardMovement, BoardHotRound:
		return ExtSource
	default:
		return ExtText
	}
}

// HoleInfoField is a field of the hole-info graphic.
type HoleInfoField string

const (
	HoleNumber  HoleInfoField = "HoleNumber"
	HolePar     HoleInfoField = "Par"
	HoleLength  HoleInfoField = "Length"
	HoleAverage HoleInfoField = "Average"
)

// HoleInfoSelection targets the hole-info graphic.
type HoleInfoSelection struct {
	Field HoleInfoField
}

func (s HoleInfoSelection) Target(t Targets) string { return t.HoleInfo }
func (s HoleInfoSelection) Property() string        { return string(s.Field) }
func (s HoleInfoSelection) Extension() Extension    { return ExtText }

// MiniField is a per-row field of the six-player mini leaderboard.
type MiniField string

const (
	MiniPosition  MiniField = "Pos"
	MiniName      MiniField = "Name"
	MiniTotal     MiniField = "Total"
	MiniThru      MiniField = "Thru"
	MiniHoleScore MiniField = "Hole"
	MiniHoleColor MiniField = "HoleColor"
	MiniTitle     MiniField = "Division"
)

// MiniBoardSelection targets the mini leaderboard. Slot selects one of the latest
// holes of the row (1-based). Featured picks the fixed panel instead of the cycled one.
type MiniBoardSelection struct {
	Row      int
	Field    MiniField
	Slot     int
	Featured bool
}

func (s MiniBoardSelection) Target(t Targets) string {
	if s.Featured {
		return t.MiniFeatured
	}
	return t.MiniCycled
}

func (s MiniBoardSelection) Property() string {
	switch s.Field {
	case MiniTitle:
		return string(s.Field)
	case MiniHoleScore, MiniHoleColor:
		return string(s.Field) + strconv.Itoa(s.Row) + "_" + strconv.Itoa(s.Slot)
	default:
		return string(s.Field) + strconv.Itoa(s.Row)
	}
}

func (s MiniBoardSelection) Extension() Extension {
	if s.Field == MiniHoleColor {
		return ExtColor
	}
	return ExtText
}

// ComparisonField is a per-column field of the card comparison grid.
type ComparisonField string

const (
	CompareName     ComparisonField = "Name"
	CompareTotal    ComparisonField = "Total"
	CompareRound    ComparisonField = "Round"
	CompareThru     ComparisonField = "Thru"
	ComparePosition ComparisonField = "Pos"
)

// ComparisonSelection targets a column (1-based) of the comparison grid.
type ComparisonSelection struct {
	Column int
	Field  ComparisonField
}

func (s ComparisonSelection) Target(t Targets) string { return t.Comparison }
func (s ComparisonSelection) Property() string        { return string(s.Field) + strconv.Itoa(s.Column) }
func (s ComparisonSelection) Extension() Extension    { return ExtText }
