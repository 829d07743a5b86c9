package leaderboarddomain

import (
	"sort"
	"strconv"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
)

// Standing is a player's line in a snapshot. Values are copied so the
// snapshot never changes after it is recorded.
type Standing struct {
	PlayerID   string
	Name       string
	DivisionID string
	RoundScore int
	TotalScore int
	Thru       int
	TiebreakID int
	DNF        bool
	DNS        bool

	// Latest holds the most recently finished holes, oldest first.
	Latest []playerdomain.HoleResult
}

// Out reports whether the player no longer competes.
func (s Standing) Out() bool { return s.DNF || s.DNS }

// MovementKind is the direction of a position change.
type MovementKind int

const (
	Same MovementKind = iota
	Up
	Down
)

// Movement compares a position against a reference snapshot.
type Movement struct {
	Kind  MovementKind
	Delta int
}

// LeaderboardPlayer is a ranked standing. It is derived on demand and never stored.
type LeaderboardPlayer struct {
	Standing
	Position int
	Tied     bool
	Movement Movement
	HotRound bool
}

// PositionText renders the position with a "T" prefix for ties.
func (p LeaderboardPlayer) PositionText() string {
	switch {
	case p.DNF:
		return "DNF"
	case p.DNS:
		return "DNS"
	case p.Tied:
		return "T" + strconv.Itoa(p.Position)
	default:
		return strconv.Itoa(p.Position)
	}
}

// sortStandings orders players that are still competing first, then by total,
// round score and tiebreak id.
func sortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Out() != b.Out() {
			return !a.Out()
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore < b.TotalScore
		}
		if a.RoundScore != b.RoundScore {
			return a.RoundScore < b.RoundScore
		}
		return a.TiebreakID < b.TiebreakID
	})
}

// rank filters standings to one division and assigns positions. Players on the
// same total share a position; the next total's position skips past the group.
func rank(standings []Standing, divisionID string) []LeaderboardPlayer {
	filtered := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if s.DivisionID == divisionID {
			filtered = append(filtered, s)
		}
	}
	sortStandings(filtered)

	counts := make(map[int]int, len(filtered))
	for _, s := range filtered {
		if !s.Out() {
			counts[s.TotalScore]++
		}
	}

	ranked := make([]LeaderboardPlayer, len(filtered))
	position := 0
	for i, s := range filtered {
		if i == 0 || s.TotalScore != filtered[i-1].TotalScore {
			position = i + 1
		}
		ranked[i] = LeaderboardPlayer{
			Standing: s,
			Position: position,
			Tied:     !s.Out() && counts[s.TotalScore] >= 2,
		}
	}
	return ranked
}

func movement(position, reference int) Movement {
	switch {
	case position < reference:
		return Movement{Kind: Up, Delta: reference - position}
	case position > reference:
		return Movement{Kind: Down, Delta: position - reference}
	default:
		return Movement{Kind: Same}
	}
}
