package leaderboarddomain

import (
	"fmt"
	"sort"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// Mode selects the movement reference.
type Mode int

const (
	// ModeLive compares against the previous snapshot of the same round.
	ModeLive Mode = iota
	// ModePostEvent compares against the previous completed round.
	ModePostEvent
)

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "live":
		return ModeLive, nil
	case "post_event":
		return ModePostEvent, nil
	default:
		return ModeLive, fmt.Errorf("unknown leaderboard mode %q", s)
	}
}

// LatestHoleCount is the number of recent holes shown per mini leaderboard row.
const LatestHoleCount = 3

// State is the ranked snapshot of one round.
type State struct {
	Round     int
	Standings []Standing
}

// Options configures an Engine.
type Options struct {
	Mode      Mode
	AssetsDir string
}

// Engine keeps one snapshot per round plus the snapshot it last replaced.
type Engine struct {
	opts      Options
	divisions []playerdomain.Division
	states    map[int]State
	previous  map[int]State
}

// NewEngine creates an engine for the given divisions.
func NewEngine(divisions []playerdomain.Division, opts Options) *Engine {
	return &Engine{
		opts:      opts,
		divisions: append([]playerdomain.Division(nil), divisions...),
		states:    make(map[int]State),
		previous:  make(map[int]State),
	}
}

// Divisions returns the divisions in load order.
func (e *Engine) Divisions() []playerdomain.Division {
	return append([]playerdomain.Division(nil), e.divisions...)
}

// Division looks up a division by id.
func (e *Engine) Division(id string) (playerdomain.Division, error) {
	for _, d := range e.divisions {
		if d.ID == id {
			return d, nil
		}
	}
	return playerdomain.Division{}, shared.DataErrorf("unknown division %q", id)
}

// AddState records a snapshot of round. Each player's total is the sum of its
// finished scores in every prior round plus its current round score. An
// existing snapshot for the round is replaced, and kept as the live reference
// only when a ranking input changed, so recording identical standings never
// erases movement.
func (e *Engine) AddState(round int, current []*playerdomain.Player, prior [][]*playerdomain.Player) State {
	priorTotals := make(map[string]int)
	for _, players := range prior {
		for _, p := range players {
			priorTotals[p.ID] += p.Round.Score()
		}
	}

	standings := make([]Standing, 0, len(current))
	for _, p := range current {
		roundScore := p.Round.Score()
		standings = append(standings, Standing{
			PlayerID:   p.ID,
			Name:       p.Name(),
			DivisionID: p.Division.ID,
			RoundScore: roundScore,
			TotalScore: priorTotals[p.ID] + roundScore,
			Thru:       p.Round.Thru(),
			TiebreakID: p.TiebreakID,
			DNF:        p.DNF,
			DNS:        p.DNS,
			Latest:     p.Round.LatestHoles(LatestHoleCount, p.StartAtHole),
		})
	}

	state := State{Round: round, Standings: standings}
	if old, ok := e.states[round]; ok && !sameRanking(old.Standings, standings) {
		e.previous[round] = old
	}
	e.states[round] = state
	return state
}

// State returns the snapshot of round.
func (e *Engine) State(round int) (State, bool) {
	s, ok := e.states[round]
	return s, ok
}

// Rounds lists the rounds with a snapshot, ascending.
func (e *Engine) Rounds() []int {
	rounds := make([]int, 0, len(e.states))
	for r := range e.states {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	return rounds
}

// Ranked returns the ranked standings of one division in round, with movement
// and hot-round flags resolved.
func (e *Engine) Ranked(round int, divisionID string) ([]LeaderboardPlayer, error) {
	state, ok := e.states[round]
	if !ok {
		return nil, shared.DataErrorf("no leaderboard for round %d", round+1)
	}
	if _, err := e.Division(divisionID); err != nil {
		return nil, err
	}

	ranked := rank(state.Standings, divisionID)

	reference := e.referencePositions(round, divisionID)
	hot, hasHot := hotRoundScore(state)
	for i := range ranked {
		if pos, ok := reference[ranked[i].PlayerID]; ok {
			ranked[i].Movement = movement(ranked[i].Position, pos)
		}
		ranked[i].HotRound = hasHot && ranked[i].RoundScore == hot
	}
	return ranked, nil
}

// Lookup finds a player's ranked line in round.
func (e *Engine) Lookup(round int, playerID string) (LeaderboardPlayer, bool) {
	state, ok := e.states[round]
	if !ok {
		return LeaderboardPlayer{}, false
	}
	for _, s := range state.Standings {
		if s.PlayerID != playerID {
			continue
		}
		ranked, err := e.Ranked(round, s.DivisionID)
		if err != nil {
			return LeaderboardPlayer{}, false
		}
		for _, p := range ranked {
			if p.PlayerID == playerID {
				return p, true
			}
		}
	}
	return LeaderboardPlayer{}, false
}

func (e *Engine) referencePositions(round int, divisionID string) map[string]int {
	var ref State
	var ok bool
	switch e.opts.Mode {
	case ModePostEvent:
		ref, ok = e.states[round-1]
	default:
		ref, ok = e.previous[round]
	}
	if !ok {
		return nil
	}

	positions := make(map[string]int)
	for _, p := range rank(ref.Standings, divisionID) {
		positions[p.PlayerID] = p.Position
	}
	return positions
}

// sameRanking reports whether two snapshots rank identically.
func sameRanking(a, b []Standing) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.PlayerID != y.PlayerID || x.DivisionID != y.DivisionID ||
			x.RoundScore != y.RoundScore || x.TotalScore != y.TotalScore ||
			x.Thru != y.Thru || x.TiebreakID != y.TiebreakID ||
			x.DNF != y.DNF || x.DNS != y.DNS {
			return false
		}
	}
	return true
}

// hotRoundScore is the lowest round score of the snapshot. The first round has none.
func hotRoundScore(state State) (int, bool) {
	if state.Round == 0 || len(state.Standings) == 0 {
		return 0, false
	}
	lowest := state.Standings[0].RoundScore
	for _, s := range state.Standings[1:] {
		if s.RoundScore < lowest {
			lowest = s.RoundScore
		}
	}
	return lowest, true
}
