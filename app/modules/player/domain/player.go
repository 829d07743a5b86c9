package playerdomain

import (
	"fmt"
	"strconv"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

var (
	// ErrRoundComplete is returned when every hole is already shown.
	ErrRoundComplete = fmt.Errorf("%w: all holes already shown", shared.ErrIndex)

	// ErrNoThrows is returned when a hole would be committed without a throw count.
	ErrNoThrows = fmt.Errorf("%w: no throws recorded for hole", shared.ErrData)

	// ErrInvalidHole is returned for hole numbers outside 1..18.
	ErrInvalidHole = fmt.Errorf("%w: hole out of range", shared.ErrIndex)
)

// Division is a competitive bracket.
type Division struct {
	ID        string
	Name      string
	ShortName string
}

// Label is the short display name, e.g. "MPO".
func (d Division) Label() string {
	if d.ShortName != "" {
		return d.ShortName
	}
	return d.Name
}

// Player is one roster entry for one round. RoundScore, TotalScore and
// ShownUpUntil describe what is currently on air; Round holds every known result.
type Player struct {
	ID          string
	FirstName   string
	LastName    string
	Division    Division
	TiebreakID  int
	StartAtHole int
	DNF         bool
	DNS         bool

	// PreviousRounds are the finished scores of strictly earlier rounds.
	PreviousRounds []int

	RoundScore    int
	TotalScore    int
	ShownUpUntil  int
	PendingThrows int

	Round  PlayerRound
	layout Layout
}

// NewPlayer creates a player with no results.
func NewPlayer(id, firstName, lastName string, division Division, layout Layout) *Player {
	return &Player{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		Division:    division,
		StartAtHole: 1,
		layout:      layout,
	}
}

// Name is the full display name.
func (p *Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Layout returns the course layout the player is scored against.
func (p *Player) Layout() Layout { return p.layout }

// SetPreviousRounds records earlier round scores and recomputes TotalScore.
func (p *Player) SetPreviousRounds(scores []int) {
	p.PreviousRounds = append([]int(nil), scores...)
	p.TotalScore = p.previousTotal() + p.RoundScore
}

func (p *Player) previousTotal() int {
	total := 0
	for _, s := range p.PreviousRounds {
		total += s
	}
	return total
}

// IncreaseScore commits the next unshown hole and advances ShownUpUntil.
// Pending throws override any known result for that hole.
func (p *Player) IncreaseScore() (HoleResult, error) {
	if p.ShownUpUntil >= HoleCount {
		return HoleResult{}, ErrRoundComplete
	}
	hole := p.ShownUpUntil + 1

	res, ok := p.Round.Get(hole)
	if !ok {
		res = HoleResult{Hole: hole, Par: p.layout.Par(hole)}
	}
	if p.PendingThrows > 0 {
		res.Throws = p.PendingThrows
	}
	if res.Throws <= 0 {
		return HoleResult{}, fmt.Errorf("hole %d: %w", hole, ErrNoThrows)
	}
	res.Finished = true

	p.Round.set(res)
	p.RoundScore += res.Diff()
	p.TotalScore += res.Diff()
	p.PendingThrows = 0
	p.ShownUpUntil = hole
	return res, nil
}

// RevertHoleScore undoes the last IncreaseScore. It is a no-op at hole 0.
func (p *Player) RevertHoleScore() {
	if p.ShownUpUntil == 0 {
		return
	}
	if res, ok := p.Round.Get(p.ShownUpUntil); ok {
		p.RoundScore -= res.Diff()
		p.TotalScore -= res.Diff()
		p.Round.remove(p.ShownUpUntil)
	}
	p.ShownUpUntil--
}

// ResetScores rewinds the display to the start of the round. Results that were
// never shown are discarded; shown results stay so they can be replayed.
func (p *Player) ResetScores() {
	p.Round.truncateAfter(p.ShownUpUntil)
	p.RoundScore = 0
	p.TotalScore = p.previousTotal()
	p.ShownUpUntil = 0
	p.PendingThrows = 0
}

// ApplyRemote merges an authoritative result from the scoring service. When the
// hole is already on air the displayed score moves by the throw difference.
// It reports whether anything changed.
func (p *Player) ApplyRemote(hole, throws int) (bool, error) {
	if hole < 1 || hole > HoleCount {
		return false, fmt.Errorf("hole %d: %w", hole, ErrInvalidHole)
	}

	existing, ok := p.Round.Get(hole)
	if ok && existing.HasRemote && existing.Remote == throws && existing.Throws == throws {
		return false, nil
	}

	res := existing
	if !ok {
		res = HoleResult{Hole: hole, Par: p.layout.Par(hole)}
	}
	if ok && hole <= p.ShownUpUntil {
		delta := throws - existing.Throws
		p.RoundScore += delta
		p.TotalScore += delta
	}
	res.Throws = throws
	res.Remote = throws
	res.HasRemote = true
	p.Round.set(res)
	return true, nil
}

// StoredThrows returns the throw count known for hole.
func (p *Player) StoredThrows(hole int) (int, bool) {
	res, ok := p.Round.Get(hole)
	if !ok || !res.Done() {
		return 0, false
	}
	return res.Throws, true
}

// FormatScore renders a par-relative score: "E", "+2", "-3".
func FormatScore(score int) string {
	switch {
	case score == 0:
		return "E"
	case score > 0:
		return "+" + strconv.Itoa(score)
	default:
		return strconv.Itoa(score)
	}
}

// FormatThru renders holes played, "F" once the round is finished.
func FormatThru(thru int) string {
	if thru >= HoleCount {
		return "F"
	}
	return strconv.Itoa(thru)
}
