package leaderboarddomain

import (
	"errors"
	"strings"
	"testing"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mpo = playerdomain.Division{ID: "mpo", Name: "Mixed Pro Open", ShortName: "MPO"}
	fpo = playerdomain.Division{ID: "fpo", Name: "Female Pro Open", ShortName: "FPO"}
)

func layout() playerdomain.Layout {
	l := playerdomain.Layout{}
	for h := 1; h <= playerdomain.HoleCount; h++ {
		l[h] = playerdomain.Hole{Number: h, Par: 3, Length: 100}
	}
	return l
}

// newPlayer builds a player whose round score is the sum of diffs, one hole per diff.
func newPlayer(t *testing.T, id string, div playerdomain.Division, diffs ...int) *playerdomain.Player {
	t.Helper()
	p := playerdomain.NewPlayer(id, gofakeit.FirstName(), gofakeit.LastName(), div, layout())
	for i, d := range diffs {
		_, err := p.ApplyRemote(i+1, 3+d)
		require.NoError(t, err)
	}
	return p
}

func positions(ranked []LeaderboardPlayer) []int {
	out := make([]int, len(ranked))
	for i, p := range ranked {
		out[i] = p.Position
	}
	return out
}

func TestRanked_SharedPositions(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo, fpo}, Options{})
	e.AddState(0, []*playerdomain.Player{
		newPlayer(t, "c", mpo, 0),
		newPlayer(t, "d", mpo, 1),
		newPlayer(t, "a", mpo, -2),
		newPlayer(t, "x", fpo, 1),
		newPlayer(t, "b", mpo, -1, -1),
		newPlayer(t, "e", mpo, 1),
	}, nil)

	ranked, err := e.Ranked(0, "mpo")
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	assert.Equal(t, []int{1, 1, 3, 4, 4}, positions(ranked))
	var texts []string
	for _, p := range ranked {
		texts = append(texts, p.PositionText())
	}
	assert.Equal(t, []string{"T1", "T1", "3", "T4", "T4"}, texts)

	fpoRanked, err := e.Ranked(0, "fpo")
	require.NoError(t, err)
	require.Len(t, fpoRanked, 1)
	assert.False(t, fpoRanked[0].Tied, "ties are counted within a division")
}

func TestRanked_SortOrder(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})

	dnf := newPlayer(t, "dnf", mpo, -2)
	dnf.DNF = true
	low := newPlayer(t, "low-round", mpo, -2)
	high := newPlayer(t, "high-round", mpo, -1)
	tiebreakB := newPlayer(t, "tb-b", mpo, 0)
	tiebreakB.TiebreakID = 200
	tiebreakA := newPlayer(t, "tb-a", mpo, 0)
	tiebreakA.TiebreakID = 100

	prior := newPlayer(t, "high-round", mpo, -1)
	priorLow := newPlayer(t, "low-round", mpo, 0)

	e.AddState(1, []*playerdomain.Player{dnf, tiebreakB, high, low, tiebreakA},
		[][]*playerdomain.Player{{prior, priorLow}})

	ranked, err := e.Ranked(1, "mpo")
	require.NoError(t, err)

	var ids []string
	for _, p := range ranked {
		ids = append(ids, p.PlayerID)
	}
	// high-round and low-round both total -2; the lower round score wins.
	assert.Equal(t, []string{"low-round", "high-round", "tb-a", "tb-b", "dnf"}, ids)
	assert.Equal(t, "DNF", ranked[4].PositionText())
}

func TestAddState_Totals(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	r0 := []*playerdomain.Player{newPlayer(t, "a", mpo, -1, -1), newPlayer(t, "b", mpo, 1)}
	r1 := []*playerdomain.Player{newPlayer(t, "a", mpo, 2), newPlayer(t, "b", mpo, -1)}
	r2 := []*playerdomain.Player{newPlayer(t, "a", mpo, -1), newPlayer(t, "b", mpo, 0)}

	state := e.AddState(2, r2, [][]*playerdomain.Player{r0, r1})

	totals := map[string]int{}
	for _, s := range state.Standings {
		totals[s.PlayerID] = s.TotalScore
	}
	assert.Equal(t, map[string]int{"a": -1, "b": 0}, totals)
}

func TestAddState_ReplacesSameRound(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	players := []*playerdomain.Player{newPlayer(t, "a", mpo, 1), newPlayer(t, "b", mpo, -1)}

	first := e.AddState(0, players, nil)
	second := e.AddState(0, players, nil)

	assert.Equal(t, []int{0}, e.Rounds())
	assert.Equal(t, first, second)
	got, ok := e.State(0)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestMovement_Live(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{Mode: ModeLive})
	a := newPlayer(t, "a", mpo, -1)
	b := newPlayer(t, "b", mpo, 0)
	c := newPlayer(t, "c", mpo, 1)
	e.AddState(0, []*playerdomain.Player{a, b, c}, nil)

	ranked, err := e.Ranked(0, "mpo")
	require.NoError(t, err)
	for _, p := range ranked {
		assert.Equal(t, Movement{}, p.Movement, "first snapshot has no reference")
	}

	_, err = c.ApplyRemote(2, 1)
	require.NoError(t, err)
	e.AddState(0, []*playerdomain.Player{a, b, c}, nil)

	ranked, err = e.Ranked(0, "mpo")
	require.NoError(t, err)
	byID := map[string]Movement{}
	for _, p := range ranked {
		byID[p.PlayerID] = p.Movement
	}
	assert.Equal(t, Movement{Kind: Up, Delta: 2}, byID["c"])
	assert.Equal(t, Movement{Kind: Same}, byID["a"])
	assert.Equal(t, Movement{Kind: Down, Delta: 1}, byID["b"])

	// Recording unchanged standings keeps the reference.
	e.AddState(0, []*playerdomain.Player{a, b, c}, nil)
	ranked, err = e.Ranked(0, "mpo")
	require.NoError(t, err)
	for _, p := range ranked {
		byID[p.PlayerID] = p.Movement
	}
	assert.Equal(t, Movement{Kind: Up, Delta: 2}, byID["c"])
	assert.Equal(t, Movement{Kind: Down, Delta: 1}, byID["b"])
}

func TestMovement_PostEvent(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{Mode: ModePostEvent})
	r0 := []*playerdomain.Player{newPlayer(t, "a", mpo, -2), newPlayer(t, "b", mpo, 0)}
	r1 := []*playerdomain.Player{newPlayer(t, "a", mpo, 2), newPlayer(t, "b", mpo, -1)}
	e.AddState(0, r0, nil)
	e.AddState(1, r1, [][]*playerdomain.Player{r0})

	ranked, err := e.Ranked(1, "mpo")
	require.NoError(t, err)
	require.Equal(t, "b", ranked[0].PlayerID)
	assert.Equal(t, Movement{Kind: Up, Delta: 1}, ranked[0].Movement)
	assert.Equal(t, Movement{Kind: Down, Delta: 1}, ranked[1].Movement)
}

func TestHotRound(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	r0 := []*playerdomain.Player{newPlayer(t, "a", mpo, -2), newPlayer(t, "b", mpo, 0)}
	e.AddState(0, r0, nil)

	ranked, err := e.Ranked(0, "mpo")
	require.NoError(t, err)
	for _, p := range ranked {
		assert.False(t, p.HotRound, "round 1 never has a hot round")
	}

	r1 := []*playerdomain.Player{newPlayer(t, "a", mpo, 1), newPlayer(t, "b", mpo, -2), newPlayer(t, "c", mpo, -2)}
	e.AddState(1, r1, [][]*playerdomain.Player{r0})
	ranked, err = e.Ranked(1, "mpo")
	require.NoError(t, err)
	hot := map[string]bool{}
	for _, p := range ranked {
		hot[p.PlayerID] = p.HotRound
	}
	assert.Equal(t, map[string]bool{"a": false, "b": true, "c": true}, hot)
}

func TestRanked_Errors(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	_, err := e.Ranked(0, "mpo")
	assert.True(t, errors.Is(err, shared.ErrData))

	e.AddState(0, nil, nil)
	_, err = e.Ranked(0, "nope")
	assert.True(t, errors.Is(err, shared.ErrData))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("post_event")
	require.NoError(t, err)
	assert.Equal(t, ModePostEvent, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeLive, m)

	_, err = ParseMode("replay")
	assert.Error(t, err)
}

func textOf(t *testing.T, cmds []protocoldomain.Command, sel protocoldomain.Selection) string {
	t.Helper()
	for _, c := range cmds {
		if c.Selection == sel && c.Op == protocoldomain.OpSetText {
			return c.Value
		}
	}
	t.Fatalf("no text command for %+v", sel)
	return ""
}

func TestBigBoard_Pagination(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{AssetsDir: "/assets"})
	var players []*playerdomain.Player
	for i := 0; i < 12; i++ {
		diffs := make([]int, i+1)
		players = append(players, newPlayer(t, gofakeit.UUID(), mpo, diffs...))
		players[i].TiebreakID = i
	}
	e.AddState(1, players, nil)

	cmds, err := e.BigBoard(1, "mpo", 1)
	require.NoError(t, err)

	checkin := protocoldomain.LeaderboardSelection{Field: protocoldomain.BoardCheckin}
	assert.Equal(t, "MPO | Round 2", textOf(t, cmds, checkin))

	ranked, err := e.Ranked(1, "mpo")
	require.NoError(t, err)
	assert.Equal(t, ranked[10].Name, textOf(t, cmds, boardSel(1, protocoldomain.BoardName)))
	assert.Equal(t, ranked[11].Name, textOf(t, cmds, boardSel(2, protocoldomain.BoardName)))
	assert.Equal(t, "T1", textOf(t, cmds, boardSel(1, protocoldomain.BoardPosition)))
	assert.Equal(t, "E", textOf(t, cmds, boardSel(1, protocoldomain.BoardTotal)))
	assert.Equal(t, "11", textOf(t, cmds, boardSel(1, protocoldomain.BoardThru)))
	assert.Equal(t, "12", textOf(t, cmds, boardSel(2, protocoldomain.BoardThru)))

	for row := 3; row <= BoardRows; row++ {
		assert.Equal(t, "", textOf(t, cmds, boardSel(row, protocoldomain.BoardName)))
		assert.Contains(t, cmds, protocoldomain.Hide(boardSel(row, protocoldomain.BoardMovement)))
	}
	assert.Contains(t, cmds, protocoldomain.SetImage(boardSel(1, protocoldomain.BoardMovement), "/assets/same.png"))

	_, err = e.BigBoard(1, "mpo", -1)
	assert.True(t, errors.Is(err, shared.ErrIndex))
	_, err = e.BigBoard(1, "fpo", 0)
	assert.True(t, errors.Is(err, shared.ErrData))
}

func TestMiniBoard_FeaturedRemap(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	e.AddState(0, []*playerdomain.Player{
		newPlayer(t, "a", mpo, -1, 0),
		newPlayer(t, "b", mpo, 1),
	}, nil)

	cycled, err := e.MiniBoard(0, "mpo", false)
	require.NoError(t, err)
	featured, err := e.MiniBoard(0, "mpo", true)
	require.NoError(t, err)
	require.Equal(t, len(cycled), len(featured))
	assert.Equal(t, 1+MiniRows*(4+2*LatestHoleCount), len(cycled))

	enc := protocoldomain.NewEncoder(protocoldomain.DefaultTargets)
	targets := enc.Targets()
	for i := range cycled {
		c, f := enc.Line(cycled[i]), enc.Line(featured[i])
		assert.Equal(t, c, strings.Replace(f, "Input="+targets.MiniFeatured, "Input="+targets.MiniCycled, 1))
		assert.NotEqual(t, c, f)
	}

	assert.Equal(t, "MPO", textOf(t, cycled, protocoldomain.MiniBoardSelection{Field: protocoldomain.MiniTitle}))
	assert.Equal(t, "-1", textOf(t, cycled, miniSel(1, protocoldomain.MiniTotal)))
	// Row 1 played two holes: the first slot is padding.
	slot := func(row, s int) protocoldomain.MiniBoardSelection {
		return protocoldomain.MiniBoardSelection{Row: row, Field: protocoldomain.MiniHoleScore, Slot: s}
	}
	assert.Equal(t, "", textOf(t, cycled, slot(1, 1)))
	assert.Equal(t, "2", textOf(t, cycled, slot(1, 2)))
	assert.Equal(t, "3", textOf(t, cycled, slot(1, 3)))
	assert.Equal(t, "", textOf(t, cycled, miniSel(3, protocoldomain.MiniName)))
}

func TestPosition(t *testing.T) {
	e := NewEngine([]playerdomain.Division{mpo}, Options{})
	e.AddState(0, []*playerdomain.Player{newPlayer(t, "a", mpo, 0), newPlayer(t, "b", mpo, 0)}, nil)
	assert.Equal(t, "T1", e.Position(0, "b"))
	assert.Equal(t, "", e.Position(0, "zz"))
	assert.Equal(t, "", e.Position(3, "a"))
}
