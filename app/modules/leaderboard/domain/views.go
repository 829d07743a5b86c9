package leaderboarddomain

import (
	"path"
	"strconv"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

const (
	// BoardRows is the page size of the big leaderboard.
	BoardRows = 10
	// MiniRows is the number of players on a mini leaderboard.
	MiniRows = 6
)

// Movement arrow images, relative to the assets directory.
const (
	ImageUp   = "up.png"
	ImageDown = "down.png"
	ImageSame = "same.png"
)

// CheckinText is the big board caption, e.g. "MPO | Round 2".
func CheckinText(d playerdomain.Division, round int) string {
	return d.Label() + " | Round " + strconv.Itoa(round+1)
}

// BigBoard renders one page of the big leaderboard. Page skip covers ranked
// indices [skip*10, skip*10+10); rows without a player are blanked and hidden.
func (e *Engine) BigBoard(round int, divisionID string, skip int) ([]protocoldomain.Command, error) {
	if skip < 0 {
		return nil, shared.IndexErrorf("negative leaderboard page %d", skip)
	}
	division, err := e.Division(divisionID)
	if err != nil {
		return nil, err
	}
	ranked, err := e.Ranked(round, divisionID)
	if err != nil {
		return nil, err
	}

	cmds := []protocoldomain.Command{
		protocoldomain.SetText(protocoldomain.LeaderboardSelection{Field: protocoldomain.BoardCheckin}, CheckinText(division, round)),
	}
	offset := skip * BoardRows
	for row := 1; row <= BoardRows; row++ {
		idx := offset + row - 1
		if idx < len(ranked) {
			cmds = append(cmds, e.boardRow(row, ranked[idx])...)
			continue
		}
		cmds = append(cmds, blankBoardRow(row)...)
	}
	return cmds, nil
}

func boardSel(row int, field protocoldomain.LeaderboardField) protocoldomain.LeaderboardSelection {
	return protocoldomain.LeaderboardSelection{Row: row, Field: field}
}

func (e *Engine) boardRow(row int, p LeaderboardPlayer) []protocoldomain.Command {
	return []protocoldomain.Command{
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardPosition), p.PositionText()),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardName), p.Name),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardTotal), playerdomain.FormatScore(p.TotalScore)),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardRound), playerdomain.FormatScore(p.RoundScore)),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardThru), playerdomain.FormatThru(p.Thru)),
		protocoldomain.SetImage(boardSel(row, protocoldomain.BoardMovement), e.movementImage(p.Movement)),
		protocoldomain.Show(boardSel(row, protocoldomain.BoardMovement)),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardMovementText), movementText(p.Movement)),
		protocoldomain.SetVisible(boardSel(row, protocoldomain.BoardHotRound), p.HotRound),
	}
}

func blankBoardRow(row int) []protocoldomain.Command {
	return []protocoldomain.Command{
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardPosition), ""),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardName), ""),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardTotal), ""),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardRound), ""),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardThru), ""),
		protocoldomain.Hide(boardSel(row, protocoldomain.BoardMovement)),
		protocoldomain.SetText(boardSel(row, protocoldomain.BoardMovementText), ""),
		protocoldomain.Hide(boardSel(row, protocoldomain.BoardHotRound)),
	}
}

func (e *Engine) movementImage(m Movement) string {
	name := ImageSame
	switch m.Kind {
	case Up:
		name = ImageUp
	case Down:
		name = ImageDown
	}
	return path.Join(e.opts.AssetsDir, name)
}

func movementText(m Movement) string {
	if m.Kind == Same || m.Delta == 0 {
		return ""
	}
	return strconv.Itoa(m.Delta)
}

// MiniBoard renders the top six of a division with each player's latest holes.
// The featured variant addresses the fixed panel with identical commands.
func (e *Engine) MiniBoard(round int, divisionID string, featured bool) ([]protocoldomain.Command, error) {
	division, err := e.Division(divisionID)
	if err != nil {
		return nil, err
	}
	ranked, err := e.Ranked(round, divisionID)
	if err != nil {
		return nil, err
	}

	cmds := []protocoldomain.Command{
		protocoldomain.SetText(protocoldomain.MiniBoardSelection{Field: protocoldomain.MiniTitle}, division.Label()),
	}
	for row := 1; row <= MiniRows; row++ {
		if row <= len(ranked) {
			cmds = append(cmds, miniRow(row, ranked[row-1])...)
			continue
		}
		cmds = append(cmds, miniRow(row, LeaderboardPlayer{})...)
	}

	if featured {
		for i := range cmds {
			cmds[i] = cmds[i].Featured()
		}
	}
	return cmds, nil
}

func miniSel(row int, field protocoldomain.MiniField) protocoldomain.MiniBoardSelection {
	return protocoldomain.MiniBoardSelection{Row: row, Field: field}
}

// miniRow renders one row; the zero LeaderboardPlayer renders a blank row.
func miniRow(row int, p LeaderboardPlayer) []protocoldomain.Command {
	var pos, total, thru string
	if p.PlayerID != "" {
		pos = p.PositionText()
		total = playerdomain.FormatScore(p.TotalScore)
		thru = playerdomain.FormatThru(p.Thru)
	}
	cmds := []protocoldomain.Command{
		protocoldomain.SetText(miniSel(row, protocoldomain.MiniPosition), pos),
		protocoldomain.SetText(miniSel(row, protocoldomain.MiniName), p.Name),
		protocoldomain.SetText(miniSel(row, protocoldomain.MiniTotal), total),
		protocoldomain.SetText(miniSel(row, protocoldomain.MiniThru), thru),
	}

	for slot := 1; slot <= LatestHoleCount; slot++ {
		var hole playerdomain.HoleResult
		if slot <= len(p.Latest) {
			hole = p.Latest[slot-1]
		} else {
			hole = playerdomain.HoleResult{Blank: true}
		}
		score := protocoldomain.MiniBoardSelection{Row: row, Field: protocoldomain.MiniHoleScore, Slot: slot}
		color := protocoldomain.MiniBoardSelection{Row: row, Field: protocoldomain.MiniHoleColor, Slot: slot}
		cmds = append(cmds,
			protocoldomain.SetText(score, hole.ThrowsText()),
			protocoldomain.SetColor(color, hole.Color()),
		)
	}
	return cmds
}

// Position renders a player's position text in round, or "" when unranked.
func (e *Engine) Position(round int, playerID string) string {
	p, ok := e.Lookup(round, playerID)
	if !ok {
		return ""
	}
	return p.PositionText()
}
