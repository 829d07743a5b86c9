package playerdomain

import (
	"strconv"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
)

func playerSel(field protocoldomain.PlayerField) protocoldomain.PlayerSelection {
	return protocoldomain.PlayerSelection{Field: field}
}

// Commands renders the focused-player graphic: names, on-air totals, position
// and one box per hole. Holes beyond ShownUpUntil are blanked and hidden.
func (p *Player) Commands(position string) []protocoldomain.Command {
	cmds := []protocoldomain.Command{
		protocoldomain.SetText(playerSel(protocoldomain.PlayerName), p.FirstName),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerSurname), p.LastName),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerTotal), FormatScore(p.TotalScore)),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerRound), FormatScore(p.RoundScore)),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerThru), FormatThru(p.ShownUpUntil)),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerPosition), position),
	}
	for hole := 1; hole <= HoleCount; hole++ {
		cmds = append(cmds, p.HoleCommands(hole)...)
	}
	return cmds
}

// HoleCommands renders the box for a single hole.
func (p *Player) HoleCommands(hole int) []protocoldomain.Command {
	score := protocoldomain.PlayerSelection{Field: protocoldomain.PlayerHoleScore, Hole: hole}
	color := protocoldomain.PlayerSelection{Field: protocoldomain.PlayerHoleColor, Hole: hole}

	res, ok := p.Round.Get(hole)
	if hole > p.ShownUpUntil || !ok {
		return []protocoldomain.Command{
			protocoldomain.SetText(score, ""),
			protocoldomain.SetColor(color, BlankColor),
			protocoldomain.Hide(score),
		}
	}
	return []protocoldomain.Command{
		protocoldomain.SetText(score, strconv.Itoa(res.Throws)),
		protocoldomain.SetColor(color, res.Color()),
		protocoldomain.Show(score),
	}
}

// ScoreCommands renders only what changes when a hole is committed or reverted.
func (p *Player) ScoreCommands(hole int) []protocoldomain.Command {
	cmds := []protocoldomain.Command{
		protocoldomain.SetText(playerSel(protocoldomain.PlayerTotal), FormatScore(p.TotalScore)),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerRound), FormatScore(p.RoundScore)),
		protocoldomain.SetText(playerSel(protocoldomain.PlayerThru), FormatThru(p.ShownUpUntil)),
	}
	if hole >= 1 && hole <= HoleCount {
		cmds = append(cmds, p.HoleCommands(hole)...)
	}
	return cmds
}
