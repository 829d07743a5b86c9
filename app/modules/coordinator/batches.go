package coordinator

import (
	"strconv"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
)

// ComparisonColumns is the number of card players on the comparison grid.
const ComparisonColumns = 4

// playerBatch renders the whole focused-player graphic.
func (c *Coordinator) playerBatch() []protocoldomain.Command {
	p := c.focused()
	return p.Commands(c.engine.Position(c.round, p.ID))
}

// scoreBatch renders the parts of the focused-player graphic a hole change touches.
func (c *Coordinator) scoreBatch(hole int) []protocoldomain.Command {
	p := c.focused()
	cmds := p.ScoreCommands(hole)
	position := protocoldomain.PlayerSelection{Field: protocoldomain.PlayerPosition}
	return append(cmds, protocoldomain.SetText(position, c.engine.Position(c.round, p.ID)))
}

func (c *Coordinator) holeInfoBatch() []protocoldomain.Command {
	hole, ok := c.layout[c.featuredHole]
	if !ok {
		hole = playerdomain.Hole{Number: c.featuredHole, Par: c.layout.Par(c.featuredHole)}
	}
	length := ""
	if hole.Length > 0 {
		length = strconv.Itoa(hole.Length)
	}
	sel := func(f protocoldomain.HoleInfoField) protocoldomain.HoleInfoSelection {
		return protocoldomain.HoleInfoSelection{Field: f}
	}
	return []protocoldomain.Command{
		protocoldomain.SetText(sel(protocoldomain.HoleNumber), strconv.Itoa(c.featuredHole)),
		protocoldomain.SetText(sel(protocoldomain.HolePar), strconv.Itoa(hole.Par)),
		protocoldomain.SetText(sel(protocoldomain.HoleLength), length),
		protocoldomain.SetText(sel(protocoldomain.HoleAverage), c.holeAverage(c.featuredHole)),
	}
}

// holeAverage is the mean throw count of everyone who played hole this round.
func (c *Coordinator) holeAverage(hole int) string {
	total, n := 0, 0
	for _, p := range c.roster(c.round) {
		if throws, ok := p.StoredThrows(hole); ok {
			total += throws
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(total)/float64(n), 'f', 2, 64)
}

// comparisonBatch renders the first card players side by side; spare columns are blanked.
func (c *Coordinator) comparisonBatch() []protocoldomain.Command {
	card := c.manager.Card()
	var cmds []protocoldomain.Command
	for col := 1; col <= ComparisonColumns; col++ {
		var name, total, round, thru, pos string
		if col <= len(card) {
			p := c.players[c.round][card[col-1]]
			name = p.Name()
			total = playerdomain.FormatScore(p.TotalScore)
			round = playerdomain.FormatScore(p.RoundScore)
			thru = playerdomain.FormatThru(p.ShownUpUntil)
			pos = c.engine.Position(c.round, p.ID)
		}
		sel := func(f protocoldomain.ComparisonField) protocoldomain.ComparisonSelection {
			return protocoldomain.ComparisonSelection{Column: col, Field: f}
		}
		cmds = append(cmds,
			protocoldomain.SetText(sel(protocoldomain.CompareName), name),
			protocoldomain.SetText(sel(protocoldomain.CompareTotal), total),
			protocoldomain.SetText(sel(protocoldomain.CompareRound), round),
			protocoldomain.SetText(sel(protocoldomain.CompareThru), thru),
			protocoldomain.SetText(sel(protocoldomain.ComparePosition), pos),
		)
	}
	return cmds
}
