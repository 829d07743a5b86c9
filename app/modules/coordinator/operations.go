package coordinator

import (
	"context"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/leaderboard/domain"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// Status is a read-only view of the production state.
type Status struct {
	Round             int      `json:"round"`
	GroupID           string   `json:"group_id"`
	FocusedPlayer     string   `json:"focused_player"`
	Card              []string `json:"card"`
	Queue             []string `json:"queue"`
	ShownUpUntil      int      `json:"shown_up_until"`
	PendingThrows     int      `json:"pending_throws"`
	FeaturedHole      int      `json:"featured_hole"`
	DisplayedDivision string   `json:"displayed_division"`
}

// Status returns the current production state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.focused()
	return Status{
		Round:             c.round,
		GroupID:           c.groupID,
		FocusedPlayer:     p.ID,
		Card:              c.manager.Card(),
		Queue:             c.manager.Queue(),
		ShownUpUntil:      p.ShownUpUntil,
		PendingThrows:     p.PendingThrows,
		FeaturedHole:      c.featuredHole,
		DisplayedDivision: c.displayedDivision,
	}
}

// SetFocus puts the i-th card player on air.
func (c *Coordinator) SetFocus(ctx context.Context, index int) error {
	return c.withTelemetry(ctx, "SetFocus", func(ctx context.Context) error {
		if err := c.manager.SetFocusedByCardIndex(index); err != nil {
			return err
		}
		c.queue.Enqueue(c.playerBatch()...)
		return nil
	})
}

// SetThrows records the throw count of the focused player's next hole.
func (c *Coordinator) SetThrows(ctx context.Context, throws int) error {
	return c.withTelemetry(ctx, "SetThrows", func(ctx context.Context) error {
		if throws <= 0 {
			return shared.DataErrorf("throws must be positive, got %d", throws)
		}
		c.focused().PendingThrows = throws
		return nil
	})
}

// IncreaseScore commits the focused player's next hole and plays its clip.
func (c *Coordinator) IncreaseScore(ctx context.Context) (playerdomain.HoleResult, error) {
	var res playerdomain.HoleResult
	err := c.withTelemetry(ctx, "IncreaseScore", func(ctx context.Context) error {
		var err error
		res, err = c.focused().IncreaseScore()
		if err != nil {
			return err
		}
		c.recompute(c.round)

		cmds := c.scoreBatch(res.Hole)
		cmds = append(cmds, protocoldomain.PlayOverlay(res.Classification().Clip()))
		cmds = append(cmds, c.comparisonBatch()...)
		if res.Hole == c.featuredHole {
			cmds = append(cmds, c.holeInfoBatch()...)
		}
		c.queue.Enqueue(cmds...)
		return nil
	})
	return res, err
}

// RevertScore undoes the focused player's last committed hole.
func (c *Coordinator) RevertScore(ctx context.Context) error {
	return c.withTelemetry(ctx, "RevertScore", func(ctx context.Context) error {
		p := c.focused()
		hole := p.ShownUpUntil
		if hole == 0 {
			return nil
		}
		p.RevertHoleScore()
		c.recompute(c.round)

		cmds := c.scoreBatch(hole)
		cmds = append(cmds, protocoldomain.StopOverlay())
		cmds = append(cmds, c.comparisonBatch()...)
		c.queue.Enqueue(cmds...)
		return nil
	})
}

// ResetScores rewinds the focused player's graphic to the start of the round.
func (c *Coordinator) ResetScores(ctx context.Context) error {
	return c.withTelemetry(ctx, "ResetScores", func(ctx context.Context) error {
		c.focused().ResetScores()
		c.recompute(c.round)

		cmds := c.playerBatch()
		cmds = append(cmds, c.comparisonBatch()...)
		c.queue.Enqueue(cmds...)
		return nil
	})
}

// SetGroup replaces the card with another group of the current round.
func (c *Coordinator) SetGroup(ctx context.Context, groupID string) error {
	return c.withTelemetry(ctx, "SetGroup", func(ctx context.Context) error {
		roundID := c.rounds[c.round].ID
		for _, g := range c.groups {
			if g.ID != groupID || g.RoundID != roundID {
				continue
			}
			if err := c.manager.Replace(c.knownPlayers(g.PlayerIDs)); err != nil {
				return err
			}
			c.groupID = g.ID
			c.queue.Enqueue(c.comparisonBatch()...)
			return nil
		}
		return shared.DataErrorf("unknown group %q in round %d", groupID, c.round+1)
	})
}

// AddToQueue queues a player to be shown next. A hole beyond the player's next
// unshown hole fast-forwards through known results; throws become the pending
// throws of that hole.
func (c *Coordinator) AddToQueue(ctx context.Context, playerID string, hole, throws *int) error {
	return c.withTelemetry(ctx, "AddToQueue", func(ctx context.Context) error {
		p, ok := c.players[c.round][playerID]
		if !ok {
			return shared.DataErrorf("unknown player %q", playerID)
		}
		if throws != nil && *throws <= 0 {
			return shared.DataErrorf("throws must be positive, got %d", *throws)
		}
		if hole != nil {
			if *hole < 1 || *hole > playerdomain.HoleCount {
				return shared.IndexErrorf("hole %d out of range", *hole)
			}
			for h := p.ShownUpUntil + 1; h < *hole; h++ {
				if _, known := p.StoredThrows(h); !known {
					return shared.DataErrorf("player %s: no result for hole %d", playerID, h)
				}
			}
		}

		fastForwarded := false
		if hole != nil {
			for p.ShownUpUntil+1 < *hole {
				if _, err := p.IncreaseScore(); err != nil {
					return err
				}
				fastForwarded = true
			}
		}
		if throws != nil {
			p.PendingThrows = *throws
		}
		c.manager.AddToQueue(playerID)

		if fastForwarded {
			c.recompute(c.round)
		}
		if playerID == c.manager.Focused() {
			c.queue.Enqueue(c.playerBatch()...)
		}
		return nil
	})
}

// NextQueued puts the head of the queue on air.
func (c *Coordinator) NextQueued(ctx context.Context) (string, error) {
	var id string
	err := c.withTelemetry(ctx, "NextQueued", func(ctx context.Context) error {
		var err error
		id, err = c.manager.NextQueued()
		if err != nil {
			return err
		}
		cmds := c.playerBatch()
		cmds = append(cmds, c.comparisonBatch()...)
		c.queue.Enqueue(cmds...)
		return nil
	})
	return id, err
}

// SetFeaturedHole switches the hole-info graphic to hole.
func (c *Coordinator) SetFeaturedHole(ctx context.Context, hole int) error {
	return c.withTelemetry(ctx, "SetFeaturedHole", func(ctx context.Context) error {
		if hole < 1 || hole > playerdomain.HoleCount {
			return shared.IndexErrorf("hole %d out of range", hole)
		}
		c.featuredHole = hole
		c.queue.Enqueue(c.holeInfoBatch()...)
		return nil
	})
}

// ShowLeaderboard renders page skip of a division on the big board and
// features the same division on the fixed mini panel.
func (c *Coordinator) ShowLeaderboard(ctx context.Context, divisionID string, skip int) error {
	return c.withTelemetry(ctx, "ShowLeaderboard", func(ctx context.Context) error {
		board, err := c.engine.BigBoard(c.round, divisionID, skip)
		if err != nil {
			return err
		}
		mini, err := c.engine.MiniBoard(c.round, divisionID, true)
		if err != nil {
			return err
		}
		c.displayedDivision = divisionID
		c.boardSkip = skip
		c.queue.Enqueue(append(board, mini...)...)
		return nil
	})
}

// RenderMiniBoard renders a division on the cycled mini panel.
func (c *Coordinator) RenderMiniBoard(ctx context.Context, divisionID string) error {
	return c.withTelemetry(ctx, "RenderMiniBoard", func(ctx context.Context) error {
		mini, err := c.engine.MiniBoard(c.round, divisionID, false)
		if err != nil {
			return err
		}
		c.queue.Enqueue(mini...)
		return nil
	})
}

// Divisions returns the event divisions in load order.
func (c *Coordinator) Divisions() []playerdomain.Division {
	return c.engine.Divisions()
}

// LoadedRounds returns the rounds up to and including the broadcast round.
func (c *Coordinator) LoadedRounds() []scoringclient.Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]scoringclient.Round(nil), c.rounds[:c.round+1]...)
}

// DisplayedDivision returns the division on the big board.
func (c *Coordinator) DisplayedDivision() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayedDivision
}

// Leaderboard returns the ranked standings of a division in the current round.
func (c *Coordinator) Leaderboard(divisionID string) ([]leaderboarddomain.LeaderboardPlayer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Ranked(c.round, divisionID)
}

// UpdateRound gives fn exclusive access to the players of round. When fn
// reports a change the leaderboards are recomputed and the big board, the
// featured panel and the focused player are re-rendered.
func (c *Coordinator) UpdateRound(ctx context.Context, round int, fn func(players map[string]*playerdomain.Player) (bool, error)) error {
	return c.withTelemetry(ctx, "UpdateRound", func(ctx context.Context) error {
		players, ok := c.players[round]
		if !ok {
			return shared.DataErrorf("round %d is not loaded", round+1)
		}
		changed, err := fn(players)
		if err != nil || !changed {
			return err
		}
		c.recompute(round)

		cmds := c.playerBatch()
		cmds = append(cmds, c.comparisonBatch()...)
		if board, err := c.engine.BigBoard(c.round, c.displayedDivision, c.boardSkip); err == nil {
			cmds = append(cmds, board...)
		}
		if mini, err := c.engine.MiniBoard(c.round, c.displayedDivision, true); err == nil {
			cmds = append(cmds, mini...)
		}
		cmds = append(cmds, c.holeInfoBatch()...)
		c.queue.Enqueue(cmds...)
		return nil
	})
}
