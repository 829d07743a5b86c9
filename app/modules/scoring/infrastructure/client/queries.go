package scoringclient

import (
	"context"
	"sort"

	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// Round is one round of an event. Index is its 0-based position in the event.
type Round struct {
	ID    string
	Index int
}

// Group is a card of players starting together.
type Group struct {
	ID        string
	RoundID   string
	StartHole int
	PlayerIDs []string
}

// Hole is one hole of the event layout.
type Hole struct {
	Number int
	Par    int
	Length int
}

// Division is a competition division of the event.
type Division struct {
	ID        string
	Name      string
	ShortName string
}

// HoleScore is a single reported score.
type HoleScore struct {
	Hole   int
	Throws int
}

// PlayerResult is a player's reported round.
type PlayerResult struct {
	PlayerID   string
	FirstName  string
	LastName   string
	DivisionID string
	TiebreakID int
	StartHole  int
	DNF        bool
	DNS        bool
	Holes      []HoleScore
}

const roundsQuery = `query Rounds($eventId: ID!) {
  event(id: $eventId) {
    rounds { id }
  }
}`

// Rounds lists the rounds of an event in play order.
func (c *Client) Rounds(ctx context.Context, eventID string) ([]Round, error) {
	var data struct {
		Event *struct {
			Rounds []struct {
				ID string `json:"id"`
			} `json:"rounds"`
		} `json:"event"`
	}
	if err := c.do(ctx, "rounds", roundsQuery, map[string]any{"eventId": eventID}, &data); err != nil {
		return nil, err
	}
	if data.Event == nil {
		return nil, shared.DataErrorf("rounds: unknown event %q", eventID)
	}

	rounds := make([]Round, len(data.Event.Rounds))
	for i, r := range data.Event.Rounds {
		rounds[i] = Round{ID: r.ID, Index: i}
	}
	return rounds, nil
}

const groupsQuery = `query Groups($eventId: ID!) {
  event(id: $eventId) {
    rounds {
      id
      pools {
        groups {
          id
          startHole { number }
          playerConnections { playerId }
        }
      }
    }
  }
}`

// Groups lists every card of an event across all rounds.
func (c *Client) Groups(ctx context.Context, eventID string) ([]Group, error) {
	var data struct {
		Event *struct {
			Rounds []struct {
				ID    string `json:"id"`
				Pools []struct {
					Groups []struct {
						ID        string `json:"id"`
						StartHole *struct {
							Number int `json:"number"`
						} `json:"startHole"`
						PlayerConnections []struct {
							PlayerID string `json:"playerId"`
						} `json:"playerConnections"`
					} `json:"groups"`
				} `json:"pools"`
			} `json:"rounds"`
		} `json:"event"`
	}
	if err := c.do(ctx, "groups", groupsQuery, map[string]any{"eventId": eventID}, &data); err != nil {
		return nil, err
	}
	if data.Event == nil {
		return nil, shared.DataErrorf("groups: unknown event %q", eventID)
	}

	var groups []Group
	for _, r := range data.Event.Rounds {
		for _, pool := range r.Pools {
			for _, g := range pool.Groups {
				group := Group{ID: g.ID, RoundID: r.ID, StartHole: 1}
				if g.StartHole != nil && g.StartHole.Number > 0 {
					group.StartHole = g.StartHole.Number
				}
				for _, pc := range g.PlayerConnections {
					group.PlayerIDs = append(group.PlayerIDs, pc.PlayerID)
				}
				groups = append(groups, group)
			}
		}
	}
	return groups, nil
}

const layoutQuery = `query Layout($eventId: ID!) {
  event(id: $eventId) {
    divisions { id name type }
    rounds {
      pools {
        layoutVersion {
          holes { number par length }
        }
      }
    }
  }
}`

// Layout returns the hole layout of the event and its divisions. Holes are
// taken from the first pool that has a layout.
func (c *Client) Layout(ctx context.Context, eventID string) ([]Hole, []Division, error) {
	var data struct {
		Event *struct {
			Divisions []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"divisions"`
			Rounds []struct {
				Pools []struct {
					LayoutVersion *struct {
						Holes []struct {
							Number int `json:"number"`
							Par    int `json:"par"`
							Length int `json:"length"`
						} `json:"holes"`
					} `json:"layoutVersion"`
				} `json:"pools"`
			} `json:"rounds"`
		} `json:"event"`
	}
	if err := c.do(ctx, "layout", layoutQuery, map[string]any{"eventId": eventID}, &data); err != nil {
		return nil, nil, err
	}
	if data.Event == nil {
		return nil, nil, shared.DataErrorf("layout: unknown event %q", eventID)
	}

	var holes []Hole
	for _, r := range data.Event.Rounds {
		for _, pool := range r.Pools {
			if pool.LayoutVersion == nil || len(pool.LayoutVersion.Holes) == 0 {
				continue
			}
			for _, h := range pool.LayoutVersion.Holes {
				holes = append(holes, Hole{Number: h.Number, Par: h.Par, Length: h.Length})
			}
			break
		}
		if len(holes) > 0 {
			break
		}
	}
	if len(holes) == 0 {
		return nil, nil, shared.DataErrorf("layout: event %q has no holes", eventID)
	}
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })

	divisions := make([]Division, len(data.Event.Divisions))
	for i, d := range data.Event.Divisions {
		divisions[i] = Division{ID: d.ID, Name: d.Name, ShortName: d.Type}
	}
	return holes, divisions, nil
}

const resultsQuery = `query Results($eventId: ID!, $roundId: ID!) {
  event(id: $eventId) {
    round(id: $roundId) {
      results {
        playerId
        isDNF
        isDNS
        startHole { number }
        player {
          firstName
          lastName
          pdgaNumber
          division { id }
        }
        scores { hole { number } score }
      }
    }
  }
}`

// Results returns every player's reported scores for a round.
func (c *Client) Results(ctx context.Context, eventID, roundID string) ([]PlayerResult, error) {
	var data struct {
		Event *struct {
			Round *struct {
				Results []struct {
					PlayerID  string `json:"playerId"`
					IsDNF     bool   `json:"isDNF"`
					IsDNS     bool   `json:"isDNS"`
					StartHole *struct {
						Number int `json:"number"`
					} `json:"startHole"`
					Player struct {
						FirstName  string `json:"firstName"`
						LastName   string `json:"lastName"`
						PDGANumber *int   `json:"pdgaNumber"`
						Division   struct {
							ID string `json:"id"`
						} `json:"division"`
					} `json:"player"`
					Scores []struct {
						Hole struct {
							Number int `json:"number"`
						} `json:"hole"`
						Score int `json:"score"`
					} `json:"scores"`
				} `json:"results"`
			} `json:"round"`
		} `json:"event"`
	}
	vars := map[string]any{"eventId": eventID, "roundId": roundID}
	if err := c.do(ctx, "results", resultsQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Event == nil || data.Event.Round == nil {
		return nil, shared.DataErrorf("results: unknown round %q of event %q", roundID, eventID)
	}

	results := make([]PlayerResult, 0, len(data.Event.Round.Results))
	for _, r := range data.Event.Round.Results {
		if r.PlayerID == "" {
			return nil, shared.DataErrorf("results: result without player id")
		}
		res := PlayerResult{
			PlayerID:   r.PlayerID,
			FirstName:  r.Player.FirstName,
			LastName:   r.Player.LastName,
			DivisionID: r.Player.Division.ID,
			StartHole:  1,
			DNF:        r.IsDNF,
			DNS:        r.IsDNS,
		}
		if r.Player.PDGANumber != nil {
			res.TiebreakID = *r.Player.PDGANumber
		}
		if r.StartHole != nil && r.StartHole.Number > 0 {
			res.StartHole = r.StartHole.Number
		}
		for _, s := range r.Scores {
			if s.Score <= 0 {
				continue
			}
			res.Holes = append(res.Holes, HoleScore{Hole: s.Hole.Number, Throws: s.Score})
		}
		results = append(results, res)
	}
	return results, nil
}
