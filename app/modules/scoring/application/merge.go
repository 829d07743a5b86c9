package scoringservice

import (
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
)

// MergeResults copies reported scores onto players. A hole changes when its
// throw count differs from the stored one or it was not known before; a
// retirement flag flip also counts. Players missing from the map are ignored.
// Results are validated first so a bad payload changes nothing.
func MergeResults(players map[string]*playerdomain.Player, results []scoringclient.PlayerResult) (int, error) {
	for _, r := range results {
		for _, h := range r.Holes {
			if h.Hole < 1 || h.Hole > playerdomain.HoleCount {
				return 0, shared.DataErrorf("player %s: hole %d out of range", r.PlayerID, h.Hole)
			}
		}
	}

	changed := 0
	for _, r := range results {
		p, ok := players[r.PlayerID]
		if !ok {
			continue
		}

		dirty := false
		for _, h := range r.Holes {
			if stored, ok := p.StoredThrows(h.Hole); ok && stored == h.Throws {
				continue
			}
			if _, err := p.ApplyRemote(h.Hole, h.Throws); err != nil {
				return changed, err
			}
			dirty = true
		}
		if p.DNF != r.DNF || p.DNS != r.DNS {
			p.DNF, p.DNS = r.DNF, r.DNS
			dirty = true
		}
		if dirty {
			changed++
		}
	}
	return changed, nil
}
