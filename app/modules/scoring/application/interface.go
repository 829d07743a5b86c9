package scoringservice

import (
	"context"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
)

// ResultsFetcher reads reported round results from the scoring service.
type ResultsFetcher interface {
	Results(ctx context.Context, eventID, roundID string) ([]scoringclient.PlayerResult, error)
}

// RoundUpdater gives exclusive access to the players of a round. fn reports
// whether it changed anything; the updater then refreshes the leaderboard.
type RoundUpdater interface {
	UpdateRound(ctx context.Context, round int, fn func(players map[string]*playerdomain.Player) (bool, error)) error
}
