package controlhandlers

import (
	"context"

	"github.com/Black-And-White-Club/frolf-broadcast/app/modules/coordinator"
	leaderboarddomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/leaderboard/domain"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
)

// ------------------------
// Fake Controller
// ------------------------

type FakeController struct {
	StatusValue coordinator.Status

	SetFocusFunc        func(ctx context.Context, index int) error
	SetThrowsFunc       func(ctx context.Context, throws int) error
	IncreaseScoreFunc   func(ctx context.Context) (playerdomain.HoleResult, error)
	RevertScoreFunc     func(ctx context.Context) error
	ResetScoresFunc     func(ctx context.Context) error
	SetGroupFunc        func(ctx context.Context, groupID string) error
	AddToQueueFunc      func(ctx context.Context, playerID string, hole, throws *int) error
	NextQueuedFunc      func(ctx context.Context) (string, error)
	SetFeaturedHoleFunc func(ctx context.Context, hole int) error
	ShowLeaderboardFunc func(ctx context.Context, divisionID string, skip int) error
	LeaderboardFunc     func(divisionID string) ([]leaderboarddomain.LeaderboardPlayer, error)
}

func (f *FakeController) Status() coordinator.Status { return f.StatusValue }

func (f *FakeController) SetFocus(ctx context.Context, index int) error {
	if f.SetFocusFunc != nil {
		return f.SetFocusFunc(ctx, index)
	}
	return nil
}

func (f *FakeController) SetThrows(ctx context.Context, throws int) error {
	if f.SetThrowsFunc != nil {
		return f.SetThrowsFunc(ctx, throws)
	}
	return nil
}

func (f *FakeController) IncreaseScore(ctx context.Context) (playerdomain.HoleResult, error) {
	if f.IncreaseScoreFunc != nil {
		return f.IncreaseScoreFunc(ctx)
	}
	return playerdomain.HoleResult{Hole: 1, Throws: 3, Par: 3}, nil
}

func (f *FakeController) RevertScore(ctx context.Context) error {
	if f.RevertScoreFunc != nil {
		return f.RevertScoreFunc(ctx)
	}
	return nil
}

func (f *FakeController) ResetScores(ctx context.Context) error {
	if f.ResetScoresFunc != nil {
		return f.ResetScoresFunc(ctx)
	}
	return nil
}

func (f *FakeController) SetGroup(ctx context.Context, groupID string) error {
	if f.SetGroupFunc != nil {
		return f.SetGroupFunc(ctx, groupID)
	}
	return nil
}

func (f *FakeController) AddToQueue(ctx context.Context, playerID string, hole, throws *int) error {
	if f.AddToQueueFunc != nil {
		return f.AddToQueueFunc(ctx, playerID, hole, throws)
	}
	return nil
}

func (f *FakeController) NextQueued(ctx context.Context) (string, error) {
	if f.NextQueuedFunc != nil {
		return f.NextQueuedFunc(ctx)
	}
	return "", nil
}

func (f *FakeController) SetFeaturedHole(ctx context.Context, hole int) error {
	if f.SetFeaturedHoleFunc != nil {
		return f.SetFeaturedHoleFunc(ctx, hole)
	}
	return nil
}

func (f *FakeController) ShowLeaderboard(ctx context.Context, divisionID string, skip int) error {
	if f.ShowLeaderboardFunc != nil {
		return f.ShowLeaderboardFunc(ctx, divisionID, skip)
	}
	return nil
}

func (f *FakeController) Leaderboard(divisionID string) ([]leaderboarddomain.LeaderboardPlayer, error) {
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(divisionID)
	}
	return nil, nil
}
