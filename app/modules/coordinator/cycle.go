package coordinator

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-broadcast/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jonboulle/clockwork"
)

// DefaultCycleInterval is how long each division stays on the cycled mini panel.
const DefaultCycleInterval = 20 * time.Second

// MiniBoardRenderer is the coordinator surface the cycle drives.
type MiniBoardRenderer interface {
	Divisions() []playerdomain.Division
	DisplayedDivision() string
	RenderMiniBoard(ctx context.Context, divisionID string) error
}

// LeaderboardCycle rotates the cycled mini panel through the divisions,
// skipping the division already shown on the big board.
type LeaderboardCycle struct {
	board    MiniBoardRenderer
	eventBus shared.EventBus
	clock    clockwork.Clock
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	index   int
	current string
}

// NewLeaderboardCycle creates a cycle. A nil clock uses the real clock.
func NewLeaderboardCycle(board MiniBoardRenderer, eventBus shared.EventBus, clock clockwork.Clock, logger *slog.Logger, interval time.Duration) *LeaderboardCycle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultCycleInterval
	}
	return &LeaderboardCycle{
		board:    board,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
		interval: interval,
		index:    -1,
	}
}

// Current returns the division on the cycled panel, "" before the first advance.
func (lc *LeaderboardCycle) Current() string {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.current
}

// Advance moves to the next division round-robin and renders it. When the
// next division is the one on the big board it moves one further.
func (lc *LeaderboardCycle) Advance(ctx context.Context) (string, error) {
	divisions := lc.board.Divisions()
	if len(divisions) == 0 {
		return "", nil
	}

	lc.mu.Lock()
	next := (lc.index + 1) % len(divisions)
	if len(divisions) > 1 && divisions[next].ID == lc.board.DisplayedDivision() {
		next = (next + 1) % len(divisions)
	}
	lc.index = next
	lc.current = divisions[next].ID
	current := lc.current
	lc.mu.Unlock()

	return current, lc.board.RenderMiniBoard(ctx, current)
}

// Refresh re-renders the current division without advancing.
func (lc *LeaderboardCycle) Refresh(ctx context.Context) error {
	current := lc.Current()
	if current == "" {
		_, err := lc.Advance(ctx)
		return err
	}
	return lc.board.RenderMiniBoard(ctx, current)
}

// Run advances every interval and refreshes on leaderboard updates until ctx is done.
func (lc *LeaderboardCycle) Run(ctx context.Context) error {
	err := lc.eventBus.Subscribe(ctx, eventbus.TopicLeaderboardUpdated, func(ctx context.Context, msg *message.Message) error {
		var ev eventbus.LeaderboardUpdated
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return err
		}
		lc.logger.DebugContext(ctx, "Refreshing mini leaderboard",
			slog.Int("round", ev.Round),
			slog.Int("changed_players", ev.ChangedPlayers),
		)
		return lc.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	ticker := lc.clock.NewTicker(lc.interval)
	defer ticker.Stop()

	lc.logger.InfoContext(ctx, "Leaderboard cycle started", slog.Duration("interval", lc.interval))
	if _, err := lc.Advance(ctx); err != nil {
		lc.logger.ErrorContext(ctx, "Failed to render mini leaderboard", slog.Any("error", err))
	}

	for {
		select {
		case <-ctx.Done():
			lc.logger.InfoContext(ctx, "Leaderboard cycle stopped")
			return nil
		case <-ticker.Chan():
			if division, err := lc.Advance(ctx); err != nil {
				lc.logger.ErrorContext(ctx, "Failed to render mini leaderboard",
					slog.String("division", division),
					slog.Any("error", err),
				)
			}
		}
	}
}
