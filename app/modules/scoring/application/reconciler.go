package scoringservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/frolf-broadcast/app/eventbus"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPollInterval is how often every tracked round is polled.
const DefaultPollInterval = 5 * time.Second

// Options configures a Reconciler.
type Options struct {
	EventID  string
	Interval time.Duration
}

// Reconciler keeps players in line with the scoring service. Each tick it
// fetches every tracked round, merges differences under the round lock and
// announces changed leaderboards on the event bus.
type Reconciler struct {
	fetcher  ResultsFetcher
	updater  RoundUpdater
	eventBus shared.EventBus
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  Metrics
	tracer   trace.Tracer
	opts     Options

	mu     sync.Mutex
	rounds []scoringclient.Round
}

// NewReconciler creates a Reconciler. A nil clock uses the real clock.
func NewReconciler(
	fetcher ResultsFetcher,
	updater RoundUpdater,
	eventBus shared.EventBus,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
	opts Options,
) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if metrics == nil {
		metrics = NoOpMetrics{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	return &Reconciler{
		fetcher:  fetcher,
		updater:  updater,
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		opts:     opts,
	}
}

// Track adds a round to the poll set. Tracking a round twice is a no-op.
func (r *Reconciler) Track(round scoringclient.Round) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tracked := range r.rounds {
		if tracked.Index == round.Index {
			return
		}
	}
	r.rounds = append(r.rounds, round)
}

// Tracked returns the rounds being polled.
func (r *Reconciler) Tracked() []scoringclient.Round {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]scoringclient.Round(nil), r.rounds...)
}

// Run polls until ctx is cancelled. Poll failures never stop the loop.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "Score reconciler started",
		slog.String("event_id", r.opts.EventID),
		slog.Duration("interval", r.opts.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Score reconciler stopped")
			return nil
		case <-ticker.Chan():
			for _, round := range r.Tracked() {
				if ctx.Err() != nil {
					break
				}
				_ = r.PollOnce(ctx, round)
			}
		}
	}
}

// PollOnce reconciles a single round. The error is returned for callers that
// poll on demand; Run only logs it.
func (r *Reconciler) PollOnce(ctx context.Context, round scoringclient.Round) error {
	ctx, span := r.tracer.Start(ctx, "ScoreReconciler.PollOnce", trace.WithAttributes(
		attribute.String("event_id", r.opts.EventID),
		attribute.String("round_id", round.ID),
		attribute.Int("round", round.Index),
	))
	defer span.End()

	start := r.clock.Now()
	defer func() {
		r.metrics.ObservePollDuration(r.clock.Since(start))
	}()

	results, err := r.fetcher.Results(ctx, r.opts.EventID, round.ID)
	if err != nil {
		r.logger.WarnContext(ctx, "Skipping poll, results unavailable",
			slog.Int("round", round.Index),
			slog.Any("error", err),
		)
		r.metrics.RecordPoll(PollFetchError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return err
	}

	changed := 0
	err = r.updater.UpdateRound(ctx, round.Index, func(players map[string]*playerdomain.Player) (bool, error) {
		n, err := MergeResults(players, results)
		if err != nil {
			return false, err
		}
		changed = n
		return n > 0, nil
	})
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to merge results",
			slog.Int("round", round.Index),
			slog.Any("error", err),
		)
		r.metrics.RecordPoll(PollMergeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "merge failed")
		return err
	}

	span.SetAttributes(attribute.Int("changed_players", changed))
	if changed == 0 {
		r.metrics.RecordPoll(PollUnchanged)
		return nil
	}

	r.metrics.RecordPoll(PollChanged)
	r.metrics.RecordChangedPlayers(changed)
	r.logger.InfoContext(ctx, "Merged reported results",
		slog.Int("round", round.Index),
		slog.Int("changed_players", changed),
	)

	payload := eventbus.LeaderboardUpdated{Round: round.Index, ChangedPlayers: changed}
	if err := r.eventBus.Publish(ctx, eventbus.TopicLeaderboardUpdated, payload); err != nil {
		r.logger.ErrorContext(ctx, "Failed to announce leaderboard update", slog.Any("error", err))
	}
	return nil
}
