package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/leaderboard/domain"
	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	queuedomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/queue/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Deps are the collaborators of a Coordinator.
type Deps struct {
	Scoring Scoring
	Queue   Enqueuer
	Logger  *slog.Logger
	Metrics Metrics
	Tracer  trace.Tracer
}

// Options selects what the production starts on.
type Options struct {
	EventID       string
	FocusedPlayer string
	// Round is the 0-based round being broadcast. Every earlier round is loaded too.
	Round        int
	FeaturedHole int
	Mode         leaderboarddomain.Mode
	AssetsDir    string
}

// Coordinator owns the broadcast state. Every operation holds one lock across
// validation, mutation and enqueueing its commands, so batches never interleave
// and a failed operation leaves the state as it was.
type Coordinator struct {
	mu sync.Mutex

	queue   Enqueuer
	logger  *slog.Logger
	metrics Metrics
	tracer  trace.Tracer

	eventID string
	rounds  []scoringclient.Round
	groups  []scoringclient.Group
	layout  playerdomain.Layout
	round   int

	// players holds every loaded player per round; order keeps roster order.
	players map[int]map[string]*playerdomain.Player
	order   map[int][]string

	engine  *leaderboarddomain.Engine
	manager *queuedomain.Manager

	groupID           string
	featuredHole      int
	displayedDivision string
	boardSkip         int
}

// New loads the event and puts the focused player's card on air.
func New(ctx context.Context, deps Deps, opts Options) (*Coordinator, error) {
	if deps.Metrics == nil {
		deps.Metrics = NoOpMetrics{}
	}
	if opts.FeaturedHole == 0 {
		opts.FeaturedHole = 1
	}
	if opts.FeaturedHole < 1 || opts.FeaturedHole > playerdomain.HoleCount {
		return nil, shared.IndexErrorf("featured hole %d out of range", opts.FeaturedHole)
	}

	ctx, span := deps.Tracer.Start(ctx, "Coordinator.New", trace.WithAttributes(
		attribute.String("event_id", opts.EventID),
		attribute.Int("round", opts.Round),
	))
	defer span.End()

	c := &Coordinator{
		queue:        deps.Queue,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		tracer:       deps.Tracer,
		eventID:      opts.EventID,
		round:        opts.Round,
		players:      make(map[int]map[string]*playerdomain.Player),
		order:        make(map[int][]string),
		featuredHole: opts.FeaturedHole,
	}
	if err := c.load(ctx, deps.Scoring, opts); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	c.logger.InfoContext(ctx, "Broadcast loaded",
		slog.String("event_id", c.eventID),
		slog.Int("round", c.round+1),
		slog.String("focused_player", c.manager.Focused()),
		slog.String("group_id", c.groupID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	cmds := c.playerBatch()
	cmds = append(cmds, c.holeInfoBatch()...)
	cmds = append(cmds, c.comparisonBatch()...)
	if board, err := c.engine.BigBoard(c.round, c.displayedDivision, 0); err == nil {
		cmds = append(cmds, board...)
	}
	if mini, err := c.engine.MiniBoard(c.round, c.displayedDivision, true); err == nil {
		cmds = append(cmds, mini...)
	}
	c.queue.Enqueue(cmds...)
	return c, nil
}

func (c *Coordinator) load(ctx context.Context, scoring Scoring, opts Options) error {
	rounds, err := scoring.Rounds(ctx, opts.EventID)
	if err != nil {
		return fmt.Errorf("load rounds: %w", err)
	}
	if opts.Round < 0 || opts.Round >= len(rounds) {
		return shared.DataErrorf("event %s has %d rounds, round %d requested", opts.EventID, len(rounds), opts.Round+1)
	}
	c.rounds = rounds

	holes, divisions, err := scoring.Layout(ctx, opts.EventID)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	c.layout = playerdomain.Layout{}
	for _, h := range holes {
		c.layout[h.Number] = playerdomain.Hole{Number: h.Number, Par: h.Par, Length: h.Length}
	}
	divs := make([]playerdomain.Division, len(divisions))
	byID := make(map[string]playerdomain.Division, len(divisions))
	for i, d := range divisions {
		divs[i] = playerdomain.Division{ID: d.ID, Name: d.Name, ShortName: d.ShortName}
		byID[d.ID] = divs[i]
	}
	c.engine = leaderboarddomain.NewEngine(divs, leaderboarddomain.Options{Mode: opts.Mode, AssetsDir: opts.AssetsDir})

	groups, err := scoring.Groups(ctx, opts.EventID)
	if err != nil {
		return fmt.Errorf("load groups: %w", err)
	}
	c.groups = groups

	for r := 0; r <= opts.Round; r++ {
		results, err := scoring.Results(ctx, opts.EventID, rounds[r].ID)
		if err != nil {
			return fmt.Errorf("load results of round %d: %w", r+1, err)
		}
		if err := c.addRoster(r, results, byID); err != nil {
			return err
		}
	}
	c.recompute(0)

	focused, ok := c.players[c.round][opts.FocusedPlayer]
	if !ok {
		return shared.DataErrorf("unknown player %q in round %d", opts.FocusedPlayer, c.round+1)
	}
	group, ok := c.groupOf(opts.FocusedPlayer)
	if !ok {
		return shared.DataErrorf("player %q has no group in round %d", opts.FocusedPlayer, c.round+1)
	}
	manager, err := queuedomain.NewManager(c.knownPlayers(group.PlayerIDs))
	if err != nil {
		return err
	}
	for i, id := range manager.Card() {
		if id == opts.FocusedPlayer {
			if err := manager.SetFocusedByCardIndex(i); err != nil {
				return err
			}
		}
	}
	c.manager = manager
	c.groupID = group.ID
	c.displayedDivision = focused.Division.ID
	return nil
}

// addRoster builds the players of round r from reported results.
func (c *Coordinator) addRoster(r int, results []scoringclient.PlayerResult, divisions map[string]playerdomain.Division) error {
	roster := make(map[string]*playerdomain.Player, len(results))
	order := make([]string, 0, len(results))
	for _, res := range results {
		div, ok := divisions[res.DivisionID]
		if !ok {
			return shared.DataErrorf("player %s: unknown division %q", res.PlayerID, res.DivisionID)
		}
		p := playerdomain.NewPlayer(res.PlayerID, res.FirstName, res.LastName, div, c.layout)
		p.TiebreakID = res.TiebreakID
		p.StartAtHole = res.StartHole
		p.DNF, p.DNS = res.DNF, res.DNS
		for _, h := range res.Holes {
			if _, err := p.ApplyRemote(h.Hole, h.Throws); err != nil {
				return shared.DataErrorf("player %s: %v", res.PlayerID, err)
			}
		}
		if _, dup := roster[p.ID]; !dup {
			order = append(order, p.ID)
		}
		roster[p.ID] = p
	}
	c.players[r] = roster
	c.order[r] = order
	return nil
}

// recompute refreshes previous-round totals and leaderboard snapshots for
// every loaded round from round on.
func (c *Coordinator) recompute(from int) {
	if from < 0 {
		from = 0
	}
	for r := from; r <= c.round; r++ {
		prior := make([][]*playerdomain.Player, 0, r)
		for k := 0; k < r; k++ {
			prior = append(prior, c.roster(k))
		}
		for _, p := range c.roster(r) {
			var scores []int
			for k := 0; k < r; k++ {
				if prev, ok := c.players[k][p.ID]; ok {
					scores = append(scores, prev.Round.Score())
				}
			}
			p.SetPreviousRounds(scores)
		}
		c.engine.AddState(r, c.roster(r), prior)
	}
}

func (c *Coordinator) roster(r int) []*playerdomain.Player {
	out := make([]*playerdomain.Player, 0, len(c.order[r]))
	for _, id := range c.order[r] {
		out = append(out, c.players[r][id])
	}
	return out
}

func (c *Coordinator) groupOf(playerID string) (scoringclient.Group, bool) {
	roundID := c.rounds[c.round].ID
	for _, g := range c.groups {
		if g.RoundID != roundID {
			continue
		}
		for _, id := range g.PlayerIDs {
			if id == playerID {
				return g, true
			}
		}
	}
	return scoringclient.Group{}, false
}

func (c *Coordinator) knownPlayers(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := c.players[c.round][id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (c *Coordinator) focused() *playerdomain.Player {
	return c.players[c.round][c.manager.Focused()]
}

// operationFunc is the signature for coordinator operations. It runs with the
// state lock held.
type operationFunc func(ctx context.Context) error

// withTelemetry runs op under the state lock with tracing, metrics and panic recovery.
func (c *Coordinator) withTelemetry(ctx context.Context, operationName string, op operationFunc) (err error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator."+operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("event_id", c.eventID),
	))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	defer func() {
		c.metrics.ObserveOperationDuration(operationName, time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			c.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Any("error", err),
			)
			c.metrics.RecordOperation(operationName, "panic")
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
		}
	}()

	if err = op(ctx); err != nil {
		c.logger.WarnContext(ctx, "Operation rejected",
			slog.String("operation", operationName),
			slog.Any("error", err),
		)
		c.metrics.RecordOperation(operationName, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", operationName, err)
	}

	c.metrics.RecordOperation(operationName, "ok")
	return nil
}
