package coordinator

import (
	"context"
	"sync"

	protocoldomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/protocol/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/ThreeDotsLabs/watermill/message"
)

// FakeScoring serves a fixed event.
type FakeScoring struct {
	rounds    []scoringclient.Round
	groups    []scoringclient.Group
	holes     []scoringclient.Hole
	divisions []scoringclient.Division
	results   map[string][]scoringclient.PlayerResult

	roundsErr  error
	resultsErr error
}

func (f *FakeScoring) Rounds(ctx context.Context, eventID string) ([]scoringclient.Round, error) {
	return f.rounds, f.roundsErr
}

func (f *FakeScoring) Groups(ctx context.Context, eventID string) ([]scoringclient.Group, error) {
	return f.groups, nil
}

func (f *FakeScoring) Layout(ctx context.Context, eventID string) ([]scoringclient.Hole, []scoringclient.Division, error) {
	return f.holes, f.divisions, nil
}

func (f *FakeScoring) Results(ctx context.Context, eventID, roundID string) ([]scoringclient.PlayerResult, error) {
	if f.resultsErr != nil {
		return nil, f.resultsErr
	}
	return f.results[roundID], nil
}

// newFakeEvent is a two round event. Round 2 has an MPO card g1 (p1, p2, p3),
// an FPO card g2 (p4, p5) and an MPO card g3 (p6).
func newFakeEvent() *FakeScoring {
	holes := make([]scoringclient.Hole, 18)
	for i := range holes {
		holes[i] = scoringclient.Hole{Number: i + 1, Par: 3, Length: 80 + i}
	}
	holes[4].Par = 4

	scores := func(throws ...int) []scoringclient.HoleScore {
		out := make([]scoringclient.HoleScore, len(throws))
		for i, t := range throws {
			out[i] = scoringclient.HoleScore{Hole: i + 1, Throws: t}
		}
		return out
	}
	mpo := func(id string, holes []scoringclient.HoleScore) scoringclient.PlayerResult {
		return scoringclient.PlayerResult{PlayerID: id, FirstName: "First" + id, LastName: "Last" + id, DivisionID: "mpo", StartHole: 1, Holes: holes}
	}
	fpo := func(id string, holes []scoringclient.HoleScore) scoringclient.PlayerResult {
		r := mpo(id, holes)
		r.DivisionID = "fpo"
		return r
	}

	return &FakeScoring{
		rounds: []scoringclient.Round{{ID: "r1", Index: 0}, {ID: "r2", Index: 1}},
		groups: []scoringclient.Group{
			{ID: "g0", RoundID: "r1", StartHole: 1, PlayerIDs: []string{"p1", "p2", "p3", "p6"}},
			{ID: "g1", RoundID: "r2", StartHole: 1, PlayerIDs: []string{"p1", "p2", "p3"}},
			{ID: "g2", RoundID: "r2", StartHole: 1, PlayerIDs: []string{"p4", "p5"}},
			{ID: "g3", RoundID: "r2", StartHole: 1, PlayerIDs: []string{"p6", "ghost"}},
		},
		holes: holes,
		divisions: []scoringclient.Division{
			{ID: "mpo", Name: "Mixed Pro Open", ShortName: "MPO"},
			{ID: "fpo", Name: "Female Pro Open", ShortName: "FPO"},
		},
		results: map[string][]scoringclient.PlayerResult{
			"r1": {
				mpo("p1", scores(3, 3, 2)),
				mpo("p2", scores(3, 3, 3)),
				mpo("p3", scores(4, 3, 3)),
				fpo("p4", scores(3)),
				fpo("p5", scores(3)),
				mpo("p6", scores(3)),
			},
			"r2": {
				mpo("p1", scores(2, 3)),
				mpo("p2", scores(4)),
				mpo("p3", nil),
				fpo("p4", scores(3)),
				fpo("p5", nil),
				mpo("p6", nil),
			},
		},
	}
}

// RecordingQueue keeps every enqueued batch.
type RecordingQueue struct {
	mu      sync.Mutex
	batches [][]protocoldomain.Command
}

func (q *RecordingQueue) Enqueue(cmds ...protocoldomain.Command) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.batches = append(q.batches, append([]protocoldomain.Command(nil), cmds...))
	return len(cmds)
}

func (q *RecordingQueue) Batches() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.batches)
}

func (q *RecordingQueue) Last() []protocoldomain.Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.batches) == 0 {
		return nil
	}
	return q.batches[len(q.batches)-1]
}

// FakeEventBus hands subscriptions back to the test.
type FakeEventBus struct {
	mu       sync.Mutex
	handlers map[string]func(context.Context, *message.Message) error
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{handlers: make(map[string]func(context.Context, *message.Message) error)}
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error { return nil }

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = handler
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Handler(topic string) func(context.Context, *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handlers[topic]
}
