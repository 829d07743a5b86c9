package scoringservice

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	playerdomain "github.com/Black-And-White-Club/frolf-broadcast/app/modules/player/domain"
	scoringclient "github.com/Black-And-White-Club/frolf-broadcast/app/modules/scoring/infrastructure/client"
	"github.com/ThreeDotsLabs/watermill/message"
)

// FakeFetcher serves canned results per round id.
type FakeFetcher struct {
	mu      sync.Mutex
	results map[string][]scoringclient.PlayerResult
	err     error
	calls   chan string
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		results: make(map[string][]scoringclient.PlayerResult),
		calls:   make(chan string, 16),
	}
}

func (f *FakeFetcher) Set(roundID string, results []scoringclient.PlayerResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[roundID] = results
	f.err = err
}

func (f *FakeFetcher) Results(ctx context.Context, eventID, roundID string) ([]scoringclient.PlayerResult, error) {
	f.mu.Lock()
	res, err := f.results[roundID], f.err
	f.mu.Unlock()
	select {
	case f.calls <- roundID:
	default:
	}
	return res, err
}

// FakeUpdater keeps players per round behind a mutex, like the coordinator.
type FakeUpdater struct {
	mu      sync.Mutex
	players map[int]map[string]*playerdomain.Player
	updates []int
	err     error
}

func NewFakeUpdater() *FakeUpdater {
	return &FakeUpdater{players: make(map[int]map[string]*playerdomain.Player)}
}

func (f *FakeUpdater) Add(round int, p *playerdomain.Player) {
	if f.players[round] == nil {
		f.players[round] = make(map[string]*playerdomain.Player)
	}
	f.players[round][p.ID] = p
}

func (f *FakeUpdater) UpdateRound(ctx context.Context, round int, fn func(map[string]*playerdomain.Player) (bool, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	changed, err := fn(f.players[round])
	if err != nil {
		return err
	}
	if changed {
		f.updates = append(f.updates, round)
	}
	return nil
}

func (f *FakeUpdater) Updates() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.updates...)
}

// FakeEventBus records published payloads.
type FakeEventBus struct {
	mu        sync.Mutex
	published map[string][][]byte
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{published: make(map[string][][]byte)}
}

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[topic] = append(f.published[topic], body)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

func (f *FakeEventBus) Published(topic string) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.published[topic]...)
}

// FakeMetrics counts poll outcomes.
type FakeMetrics struct {
	mu      sync.Mutex
	polls   map[string]int
	changed int
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{polls: make(map[string]int)}
}

func (m *FakeMetrics) RecordPoll(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls[result]++
}

func (m *FakeMetrics) ObservePollDuration(time.Duration) {}

func (m *FakeMetrics) RecordChangedPlayers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changed += n
}

func (m *FakeMetrics) Polls(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls[result]
}
